// Package store provides the key-value store client used by the guild state engine.
// It exposes scalar, set, sorted-set and list operations and reports every read as a
// typed Result so callers choose their own fallback when the store is unreachable.
package store

import (
	"context"
	"errors"
)

// ErrUnavailable is wrapped by every error caused by the store being unreachable
var ErrUnavailable = errors.New("store unavailable")

// Result is the outcome of a read: a value, a miss, or an unavailable store
type Result[T any] struct {
	Value T
	Found bool
	Err   error
}

// Hit wraps a value that was read successfully
func Hit[T any](value T) Result[T] {
	return Result[T]{Value: value, Found: true}
}

// Miss reports that the key or member does not exist
func Miss[T any]() Result[T] {
	return Result[T]{}
}

// Failed reports that the store could not be reached
func Failed[T any](err error) Result[T] {
	return Result[T]{Err: err}
}

// IsUnavailable returns true if the read failed because the store was unreachable
func (r Result[T]) IsUnavailable() bool {
	return r.Err != nil
}

// Or returns the value when found, otherwise the fallback
func (r Result[T]) Or(fallback T) T {
	if r.Err != nil || !r.Found {
		return fallback
	}
	return r.Value
}

// ScoredMember is one entry of a sorted set
type ScoredMember struct {
	Member string
	Score  int64
}

// Client is the contract the state engine needs from the key-value store.
// Mutations that must be atomic map onto exactly one store command.
type Client interface {
	Get(ctx context.Context, key string) Result[string]
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) Result[bool]

	SAdd(ctx context.Context, key, member string) error
	SRem(ctx context.Context, key, member string) error
	SMembers(ctx context.Context, key string) Result[[]string]
	SMIsMember(ctx context.Context, key string, members ...string) Result[[]bool]

	ZAdd(ctx context.Context, key, member string, score int64) error
	ZIncrBy(ctx context.Context, key, member string, delta int64) (int64, error)
	ZScore(ctx context.Context, key, member string) Result[int64]
	ZRevRank(ctx context.Context, key, member string) Result[int64]
	ZRevRangeWithScores(ctx context.Context, key string, start, stop int64) Result[[]ScoredMember]

	RPush(ctx context.Context, key, value string) (int64, error)
	LRange(ctx context.Context, key string, start, stop int64) Result[[]string]
	LLen(ctx context.Context, key string) Result[int64]

	Ping(ctx context.Context) error
	Close() error
}
