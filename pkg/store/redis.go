package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/PancyStudios/RailmodGo/pkg/logger"
	"github.com/PancyStudios/RailmodGo/pkg/metrics"
	redis "github.com/redis/go-redis/v9"
)

// Options configures the Redis connection
type Options struct {
	Addr         string
	Password     string
	DB           int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RedisStore implements Client on top of go-redis
type RedisStore struct {
	client *redis.Client
}

var _ Client = (*RedisStore)(nil)

// NewRedisStore creates a store for the given options.
// The connection is established lazily; use Ping to check reachability.
func NewRedisStore(opts Options) *RedisStore {
	if opts.DialTimeout == 0 {
		opts.DialTimeout = 5 * time.Second
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 3 * time.Second
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 3 * time.Second
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	})

	return &RedisStore{client: rdb}
}

// NewRedisStoreFromClient wraps an existing go-redis client
func NewRedisStoreFromClient(rdb *redis.Client) *RedisStore {
	return &RedisStore{client: rdb}
}

// Redis returns the underlying go-redis client
func (s *RedisStore) Redis() *redis.Client {
	return s.client
}

// unavailable wraps a go-redis error and records it
func unavailable(op, key string, err error) error {
	metrics.StoreUnavailable.WithLabelValues(op).Inc()
	logger.Debug(fmt.Sprintf("%s %s failed: %v", op, key, err), "Store")
	return fmt.Errorf("%w: %s %s: %w", ErrUnavailable, op, key, err)
}

// Get reads a scalar value
func (s *RedisStore) Get(ctx context.Context, key string) Result[string] {
	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return Miss[string]()
	}
	if err != nil {
		return Failed[string](unavailable("GET", key, err))
	}
	return Hit(value)
}

// Set writes a scalar value without expiration
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return unavailable("SET", key, err)
	}
	return nil
}

// Del removes a key
func (s *RedisStore) Del(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return unavailable("DEL", key, err)
	}
	return nil
}

// Exists reports whether a key is present
func (s *RedisStore) Exists(ctx context.Context, key string) Result[bool] {
	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return Failed[bool](unavailable("EXISTS", key, err))
	}
	return Hit(n > 0)
}

// SAdd adds a member to a set
func (s *RedisStore) SAdd(ctx context.Context, key, member string) error {
	if err := s.client.SAdd(ctx, key, member).Err(); err != nil {
		return unavailable("SADD", key, err)
	}
	return nil
}

// SRem removes a member from a set
func (s *RedisStore) SRem(ctx context.Context, key, member string) error {
	if err := s.client.SRem(ctx, key, member).Err(); err != nil {
		return unavailable("SREM", key, err)
	}
	return nil
}

// SMembers lists a set; an absent set is an empty hit
func (s *RedisStore) SMembers(ctx context.Context, key string) Result[[]string] {
	members, err := s.client.SMembers(ctx, key).Result()
	if err != nil {
		return Failed[[]string](unavailable("SMEMBERS", key, err))
	}
	return Hit(members)
}

// SMIsMember checks several members at once
func (s *RedisStore) SMIsMember(ctx context.Context, key string, members ...string) Result[[]bool] {
	if len(members) == 0 {
		return Hit([]bool{})
	}
	args := make([]interface{}, len(members))
	for i, m := range members {
		args[i] = m
	}
	found, err := s.client.SMIsMember(ctx, key, args...).Result()
	if err != nil {
		return Failed[[]bool](unavailable("SMISMEMBER", key, err))
	}
	return Hit(found)
}

// ZAdd sets the absolute score of a member
func (s *RedisStore) ZAdd(ctx context.Context, key, member string, score int64) error {
	if err := s.client.ZAdd(ctx, key, redis.Z{Score: float64(score), Member: member}).Err(); err != nil {
		return unavailable("ZADD", key, err)
	}
	return nil
}

// ZIncrBy atomically adjusts the score of a member and returns the new score
func (s *RedisStore) ZIncrBy(ctx context.Context, key, member string, delta int64) (int64, error) {
	score, err := s.client.ZIncrBy(ctx, key, float64(delta), member).Result()
	if err != nil {
		return 0, unavailable("ZINCRBY", key, err)
	}
	return toInt(score), nil
}

// ZScore reads the score of a member
func (s *RedisStore) ZScore(ctx context.Context, key, member string) Result[int64] {
	score, err := s.client.ZScore(ctx, key, member).Result()
	if errors.Is(err, redis.Nil) {
		return Miss[int64]()
	}
	if err != nil {
		return Failed[int64](unavailable("ZSCORE", key, err))
	}
	return Hit(toInt(score))
}

// ZRevRank returns the zero-based position of a member, highest score first
func (s *RedisStore) ZRevRank(ctx context.Context, key, member string) Result[int64] {
	rank, err := s.client.ZRevRank(ctx, key, member).Result()
	if errors.Is(err, redis.Nil) {
		return Miss[int64]()
	}
	if err != nil {
		return Failed[int64](unavailable("ZREVRANK", key, err))
	}
	return Hit(rank)
}

// ZRevRangeWithScores lists members from the highest score down
func (s *RedisStore) ZRevRangeWithScores(ctx context.Context, key string, start, stop int64) Result[[]ScoredMember] {
	entries, err := s.client.ZRevRangeWithScores(ctx, key, start, stop).Result()
	if err != nil {
		return Failed[[]ScoredMember](unavailable("ZREVRANGE", key, err))
	}

	members := make([]ScoredMember, 0, len(entries))
	for _, z := range entries {
		members = append(members, ScoredMember{
			Member: fmt.Sprint(z.Member),
			Score:  toInt(z.Score),
		})
	}
	return Hit(members)
}

// RPush appends a value to a list and returns the new length
func (s *RedisStore) RPush(ctx context.Context, key, value string) (int64, error) {
	n, err := s.client.RPush(ctx, key, value).Result()
	if err != nil {
		return 0, unavailable("RPUSH", key, err)
	}
	return n, nil
}

// LRange reads a slice of a list
func (s *RedisStore) LRange(ctx context.Context, key string, start, stop int64) Result[[]string] {
	values, err := s.client.LRange(ctx, key, start, stop).Result()
	if err != nil {
		return Failed[[]string](unavailable("LRANGE", key, err))
	}
	return Hit(values)
}

// LLen returns the length of a list
func (s *RedisStore) LLen(ctx context.Context, key string) Result[int64] {
	n, err := s.client.LLen(ctx, key).Result()
	if err != nil {
		return Failed[int64](unavailable("LLEN", key, err))
	}
	return Hit(n)
}

// Ping checks the connection
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return unavailable("PING", "", err)
	}
	return nil
}

// Status returns a display string and whether the store answered a ping
func (s *RedisStore) Status(ctx context.Context) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.client.Ping(ctx).Err(); err != nil {
		return "🔴 | offline", false
	}
	return "🟢 | online", true
}

// Close closes the connection pool
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// toInt converts a sorted-set score to a whole number, clamping scores that do
// not fit in an int64. Scores within ±2^53 convert exactly.
func toInt(score float64) int64 {
	switch {
	case math.IsNaN(score):
		return 0
	case score >= math.MaxInt64:
		return math.MaxInt64
	case score <= math.MinInt64:
		return math.MinInt64
	}
	return int64(math.Round(score))
}
