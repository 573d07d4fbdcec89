// Package state is the guild-scoped state engine: it reads, mutates and derives
// per-guild configuration, admin roles, point ledgers and moderation records,
// and owns the privilege policy applied to gated operations.
//
// The engine keeps no in-process cache. Every read goes to the store and every
// atomic mutation is a single store call.
package state

import (
	"context"
	"errors"
	"fmt"

	"github.com/PancyStudios/RailmodGo/pkg/store"
)

// DefaultPrefix is used when neither the guild nor the global override sets one
const DefaultPrefix = "rm;"

// DefaultPointsLabel is the label shown for points when a guild has not renamed them
const DefaultPointsLabel = "points"

// ErrPrivilegeDenied is returned by gated operations when the actor holds no admin role
var ErrPrivilegeDenied = errors.New("privilege denied")

// ActionError reports that the platform refused a ban or unban
type ActionError struct {
	Action   string
	MemberID string
	Err      error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("couldn't %s %s: %v", e.Action, e.MemberID, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// Actor is the member issuing a command
type Actor struct {
	ID            string
	RoleIDs       []string
	PlatformAdmin bool

	// Operator marks trusted callers such as the operator CLI; they skip the role gate
	Operator bool
}

// OperatorActor is the actor used by out-of-band tooling
var OperatorActor = Actor{ID: "operator", Operator: true}

// Outcome is the result of a configuration change. When Applied is false nothing
// was written and Message holds usage guidance.
type Outcome struct {
	Applied bool
	Message string
}

// Notifier delivers a private notice to a member
type Notifier interface {
	DeliverPrivate(ctx context.Context, memberID, text string) bool
}

// Options configures an Engine
type Options struct {
	// DefaultPrefix overrides DefaultPrefix when non-empty
	DefaultPrefix string
	Notifier      Notifier
}

// Engine is the guild state engine
type Engine struct {
	store         store.Client
	notifier      Notifier
	defaultPrefix string
}

// NewEngine creates an engine on top of the given store
func NewEngine(client store.Client, opts Options) *Engine {
	prefix := opts.DefaultPrefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Engine{
		store:         client,
		notifier:      opts.Notifier,
		defaultPrefix: prefix,
	}
}

// SetNotifier replaces the notification relay. It must be called before the
// engine starts serving commands.
func (e *Engine) SetNotifier(n Notifier) {
	e.notifier = n
}

// Store returns the store the engine reads from
func (e *Engine) Store() store.Client {
	return e.store
}
