package state

import (
	"context"
	"fmt"
	"strings"

	"github.com/PancyStudios/RailmodGo/pkg/logger"
)

// Prefix returns the effective command prefix of a guild: the guild override,
// then the global override, then the default.
func (e *Engine) Prefix(ctx context.Context, guildID string) string {
	res := e.store.Get(ctx, prefixKey(guildID))
	if res.IsUnavailable() {
		return e.defaultPrefix
	}
	if res.Found && res.Value != "" {
		return res.Value
	}
	return e.GlobalPrefix(ctx)
}

// GlobalPrefix returns the prefix of guilds without their own: the global
// override, then the default
func (e *Engine) GlobalPrefix(ctx context.Context) string {
	prefix := e.store.Get(ctx, defaultPrefixKey).Or(e.defaultPrefix)
	if prefix == "" {
		return e.defaultPrefix
	}
	return prefix
}

// SetGlobalPrefix stores the global override. An empty prefix removes it.
func (e *Engine) SetGlobalPrefix(ctx context.Context, prefix string) error {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		if err := e.store.Del(ctx, defaultPrefixKey); err != nil {
			return fmt.Errorf("reset global prefix: %w", err)
		}
		return nil
	}
	if err := e.store.Set(ctx, defaultPrefixKey, prefix); err != nil {
		return fmt.Errorf("set global prefix: %w", err)
	}
	return nil
}

// SetPrefix stores a new prefix for a guild. An empty prefix writes nothing and
// returns guidance built from the current prefix.
func (e *Engine) SetPrefix(ctx context.Context, guildID, newPrefix string) (Outcome, error) {
	newPrefix = strings.TrimSpace(newPrefix)
	if newPrefix == "" {
		current := e.Prefix(ctx, guildID)
		alt := DefaultPrefix
		if current == DefaultPrefix {
			alt = "!"
		}
		return Outcome{
			Message: fmt.Sprintf("please provide a new prefix, for example `%ssetprefix %s`", current, alt),
		}, nil
	}

	if err := e.store.Set(ctx, prefixKey(guildID), newPrefix); err != nil {
		return Outcome{}, fmt.Errorf("set prefix: %w", err)
	}

	logger.Debug(fmt.Sprintf("Guild %s prefix set to %q", guildID, newPrefix), "State")
	return Outcome{
		Applied: true,
		Message: fmt.Sprintf("prefix set to `%s` for this server", newPrefix),
	}, nil
}

// ResetPrefix removes the guild override so the guild falls back to the default
func (e *Engine) ResetPrefix(ctx context.Context, guildID string) error {
	if err := e.store.Del(ctx, prefixKey(guildID)); err != nil {
		return fmt.Errorf("reset prefix: %w", err)
	}
	return nil
}

// PointsLabel returns what a guild calls its points
func (e *Engine) PointsLabel(ctx context.Context, guildID string) string {
	label := e.store.Get(ctx, pointsNameKey(guildID)).Or(DefaultPointsLabel)
	if label == "" {
		return DefaultPointsLabel
	}
	return label
}

// SetPointsLabel renames the points of a guild. Requires privilege.
func (e *Engine) SetPointsLabel(ctx context.Context, actor Actor, guildID, name string) (Outcome, error) {
	if err := e.Authorize(ctx, actor, guildID); err != nil {
		return Outcome{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		current := e.PointsLabel(ctx, guildID)
		alt := "cookies"
		if current == alt {
			alt = DefaultPointsLabel
		}
		return Outcome{
			Message: fmt.Sprintf("please provide a name, for example `%ssetpointsname %s`", e.Prefix(ctx, guildID), alt),
		}, nil
	}

	if err := e.store.Set(ctx, pointsNameKey(guildID), name); err != nil {
		return Outcome{}, fmt.Errorf("set points label: %w", err)
	}
	return Outcome{
		Applied: true,
		Message: fmt.Sprintf("points are now called `%s` in this server", name),
	}, nil
}
