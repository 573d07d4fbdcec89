package state

import (
	"context"
	"fmt"
	"time"

	"github.com/PancyStudios/RailmodGo/pkg/logger"
	"github.com/PancyStudios/RailmodGo/pkg/metrics"
)

// RecentWarnings is how many warnings a member summary shows
const RecentWarnings = 10

// Severity classifies a member by warning count
type Severity int

const (
	SeverityClear Severity = iota
	SeverityCaution
	SeveritySevere
)

// String returns the name of the severity
func (s Severity) String() string {
	switch s {
	case SeverityClear:
		return "clear"
	case SeverityCaution:
		return "caution"
	case SeveritySevere:
		return "severe"
	default:
		return "unknown"
	}
}

// Color returns the embed color of the severity
func (s Severity) Color() int {
	switch s {
	case SeverityCaution:
		return 0xF1C40F
	case SeveritySevere:
		return 0xE74C3C
	default:
		return 0x2ECC71
	}
}

// ClassifySeverity maps a warning count to a severity
func ClassifySeverity(count int) Severity {
	switch {
	case count <= 0:
		return SeverityClear
	case count < 3:
		return SeverityCaution
	default:
		return SeveritySevere
	}
}

// WarnOutcome is the result of AppendWarning
type WarnOutcome struct {
	Count    int64
	Notified bool
}

// MemberSummary is the moderation card of a member
type MemberSummary struct {
	GuildID      string
	MemberID     string
	JoinedAt     time.Time
	JoinedAgo    string
	WarningCount int
	Severity     Severity
	Recent       []string
	Banned       bool
}

// AppendWarning records a warning and then tries to notify the member privately.
// The warning stays recorded whether or not the notice is delivered. Requires privilege.
func (e *Engine) AppendWarning(ctx context.Context, actor Actor, guildID, memberID, reason, notice string) (WarnOutcome, error) {
	if err := e.Authorize(ctx, actor, guildID); err != nil {
		return WarnOutcome{}, err
	}

	count, err := e.store.RPush(ctx, warningLogKey(guildID, memberID), reason)
	if err != nil {
		return WarnOutcome{}, fmt.Errorf("append warning: %w", err)
	}

	out := WarnOutcome{Count: count}
	if e.notifier != nil && notice != "" {
		out.Notified = e.notifier.DeliverPrivate(ctx, memberID, notice)
		metrics.Notifications.WithLabelValues(fmt.Sprint(out.Notified)).Inc()
	}

	logger.Debug(fmt.Sprintf("Warning #%d recorded for %s in %s (notified: %t)", count, memberID, guildID, out.Notified), "State")
	return out, nil
}

// Warnings returns every warning of a member, oldest first
func (e *Engine) Warnings(ctx context.Context, guildID, memberID string) []string {
	warnings := e.store.LRange(ctx, warningLogKey(guildID, memberID), 0, -1).Or(nil)
	if warnings == nil {
		return []string{}
	}
	return warnings
}

// Ban runs the platform ban and records the marker only if it succeeded.
// Requires privilege.
func (e *Engine) Ban(ctx context.Context, actor Actor, guildID, memberID string, platform func() error) error {
	if err := e.Authorize(ctx, actor, guildID); err != nil {
		return err
	}
	if platform != nil {
		if err := platform(); err != nil {
			return &ActionError{Action: "ban", MemberID: memberID, Err: err}
		}
	}
	if err := e.store.Set(ctx, bannedKey(guildID, memberID), "1"); err != nil {
		return fmt.Errorf("record ban: %w", err)
	}
	return nil
}

// Unban runs the platform unban and clears the marker only if it succeeded.
// Requires privilege.
func (e *Engine) Unban(ctx context.Context, actor Actor, guildID, memberID string, platform func() error) error {
	if err := e.Authorize(ctx, actor, guildID); err != nil {
		return err
	}
	if platform != nil {
		if err := platform(); err != nil {
			return &ActionError{Action: "unban", MemberID: memberID, Err: err}
		}
	}
	if err := e.store.Del(ctx, bannedKey(guildID, memberID)); err != nil {
		return fmt.Errorf("record unban: %w", err)
	}
	return nil
}

// IsBanned reports whether a ban marker exists for the member
func (e *Engine) IsBanned(ctx context.Context, guildID, memberID string) bool {
	return e.store.Exists(ctx, bannedKey(guildID, memberID)).Or(false)
}

// Summary builds the moderation card of a member
func (e *Engine) Summary(ctx context.Context, guildID, memberID string, joinedAt, now time.Time) MemberSummary {
	warnings := e.Warnings(ctx, guildID, memberID)
	recent := warnings
	if len(recent) > RecentWarnings {
		recent = recent[len(recent)-RecentWarnings:]
	}

	return MemberSummary{
		GuildID:      guildID,
		MemberID:     memberID,
		JoinedAt:     joinedAt,
		JoinedAgo:    RelativeAge(joinedAt, now),
		WarningCount: len(warnings),
		Severity:     ClassifySeverity(len(warnings)),
		Recent:       recent,
		Banned:       e.IsBanned(ctx, guildID, memberID),
	}
}
