package state

import (
	"context"
	"fmt"
)

// DefaultIncrement is applied when a caller omits the delta
const DefaultIncrement int64 = 1

// DefaultTop is the leaderboard size used when none is requested
const DefaultTop = 10

// MaxScore bounds scores and deltas. Sorted-set scores are doubles, which hold
// whole numbers exactly only up to 2^53.
const MaxScore int64 = 1 << 53

// ErrScoreOutOfRange is returned when a score or delta falls outside ±MaxScore
var ErrScoreOutOfRange = fmt.Errorf("score must be between -%d and %d", MaxScore, MaxScore)

// InScoreRange reports whether n can be stored as a score without losing precision
func InScoreRange(n int64) bool {
	return n >= -MaxScore && n <= MaxScore
}

// Standing is one leaderboard row
type Standing struct {
	MemberID string
	Score    int64
}

// Leaderboard is a guild ranking, highest score first
type Leaderboard struct {
	GuildID   string
	Standings []Standing
}

// Empty reports whether the guild has no scores yet
func (l Leaderboard) Empty() bool {
	return len(l.Standings) == 0
}

// SetScore overwrites the score of a member. Requires privilege.
func (e *Engine) SetScore(ctx context.Context, actor Actor, guildID, memberID string, amount int64) error {
	if err := e.Authorize(ctx, actor, guildID); err != nil {
		return err
	}
	if !InScoreRange(amount) {
		return ErrScoreOutOfRange
	}
	if err := e.store.ZAdd(ctx, pointsKey(guildID), memberID, amount); err != nil {
		return fmt.Errorf("set score: %w", err)
	}
	return nil
}

// IncrementScore adjusts the score of a member by delta and returns the new score.
// Requires privilege.
func (e *Engine) IncrementScore(ctx context.Context, actor Actor, guildID, memberID string, delta int64) (int64, error) {
	if err := e.Authorize(ctx, actor, guildID); err != nil {
		return 0, err
	}
	if !InScoreRange(delta) {
		return 0, ErrScoreOutOfRange
	}
	score, err := e.store.ZIncrBy(ctx, pointsKey(guildID), memberID, delta)
	if err != nil {
		return 0, fmt.Errorf("increment score: %w", err)
	}
	if !InScoreRange(score) {
		// undo with the inverse increment so the stored score stays in range
		if _, err := e.store.ZIncrBy(ctx, pointsKey(guildID), memberID, -delta); err != nil {
			return 0, fmt.Errorf("revert increment: %w", err)
		}
		return 0, ErrScoreOutOfRange
	}
	return score, nil
}

// Score returns the score of a member, 0 when absent
func (e *Engine) Score(ctx context.Context, guildID, memberID string) int64 {
	return e.store.ZScore(ctx, pointsKey(guildID), memberID).Or(0)
}

// Rank returns the 1-based leaderboard position of a member
func (e *Engine) Rank(ctx context.Context, guildID, memberID string) (int64, bool) {
	res := e.store.ZRevRank(ctx, pointsKey(guildID), memberID)
	if !res.Found {
		return 0, false
	}
	return res.Value + 1, true
}

// Top returns the n highest scores of a guild. n <= 0 means DefaultTop.
func (e *Engine) Top(ctx context.Context, guildID string, n int) Leaderboard {
	if n <= 0 {
		n = DefaultTop
	}

	board := Leaderboard{GuildID: guildID, Standings: []Standing{}}
	entries := e.store.ZRevRangeWithScores(ctx, pointsKey(guildID), 0, int64(n-1)).Or(nil)
	for _, entry := range entries {
		board.Standings = append(board.Standings, Standing{MemberID: entry.Member, Score: entry.Score})
	}
	return board
}
