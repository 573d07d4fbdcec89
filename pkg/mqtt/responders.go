package mqtt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PancyStudios/RailmodGo/pkg/state"
)

const responderTimeout = 5 * time.Second

// LeaderboardEntry is one row of a leaderboard response
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	MemberID string `json:"memberId"`
	Score    int64  `json:"score"`
}

// LeaderboardResponse answers railmod/request/leaderboard
type LeaderboardResponse struct {
	GuildID string             `json:"guildId"`
	Label   string             `json:"label"`
	Entries []LeaderboardEntry `json:"entries"`
}

// MemberResponse answers railmod/request/member
type MemberResponse struct {
	GuildID  string   `json:"guildId"`
	MemberID string   `json:"memberId"`
	Score    int64    `json:"score"`
	Rank     int64    `json:"rank,omitempty"`
	Warnings []string `json:"warnings"`
	Severity string   `json:"severity"`
	Banned   bool     `json:"banned"`
}

// RegisterResponders answers guild state queries from other services
func RegisterResponders(mc *MqttCommunicator, engine *state.Engine) {
	mc.On("leaderboard", LeaderboardHandler(engine))
	mc.On("member", MemberHandler(engine))
}

// LeaderboardHandler expects {"guildId": "...", "n": 10}
func LeaderboardHandler(engine *state.Engine) RequestHandler {
	return func(payload map[string]interface{}) (interface{}, error) {
		guildID, err := stringField(payload, "guildId")
		if err != nil {
			return nil, err
		}

		n := 0
		if raw, ok := payload["n"].(float64); ok {
			n = int(raw)
		}

		ctx, cancel := context.WithTimeout(context.Background(), responderTimeout)
		defer cancel()

		board := engine.Top(ctx, guildID, n)
		resp := LeaderboardResponse{
			GuildID: guildID,
			Label:   engine.PointsLabel(ctx, guildID),
			Entries: make([]LeaderboardEntry, 0, len(board.Standings)),
		}
		for i, s := range board.Standings {
			resp.Entries = append(resp.Entries, LeaderboardEntry{Rank: i + 1, MemberID: s.MemberID, Score: s.Score})
		}
		return resp, nil
	}
}

// MemberHandler expects {"guildId": "...", "memberId": "..."}
func MemberHandler(engine *state.Engine) RequestHandler {
	return func(payload map[string]interface{}) (interface{}, error) {
		guildID, err := stringField(payload, "guildId")
		if err != nil {
			return nil, err
		}
		memberID, err := stringField(payload, "memberId")
		if err != nil {
			return nil, err
		}

		ctx, cancel := context.WithTimeout(context.Background(), responderTimeout)
		defer cancel()

		warnings := engine.Warnings(ctx, guildID, memberID)
		resp := MemberResponse{
			GuildID:  guildID,
			MemberID: memberID,
			Score:    engine.Score(ctx, guildID, memberID),
			Warnings: warnings,
			Severity: state.ClassifySeverity(len(warnings)).String(),
			Banned:   engine.IsBanned(ctx, guildID, memberID),
		}
		if rank, ok := engine.Rank(ctx, guildID, memberID); ok {
			resp.Rank = rank
		}
		return resp, nil
	}
}

var errMissingField = errors.New("missing field")

func stringField(payload map[string]interface{}, key string) (string, error) {
	value, ok := payload[key].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("%w: %s", errMissingField, key)
	}
	return value, nil
}
