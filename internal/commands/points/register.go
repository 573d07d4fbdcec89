// Package points provides the reputation commands
package points

import (
	"strconv"

	"github.com/PancyStudios/RailmodGo/pkg/discord"
	"github.com/PancyStudios/RailmodGo/pkg/state"
)

// RegisterPointsCommands registers the points commands
func RegisterPointsCommands(handler *discord.CommandHandler) {
	handler.RegisterCommand(createSetPointsCommand())
	handler.RegisterCommand(createAddPointsCommand())
	handler.RegisterCommand(createPointsCommand())
	handler.RegisterCommand(createLeaderboardCommand())
}

// parseAmount parses a whole number within ±state.MaxScore, falling back to def
// when arg is empty
func parseAmount(arg string, def int64) (int64, bool) {
	if arg == "" {
		return def, true
	}
	n, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || !state.InScoreRange(n) {
		return 0, false
	}
	return n, true
}
