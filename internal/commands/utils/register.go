// Package utils provides general purpose commands: ping, help, prefix and stats
package utils

import (
	"github.com/PancyStudios/RailmodGo/pkg/discord"
)

// RegisterUtilsCommands registers the utility commands
func RegisterUtilsCommands(handler *discord.CommandHandler) {
	handler.RegisterCommand(createPingCommand())
	handler.RegisterCommand(createHelpCommand())
	handler.RegisterCommand(createPrefixCommand())
	handler.RegisterCommand(createStatsCommand())
}
