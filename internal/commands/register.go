// Package commands registers every prefix command of the bot.
// Commands are organized in subdirectories by category (utils, config, points, mod).
package commands

import (
	"github.com/PancyStudios/RailmodGo/internal/commands/config"
	"github.com/PancyStudios/RailmodGo/internal/commands/mod"
	"github.com/PancyStudios/RailmodGo/internal/commands/points"
	"github.com/PancyStudios/RailmodGo/internal/commands/utils"
	"github.com/PancyStudios/RailmodGo/pkg/discord"
)

// RegisterAll registers all commands with the command handler
func RegisterAll(handler *discord.CommandHandler) {
	utils.RegisterUtilsCommands(handler)
	config.RegisterConfigCommands(handler)
	points.RegisterPointsCommands(handler)
	mod.RegisterModCommands(handler)
}
