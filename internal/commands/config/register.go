// Package config provides the server configuration commands: prefix, points
// name and admin roles
package config

import (
	"github.com/PancyStudios/RailmodGo/pkg/discord"
)

// RegisterConfigCommands registers the configuration commands
func RegisterConfigCommands(handler *discord.CommandHandler) {
	handler.RegisterCommand(createSetPrefixCommand())
	handler.RegisterCommand(createResetPrefixCommand())
	handler.RegisterCommand(createSetPointsNameCommand())
	handler.RegisterCommand(createAddAdminRoleCommand())
	handler.RegisterCommand(createRemoveAdminRoleCommand())
	handler.RegisterCommand(createAdminRolesCommand())
}
