// Package mod provides the moderation commands. Each command is in its own file.
package mod

import (
	"github.com/PancyStudios/RailmodGo/pkg/discord"
)

// RegisterModCommands registers the moderation commands
func RegisterModCommands(handler *discord.CommandHandler) {
	handler.RegisterCommand(createWarnCommand())
	handler.RegisterCommand(createWarningsCommand())
	handler.RegisterCommand(createUserInfoCommand())
	handler.RegisterCommand(createBanCommand())
	handler.RegisterCommand(createUnbanCommand())
}

// targetOrSelf resolves the i-th argument as a member, defaulting to the actor
func targetOrSelf(ctx *discord.CommandContext, i int) (string, bool) {
	if ctx.Arg(i) == "" {
		return ctx.Actor.ID, true
	}
	return ctx.TargetUserID(i)
}
