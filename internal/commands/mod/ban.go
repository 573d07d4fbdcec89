package mod

import (
	"github.com/PancyStudios/RailmodGo/pkg/discord"
	"github.com/PancyStudios/RailmodGo/pkg/mqtt"
)

// createBanCommand creates the ban command
func createBanCommand() *discord.Command {
	return discord.NewCommand(
		"ban",
		"bans a member from the server",
		"mod",
		banHandler,
	).WithUsage("<@member> [reason]").AsPrivileged()
}

// banHandler bans on Discord first; the ban is only recorded if that worked
func banHandler(ctx *discord.CommandContext) error {
	memberID, ok := ctx.TargetUserID(0)
	if !ok {
		return ctx.Reply(ctx.Usage())
	}
	reason := ctx.Rest(1)
	guildID := ctx.GuildID()

	err := ctx.Engine.Ban(ctx.Context(), ctx.Actor, guildID, memberID, func() error {
		return ctx.Platform.GuildBanCreateWithReason(guildID, memberID, reason, 0)
	})
	if err != nil {
		return err
	}

	ctx.Publish(mqtt.EventBan, memberID, reason)
	if reason == "" {
		return ctx.Replyf("<@%s> has been banned", memberID)
	}
	return ctx.Replyf("<@%s> has been banned, reason: %s", memberID, reason)
}

// createUnbanCommand creates the unban command
func createUnbanCommand() *discord.Command {
	return discord.NewCommand(
		"unban",
		"lifts the ban of a user",
		"mod",
		unbanHandler,
	).WithUsage("<user id>").AsPrivileged()
}

func unbanHandler(ctx *discord.CommandContext) error {
	memberID, ok := ctx.TargetUserID(0)
	if !ok {
		return ctx.Reply(ctx.Usage())
	}
	guildID := ctx.GuildID()

	err := ctx.Engine.Unban(ctx.Context(), ctx.Actor, guildID, memberID, func() error {
		return ctx.Platform.GuildBanDelete(guildID, memberID)
	})
	if err != nil {
		return err
	}

	ctx.Publish(mqtt.EventUnban, memberID, "")
	return ctx.Replyf("<@%s> has been unbanned", memberID)
}
