package config

import (
	"github.com/PancyStudios/RailmodGo/pkg/discord"
	"github.com/PancyStudios/RailmodGo/pkg/mqtt"
)

// createSetPrefixCommand creates the setprefix command
func createSetPrefixCommand() *discord.Command {
	return discord.NewCommand(
		"setprefix",
		"changes the command prefix of this server",
		"config",
		setPrefixHandler,
	).WithUsage("<prefix>").AsAdminOnly()
}

func setPrefixHandler(ctx *discord.CommandContext) error {
	out, err := ctx.Engine.SetPrefix(ctx.Context(), ctx.GuildID(), ctx.Arg(0))
	if err != nil {
		return err
	}
	if out.Applied {
		ctx.Publish(mqtt.EventPrefix, "", ctx.Engine.Prefix(ctx.Context(), ctx.GuildID()))
	}
	return ctx.Reply(out.Message)
}

// createResetPrefixCommand creates the resetprefix command
func createResetPrefixCommand() *discord.Command {
	return discord.NewCommand(
		"resetprefix",
		"goes back to the default prefix",
		"config",
		resetPrefixHandler,
	).AsAdminOnly()
}

func resetPrefixHandler(ctx *discord.CommandContext) error {
	if err := ctx.Engine.ResetPrefix(ctx.Context(), ctx.GuildID()); err != nil {
		return err
	}
	prefix := ctx.Engine.Prefix(ctx.Context(), ctx.GuildID())
	ctx.Publish(mqtt.EventPrefix, "", prefix)
	return ctx.Replyf("prefix reset to `%s`", prefix)
}
