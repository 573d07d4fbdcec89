package mod

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/PancyStudios/RailmodGo/pkg/discord"
	"github.com/PancyStudios/RailmodGo/pkg/mqtt"
)

// createWarnCommand creates the warn command
func createWarnCommand() *discord.Command {
	return discord.NewCommand(
		"warn",
		"warns a member",
		"mod",
		warnHandler,
	).WithUsage("<@member> <reason>").AsPrivileged()
}

// warnHandler records the warning, then tells the member by DM
func warnHandler(ctx *discord.CommandContext) error {
	memberID, ok := ctx.TargetUserID(0)
	reason := ctx.Rest(1)
	if !ok || reason == "" {
		return ctx.Reply(ctx.Usage())
	}

	notice := fmt.Sprintf("you have been warned in **%s**\nreason: %s", ctx.GuildName(), reason)
	out, err := ctx.Engine.AppendWarning(ctx.Context(), ctx.Actor, ctx.GuildID(), memberID, reason, notice)
	if err != nil {
		return err
	}

	ctx.Publish(mqtt.EventWarn, memberID, reason)

	msg := fmt.Sprintf("<@%s> has been warned, that's their %s warning", memberID, humanize.Ordinal(int(out.Count)))
	if !out.Notified {
		msg += "\ni couldn't DM them, they may have DMs turned off"
	}
	return ctx.Reply(msg)
}
