package points

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/PancyStudios/RailmodGo/pkg/discord"
	"github.com/PancyStudios/RailmodGo/pkg/mqtt"
	"github.com/PancyStudios/RailmodGo/pkg/state"
)

// createSetPointsCommand creates the setpoints command
func createSetPointsCommand() *discord.Command {
	return discord.NewCommand(
		"setpoints",
		"sets the points of a member",
		"points",
		setPointsHandler,
	).WithUsage("<@member> <amount>").AsPrivileged()
}

func setPointsHandler(ctx *discord.CommandContext) error {
	memberID, ok := ctx.TargetUserID(0)
	if !ok || ctx.Arg(1) == "" {
		return ctx.Reply(ctx.Usage())
	}
	amount, ok := parseAmount(ctx.Arg(1), 0)
	if !ok {
		return ctx.Reply(ctx.Usage())
	}

	if err := ctx.Engine.SetScore(ctx.Context(), ctx.Actor, ctx.GuildID(), memberID, amount); err != nil {
		return err
	}

	ctx.Publish(mqtt.EventPoints, memberID, fmt.Sprintf("=%d", amount))
	return ctx.Replyf("<@%s> now has %s %s", memberID, humanize.Comma(amount), ctx.Engine.PointsLabel(ctx.Context(), ctx.GuildID()))
}

// createAddPointsCommand creates the addpoints command
func createAddPointsCommand() *discord.Command {
	return discord.NewCommand(
		"addpoints",
		"gives points to a member, one when no amount is given",
		"points",
		addPointsHandler,
	).WithAliases("give").WithUsage("<@member> [amount]").AsPrivileged()
}

func addPointsHandler(ctx *discord.CommandContext) error {
	memberID, ok := ctx.TargetUserID(0)
	if !ok {
		return ctx.Reply(ctx.Usage())
	}
	delta, ok := parseAmount(ctx.Arg(1), state.DefaultIncrement)
	if !ok {
		return ctx.Reply(ctx.Usage())
	}

	score, err := ctx.Engine.IncrementScore(ctx.Context(), ctx.Actor, ctx.GuildID(), memberID, delta)
	if err != nil {
		return err
	}

	ctx.Publish(mqtt.EventPoints, memberID, fmt.Sprintf("%+d", delta))
	return ctx.Replyf("<@%s> now has %s %s", memberID, humanize.Comma(score), ctx.Engine.PointsLabel(ctx.Context(), ctx.GuildID()))
}
