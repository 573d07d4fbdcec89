package config

import (
	"github.com/PancyStudios/RailmodGo/pkg/discord"
	"github.com/PancyStudios/RailmodGo/pkg/mqtt"
)

// createSetPointsNameCommand creates the setpointsname command
func createSetPointsNameCommand() *discord.Command {
	return discord.NewCommand(
		"setpointsname",
		"renames the points of this server",
		"config",
		setPointsNameHandler,
	).WithUsage("<name>").AsPrivileged()
}

func setPointsNameHandler(ctx *discord.CommandContext) error {
	out, err := ctx.Engine.SetPointsLabel(ctx.Context(), ctx.Actor, ctx.GuildID(), ctx.Rest(0))
	if err != nil {
		return err
	}
	if out.Applied {
		ctx.Publish(mqtt.EventPointsName, "", ctx.Rest(0))
	}
	return ctx.Reply(out.Message)
}
