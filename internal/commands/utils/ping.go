package utils

import (
	"fmt"

	"github.com/PancyStudios/RailmodGo/pkg/discord"
)

// createPingCommand creates the ping command
func createPingCommand() *discord.Command {
	return discord.NewCommand(
		"ping",
		"checks that the bot is alive",
		"utils",
		pingHandler,
	)
}

// pingHandler handles the ping command
func pingHandler(ctx *discord.CommandContext) error {
	if ctx.Client == nil || ctx.Client.Session == nil {
		return ctx.Reply("pong!")
	}
	latency := ctx.Client.Session.HeartbeatLatency().Milliseconds()
	return ctx.Reply(fmt.Sprintf("pong! (%dms)", latency))
}
