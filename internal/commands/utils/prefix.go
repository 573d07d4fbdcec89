package utils

import (
	"github.com/PancyStudios/RailmodGo/pkg/discord"
)

// createPrefixCommand creates the prefix command
func createPrefixCommand() *discord.Command {
	return discord.NewCommand(
		"prefix",
		"shows the prefix of this server",
		"utils",
		prefixHandler,
	)
}

func prefixHandler(ctx *discord.CommandContext) error {
	return ctx.Replyf("the prefix for this server is `%s`", ctx.Prefix)
}
