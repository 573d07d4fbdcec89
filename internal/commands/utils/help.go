package utils

import (
	"fmt"
	"strings"

	"github.com/PancyStudios/RailmodGo/pkg/discord"
)

// createHelpCommand creates the help command
func createHelpCommand() *discord.Command {
	return discord.NewCommand(
		"help",
		"lists the available commands",
		"utils",
		helpHandler,
	).WithAliases("commands")
}

// helpHandler lists every visible command, one per line
func helpHandler(ctx *discord.CommandContext) error {
	return ctx.Reply(helpText(ctx.Commands))
}

func helpText(commands *discord.CommandCollection) string {
	if commands == nil {
		return "no commands found ¯\\_(ツ)_/¯"
	}

	var lines []string
	for _, cmd := range commands.All() {
		if cmd.Hidden {
			continue
		}
		lines = append(lines, fmt.Sprintf("`%s` | %s", cmd.Name, cmd.Description))
	}
	if len(lines) == 0 {
		return "no commands found ¯\\_(ツ)_/¯"
	}
	return strings.Join(lines, "\n")
}
