package mod

import (
	"fmt"
	"strings"

	"github.com/PancyStudios/RailmodGo/pkg/discord"
	"github.com/PancyStudios/RailmodGo/pkg/state"
)

// createWarningsCommand creates the warnings command
func createWarningsCommand() *discord.Command {
	return discord.NewCommand(
		"warnings",
		"lists the most recent warnings of a member",
		"mod",
		warningsHandler,
	).WithAliases("warns").WithUsage("[@member]")
}

func warningsHandler(ctx *discord.CommandContext) error {
	memberID, ok := targetOrSelf(ctx, 0)
	if !ok {
		return ctx.Reply(ctx.Usage())
	}

	warnings := ctx.Engine.Warnings(ctx.Context(), ctx.GuildID(), memberID)
	if len(warnings) == 0 {
		return ctx.Replyf("<@%s> has no warnings", memberID)
	}
	return ctx.Reply(renderWarnings(memberID, warnings))
}

// renderWarnings lists the most recent warnings, numbered from the first one shown
func renderWarnings(memberID string, warnings []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<@%s> has %d warning(s)", memberID, len(warnings))

	start := 0
	if len(warnings) > state.RecentWarnings {
		start = len(warnings) - state.RecentWarnings
		fmt.Fprintf(&b, ", showing the last %d", state.RecentWarnings)
	}
	b.WriteString(":")

	for i := start; i < len(warnings); i++ {
		fmt.Fprintf(&b, "\n%d. %s", i+1, warnings[i])
	}
	return b.String()
}
