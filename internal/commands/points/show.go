package points

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/dustin/go-humanize"

	"github.com/PancyStudios/RailmodGo/pkg/discord"
	"github.com/PancyStudios/RailmodGo/pkg/state"
)

// createPointsCommand creates the points command
func createPointsCommand() *discord.Command {
	return discord.NewCommand(
		"points",
		"shows the points of a member",
		"points",
		pointsHandler,
	).WithAliases("score").WithUsage("[@member]")
}

func pointsHandler(ctx *discord.CommandContext) error {
	memberID := ctx.Actor.ID
	if ctx.Arg(0) != "" {
		id, ok := ctx.TargetUserID(0)
		if !ok {
			return ctx.Reply(ctx.Usage())
		}
		memberID = id
	}

	guildID := ctx.GuildID()
	score := ctx.Engine.Score(ctx.Context(), guildID, memberID)
	label := ctx.Engine.PointsLabel(ctx.Context(), guildID)

	msg := fmt.Sprintf("<@%s> has %s %s", memberID, humanize.Comma(score), label)
	if rank, ok := ctx.Engine.Rank(ctx.Context(), guildID, memberID); ok {
		msg += fmt.Sprintf(" (%s place)", humanize.Ordinal(int(rank)))
	}
	return ctx.Reply(msg)
}

// createLeaderboardCommand creates the leaderboard command
func createLeaderboardCommand() *discord.Command {
	return discord.NewCommand(
		"leaderboard",
		"shows the members with the most points",
		"points",
		leaderboardHandler,
	).WithAliases("top", "lb").WithUsage("[size]")
}

func leaderboardHandler(ctx *discord.CommandContext) error {
	n, ok := parseAmount(ctx.Arg(0), state.DefaultTop)
	if !ok {
		return ctx.Reply(ctx.Usage())
	}

	guildID := ctx.GuildID()
	label := ctx.Engine.PointsLabel(ctx.Context(), guildID)
	board := ctx.Engine.Top(ctx.Context(), guildID, int(n))
	if board.Empty() {
		return ctx.Replyf("nobody has any %s yet", label)
	}

	return ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s leaderboard", label),
		Description: renderStandings(board.Standings),
		Color:       0x5865F2,
	})
}

// renderStandings formats one "1. <@id> · 1,200" line per row
func renderStandings(standings []state.Standing) string {
	lines := make([]string, len(standings))
	for i, s := range standings {
		lines[i] = fmt.Sprintf("%d. <@%s> · %s", i+1, s.MemberID, humanize.Comma(s.Score))
	}
	return strings.Join(lines, "\n")
}
