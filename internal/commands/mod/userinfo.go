package mod

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/PancyStudios/RailmodGo/pkg/discord"
	"github.com/PancyStudios/RailmodGo/pkg/state"
)

// createUserInfoCommand creates the userinfo command
func createUserInfoCommand() *discord.Command {
	return discord.NewCommand(
		"userinfo",
		"shows the moderation card of a member",
		"mod",
		userInfoHandler,
	).WithAliases("whois").WithUsage("[@member]")
}

func userInfoHandler(ctx *discord.CommandContext) error {
	memberID, ok := targetOrSelf(ctx, 0)
	if !ok {
		return ctx.Reply(ctx.Usage())
	}

	var joinedAt time.Time
	name := memberID
	if member, err := ctx.Member(memberID); err == nil && member != nil {
		joinedAt = member.JoinedAt
		if member.User != nil {
			name = member.User.Username
		}
	}

	summary := ctx.Engine.Summary(ctx.Context(), ctx.GuildID(), memberID, joinedAt, time.Now())
	return ctx.ReplyEmbed(summaryEmbed(name, summary))
}

// summaryEmbed renders a member summary as a card colored by severity
func summaryEmbed(name string, s state.MemberSummary) *discordgo.MessageEmbed {
	joined := s.JoinedAgo
	if !s.JoinedAt.IsZero() {
		joined = fmt.Sprintf("<t:%d:D> (%s)", s.JoinedAt.Unix(), s.JoinedAgo)
	}

	recent := "none"
	if len(s.Recent) > 0 {
		lines := make([]string, len(s.Recent))
		for i, w := range s.Recent {
			lines[i] = "• " + w
		}
		recent = strings.Join(lines, "\n")
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "Member", Value: fmt.Sprintf("<@%s>", s.MemberID), Inline: true},
		{Name: "Joined", Value: joined, Inline: true},
		{Name: "Warnings", Value: fmt.Sprintf("%d (%s)", s.WarningCount, s.Severity), Inline: true},
		{Name: "Recent warnings", Value: recent},
	}
	if s.Banned {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Status", Value: "banned through the bot"})
	}

	return &discordgo.MessageEmbed{
		Title:  name,
		Color:  s.Severity.Color(),
		Fields: fields,
	}
}
