package events

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/PancyStudios/RailmodGo/pkg/discord"
	"github.com/PancyStudios/RailmodGo/pkg/errors"
	"github.com/PancyStudios/RailmodGo/pkg/logger"
)

// freshJoinWindow separates new joins from guilds replayed on connect
const freshJoinWindow = 10 * time.Second

// RegisterGuildEvents registers all guild-related event handlers
func RegisterGuildEvents(client *discord.ExtendedClient) {
	client.EventHandler.OnGuildCreate(onGuildCreate(client))
	client.EventHandler.OnGuildDelete(onGuildDelete)
}

// onGuildCreate greets servers the bot was just added to
func onGuildCreate(client *discord.ExtendedClient) discord.GuildCreateHandler {
	return func(_ *discordgo.Session, g *discordgo.GuildCreate) {
		defer errors.RecoverMiddleware("event guildCreate")()

		if g.JoinedAt.Before(time.Now().Add(-freshJoinWindow)) {
			return
		}

		logger.Info(fmt.Sprintf("Added to server: %s (ID: %s)", g.Name, g.ID), "Guild")
		logger.Debug(fmt.Sprintf("Members: %d | Channels: %d", g.MemberCount, len(g.Channels)), "Guild")

		if g.SystemChannelID == "" {
			return
		}

		prefix := client.Engine.GlobalPrefix(context.Background())
		_, err := client.Platform.ChannelMessageSendComplex(g.SystemChannelID, &discordgo.MessageSend{
			Embeds:          []*discordgo.MessageEmbed{welcomeEmbed(prefix)},
			AllowedMentions: &discordgo.MessageAllowedMentions{},
		})
		if err != nil {
			logger.Error(fmt.Sprintf("Error sending welcome message: %v", err), "Guild")
		}
	}
}

func welcomeEmbed(prefix string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "thanks for adding me!",
		Description: fmt.Sprintf("my prefix is `%s`, use `%shelp` to see every command", prefix, prefix),
		Color:       0x2ECC71,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Points", Value: fmt.Sprintf("`%saddpoints`, `%sleaderboard`", prefix, prefix), Inline: true},
			{Name: "Moderation", Value: fmt.Sprintf("`%swarn`, `%sban`, `%suserinfo`", prefix, prefix, prefix), Inline: true},
			{Name: "Setup", Value: fmt.Sprintf("`%saddadminrole`, `%ssetprefix`", prefix, prefix), Inline: true},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: "Railmod"},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// onGuildDelete is called when the bot is removed from a server
func onGuildDelete(_ *discordgo.Session, g *discordgo.GuildDelete) {
	if g.Unavailable {
		logger.Warn(fmt.Sprintf("Server %s became unavailable", g.ID), "Guild")
		return
	}
	logger.Info(fmt.Sprintf("Removed from server ID: %s", g.ID), "Guild")
}
