package events

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/PancyStudios/RailmodGo/pkg/discord"
	"github.com/PancyStudios/RailmodGo/pkg/errors"
	"github.com/PancyStudios/RailmodGo/pkg/logger"
)

// RegisterMessageEvents registers all message-related event handlers
func RegisterMessageEvents(client *discord.ExtendedClient) {
	client.EventHandler.OnMessageCreate(onMessageCreate(client))
}

// onMessageCreate hands guild messages to the command dispatcher. A message
// that only mentions the bot gets the current prefix back.
func onMessageCreate(client *discord.ExtendedClient) discord.MessageCreateHandler {
	return func(_ *discordgo.Session, m *discordgo.MessageCreate) {
		defer errors.RecoverMiddleware("event messageCreate")()

		if m.Author == nil || m.Author.Bot || m.GuildID == "" {
			return
		}

		ctx := context.Background()
		if isBareMention(m.Content, client.CommandHandler.BotID()) {
			prefix := client.Engine.Prefix(ctx, m.GuildID)
			_, err := client.Platform.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
				Content:         fmt.Sprintf("my prefix here is `%s`, try `%shelp`", prefix, prefix),
				AllowedMentions: &discordgo.MessageAllowedMentions{},
			})
			if err != nil {
				logger.Debug(fmt.Sprintf("Error answering mention: %v", err), "Message")
			}
			return
		}

		client.HandleMessage(ctx, m.Message)
	}
}

// isBareMention reports whether content is nothing but a mention of the bot
func isBareMention(content, botID string) bool {
	if botID == "" {
		return false
	}
	content = strings.TrimSpace(content)
	return content == "<@"+botID+">" || content == "<@!"+botID+">"
}
