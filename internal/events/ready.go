package events

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/PancyStudios/RailmodGo/pkg/discord"
	"github.com/PancyStudios/RailmodGo/pkg/errors"
	"github.com/PancyStudios/RailmodGo/pkg/logger"
)

// RegisterReadyEvent registers the ready event handler
func RegisterReadyEvent(client *discord.ExtendedClient) {
	client.EventHandler.OnReady(onReady(client))
}

// onReady logs the connection and sets the presence to the help command
func onReady(client *discord.ExtendedClient) discord.ReadyHandler {
	return func(s *discordgo.Session, r *discordgo.Ready) {
		defer errors.RecoverMiddleware("event ready")()

		logger.Success(fmt.Sprintf("Bot connected: %s", r.User.Username), "Ready")
		logger.Info(fmt.Sprintf("Connected to %d servers", len(r.Guilds)), "Ready")

		status := presence(client.Engine.GlobalPrefix(context.Background()))
		if err := s.UpdateGameStatus(0, status); err != nil {
			logger.Error(fmt.Sprintf("Error setting status: %v", err), "Ready")
			return
		}
		logger.Debug("Status set to "+status, "Ready")
	}
}

// presence is the status line shown under the bot's name
func presence(prefix string) string {
	return prefix + "help"
}
