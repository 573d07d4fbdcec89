// Package events provides the gateway event handlers of the bot.
// Events are organized by category (ready, guild, message).
package events

import (
	"github.com/PancyStudios/RailmodGo/pkg/discord"
	"github.com/PancyStudios/RailmodGo/pkg/logger"
)

// RegisterAll registers all events with the Discord client
func RegisterAll(client *discord.ExtendedClient) {
	logger.System("Registering bot events...", "Events")

	RegisterReadyEvent(client)
	RegisterGuildEvents(client)
	RegisterMessageEvents(client)

	logger.Success("All events registered", "Events")
}
