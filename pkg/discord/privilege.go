package discord

import (
	"fmt"

	"github.com/PancyStudios/RailmodGo/pkg/logger"
	"github.com/PancyStudios/RailmodGo/pkg/metrics"
)

// denyAndNotify refuses a gated command. It tells the actor privately why,
// then removes the command message from the channel. A failed notice never
// stops the removal and neither failure reaches the channel.
func (ch *CommandHandler) denyAndNotify(ctx *CommandContext) {
	name := ctx.Command.Name
	metrics.PrivilegeDenied.WithLabelValues(name).Inc()
	metrics.CommandsTotal.WithLabelValues(name, metrics.OutcomeDenied).Inc()

	notice := fmt.Sprintf("you don't have permission to use `%s` in **%s**\nyour message: %s",
		name, ctx.GuildName(), ctx.Message.Content)
	if !ch.relay.DeliverPrivate(ctx.Context(), ctx.Actor.ID, notice) {
		logger.Debug(fmt.Sprintf("Denial notice to %s was not delivered", ctx.Actor.ID), "Privilege")
	}

	if err := ch.platform.ChannelMessageDelete(ctx.ChannelID(), ctx.Message.ID); err != nil {
		logger.Debug(fmt.Sprintf("Could not remove denied command message %s: %v", ctx.Message.ID, err), "Privilege")
	}

	logger.Info(fmt.Sprintf("Denied %s to %s in guild %s", name, ctx.Actor.ID, ctx.GuildID()), "Privilege")
}
