package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/PancyStudios/RailmodGo/pkg/logger"
	"github.com/PancyStudios/RailmodGo/pkg/state"
)

// DMRelay delivers private notices through direct messages
type DMRelay struct {
	platform Platform
}

var _ state.Notifier = (*DMRelay)(nil)

// NewDMRelay creates a relay on top of the given platform
func NewDMRelay(platform Platform) *DMRelay {
	return &DMRelay{platform: platform}
}

// DeliverPrivate sends text to the member's DM channel and reports whether it arrived.
// Members with closed DMs are a normal outcome, not an error.
func (r *DMRelay) DeliverPrivate(_ context.Context, memberID, text string) bool {
	channel, err := r.platform.UserChannelCreate(memberID)
	if err != nil {
		logger.Debug(fmt.Sprintf("Could not open DM with %s: %v", memberID, err), "Relay")
		return false
	}

	_, err = r.platform.ChannelMessageSendComplex(channel.ID, &discordgo.MessageSend{
		Content:         text,
		AllowedMentions: &discordgo.MessageAllowedMentions{},
	})
	if err != nil {
		logger.Debug(fmt.Sprintf("Could not DM %s: %v", memberID, err), "Relay")
		return false
	}
	return true
}
