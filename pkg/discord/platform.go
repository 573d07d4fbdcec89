package discord

import (
	"github.com/bwmarrin/discordgo"
)

// Platform is the subset of the Discord REST API the bot calls.
// *discordgo.Session satisfies it; tests provide a fake.
type Platform interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	UserChannelPermissions(userID, channelID string, fetchOptions ...discordgo.RequestOption) (int64, error)
	GuildBanCreateWithReason(guildID, userID, reason string, days int, options ...discordgo.RequestOption) error
	GuildBanDelete(guildID, userID string, options ...discordgo.RequestOption) error
	GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)
	Guild(guildID string, options ...discordgo.RequestOption) (*discordgo.Guild, error)
}

// sessionPlatform reads guilds and members from the state cache before hitting REST
type sessionPlatform struct {
	*discordgo.Session
}

var _ Platform = sessionPlatform{}

// Guild returns a guild from the state cache, falling back to REST
func (p sessionPlatform) Guild(guildID string, options ...discordgo.RequestOption) (*discordgo.Guild, error) {
	if p.State != nil {
		if g, err := p.State.Guild(guildID); err == nil {
			return g, nil
		}
	}
	return p.Session.Guild(guildID, options...)
}

// GuildMember returns a member from the state cache, falling back to REST
func (p sessionPlatform) GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error) {
	if p.State != nil {
		if m, err := p.State.Member(guildID, userID); err == nil {
			return m, nil
		}
	}
	return p.Session.GuildMember(guildID, userID, options...)
}
