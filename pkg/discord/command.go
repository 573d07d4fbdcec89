package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/PancyStudios/RailmodGo/pkg/mqtt"
	"github.com/PancyStudios/RailmodGo/pkg/state"
)

// Command represents a prefix command
type Command struct {
	Name        string
	Aliases     []string
	Description string
	Usage       string
	Category    string

	// AdminOnly requires the platform administrator permission
	AdminOnly bool
	// Privileged requires one of the guild's admin roles
	Privileged bool
	// Hidden commands are left out of help
	Hidden bool

	Run CommandRunFunc
}

// CommandRunFunc is the function type for command execution
type CommandRunFunc func(ctx *CommandContext) error

// NewCommand creates a new Command with required fields
func NewCommand(name, description, category string, run CommandRunFunc) *Command {
	return &Command{
		Name:        name,
		Description: description,
		Category:    category,
		Run:         run,
	}
}

// WithAliases sets alternative names for the command
func (c *Command) WithAliases(aliases ...string) *Command {
	c.Aliases = aliases
	return c
}

// WithUsage sets the argument synopsis shown in guidance, e.g. "<@member> <amount>"
func (c *Command) WithUsage(usage string) *Command {
	c.Usage = usage
	return c
}

// AsAdminOnly marks the command as requiring the administrator permission
func (c *Command) AsAdminOnly() *Command {
	c.AdminOnly = true
	return c
}

// AsPrivileged marks the command as requiring a guild admin role
func (c *Command) AsPrivileged() *Command {
	c.Privileged = true
	return c
}

// AsHidden hides the command from help
func (c *Command) AsHidden() *Command {
	c.Hidden = true
	return c
}

// Synopsis returns "<prefix><name> <usage>"
func (c *Command) Synopsis(prefix string) string {
	if c.Usage == "" {
		return prefix + c.Name
	}
	return prefix + c.Name + " " + c.Usage
}

// CommandContext provides context for command execution
type CommandContext struct {
	ctx context.Context

	Platform  Platform
	Message   *discordgo.Message
	Engine    *state.Engine
	Publisher mqtt.EventPublisher
	Command   *Command
	Commands  *CommandCollection
	Client    *ExtendedClient

	Actor  state.Actor
	Prefix string
	Args   []string
}

// Context returns the context of the invocation
func (ctx *CommandContext) Context() context.Context {
	if ctx.ctx == nil {
		return context.Background()
	}
	return ctx.ctx
}

// GuildID returns the guild the command was sent in
func (ctx *CommandContext) GuildID() string {
	return ctx.Message.GuildID
}

// ChannelID returns the channel the command was sent in
func (ctx *CommandContext) ChannelID() string {
	return ctx.Message.ChannelID
}

// Author returns the user who sent the command
func (ctx *CommandContext) Author() *discordgo.User {
	return ctx.Message.Author
}

// Guild returns the guild the command was sent in, or nil if unavailable
func (ctx *CommandContext) Guild() *discordgo.Guild {
	guild, err := ctx.Platform.Guild(ctx.GuildID())
	if err != nil {
		return nil
	}
	return guild
}

// GuildName returns the guild name, falling back to its ID
func (ctx *CommandContext) GuildName() string {
	if guild := ctx.Guild(); guild != nil && guild.Name != "" {
		return guild.Name
	}
	return ctx.GuildID()
}

// Member fetches a member of the current guild
func (ctx *CommandContext) Member(userID string) (*discordgo.Member, error) {
	return ctx.Platform.GuildMember(ctx.GuildID(), userID)
}

// Arg returns the i-th argument or ""
func (ctx *CommandContext) Arg(i int) string {
	if i < 0 || i >= len(ctx.Args) {
		return ""
	}
	return ctx.Args[i]
}

// Rest joins the arguments from i onwards
func (ctx *CommandContext) Rest(i int) string {
	if i < 0 || i >= len(ctx.Args) {
		return ""
	}
	return strings.Join(ctx.Args[i:], " ")
}

// TargetUserID resolves the i-th argument as a user mention or ID
func (ctx *CommandContext) TargetUserID(i int) (string, bool) {
	return ParseUserID(ctx.Arg(i))
}

// Usage returns guidance for the running command built from the current prefix
func (ctx *CommandContext) Usage() string {
	return fmt.Sprintf("usage: `%s`", ctx.Command.Synopsis(ctx.Prefix))
}

// Reply sends a message to the channel the command came from without pinging anyone
func (ctx *CommandContext) Reply(content string) error {
	_, err := ctx.Platform.ChannelMessageSendComplex(ctx.ChannelID(), &discordgo.MessageSend{
		Content:         content,
		AllowedMentions: &discordgo.MessageAllowedMentions{},
	})
	return err
}

// Replyf formats and sends a reply
func (ctx *CommandContext) Replyf(format string, a ...interface{}) error {
	return ctx.Reply(fmt.Sprintf(format, a...))
}

// ReplyEmbed sends an embed to the channel the command came from
func (ctx *CommandContext) ReplyEmbed(embed *discordgo.MessageEmbed) error {
	_, err := ctx.Platform.ChannelMessageSendComplex(ctx.ChannelID(), &discordgo.MessageSend{
		Embeds:          []*discordgo.MessageEmbed{embed},
		AllowedMentions: &discordgo.MessageAllowedMentions{},
	})
	return err
}

// Publish emits a moderation event for the current guild
func (ctx *CommandContext) Publish(kind mqtt.EventKind, memberID, detail string) {
	if ctx.Publisher == nil {
		return
	}
	ctx.Publisher.PublishEvent(mqtt.Event{
		GuildID:  ctx.GuildID(),
		ActorID:  ctx.Actor.ID,
		MemberID: memberID,
		Kind:     kind,
		Detail:   detail,
	})
}
