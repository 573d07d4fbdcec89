package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/dustin/go-humanize"

	railerrors "github.com/PancyStudios/RailmodGo/pkg/errors"
	"github.com/PancyStudios/RailmodGo/pkg/logger"
	"github.com/PancyStudios/RailmodGo/pkg/metrics"
	"github.com/PancyStudios/RailmodGo/pkg/mqtt"
	"github.com/PancyStudios/RailmodGo/pkg/state"
	"github.com/PancyStudios/RailmodGo/pkg/store"
)

// CommandCollection holds registered commands, indexed by name and alias
type CommandCollection struct {
	commands map[string]*Command
	lookup   map[string]*Command
	mu       sync.RWMutex
}

// NewCommandCollection creates a new CommandCollection
func NewCommandCollection() *CommandCollection {
	return &CommandCollection{
		commands: make(map[string]*Command),
		lookup:   make(map[string]*Command),
	}
}

// Set adds or replaces a command and its aliases
func (cc *CommandCollection) Set(cmd *Command) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	name := strings.ToLower(cmd.Name)
	cc.commands[name] = cmd
	cc.lookup[name] = cmd
	for _, alias := range cmd.Aliases {
		cc.lookup[strings.ToLower(alias)] = cmd
	}
}

// Get retrieves a command by name or alias, case-insensitively
func (cc *CommandCollection) Get(name string) (*Command, bool) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	cmd, ok := cc.lookup[strings.ToLower(name)]
	return cmd, ok
}

// Size returns the number of commands, not counting aliases
func (cc *CommandCollection) Size() int {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return len(cc.commands)
}

// All returns every command sorted by name
func (cc *CommandCollection) All() []*Command {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	result := make([]*Command, 0, len(cc.commands))
	for _, cmd := range cc.commands {
		result = append(result, cmd)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// CommandHandler parses prefix commands out of messages and runs them
type CommandHandler struct {
	commands  *CommandCollection
	engine    *state.Engine
	platform  Platform
	relay     state.Notifier
	publisher mqtt.EventPublisher
	client    *ExtendedClient

	mu    sync.RWMutex
	botID string
}

// HandlerOptions wires a CommandHandler
type HandlerOptions struct {
	Commands  *CommandCollection
	Engine    *state.Engine
	Platform  Platform
	Relay     state.Notifier
	Publisher mqtt.EventPublisher
	Client    *ExtendedClient
}

// NewCommandHandler creates a new CommandHandler
func NewCommandHandler(opts HandlerOptions) *CommandHandler {
	commands := opts.Commands
	if commands == nil {
		commands = NewCommandCollection()
	}
	publisher := opts.Publisher
	if publisher == nil {
		publisher = mqtt.NopPublisher{}
	}
	relay := opts.Relay
	if relay == nil {
		relay = NewDMRelay(opts.Platform)
	}

	return &CommandHandler{
		commands:  commands,
		engine:    opts.Engine,
		platform:  opts.Platform,
		relay:     relay,
		publisher: publisher,
		client:    opts.Client,
	}
}

// Commands returns the registered commands
func (ch *CommandHandler) Commands() *CommandCollection {
	return ch.commands
}

// RegisterCommand adds a command to the handler
func (ch *CommandHandler) RegisterCommand(cmd *Command) {
	ch.commands.Set(cmd)
	logger.Debug("Command registered: "+cmd.Name, "CommandHandler")
}

// SetBotID lets the bot's own mention work as a prefix
func (ch *CommandHandler) SetBotID(id string) {
	ch.mu.Lock()
	ch.botID = id
	ch.mu.Unlock()
}

// BotID returns the bot's user ID once known
func (ch *CommandHandler) BotID() string {
	ch.mu.RLock()
	defer ch.mu.RUnlock()
	return ch.botID
}

// Dispatch runs the command contained in m, if any, and reports whether one ran.
// Messages from bots, DMs and messages without the guild prefix are ignored.
func (ch *CommandHandler) Dispatch(ctx context.Context, m *discordgo.Message) bool {
	if m == nil || m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return false
	}

	prefix := ch.engine.Prefix(ctx, m.GuildID)
	rest, ok := stripPrefix(m.Content, prefix, ch.BotID())
	if !ok {
		return false
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return false
	}

	cmd, ok := ch.commands.Get(fields[0])
	if !ok {
		metrics.CommandsTotal.WithLabelValues("", metrics.OutcomeUnknown).Inc()
		return false
	}

	cctx := &CommandContext{
		ctx:       ctx,
		Platform:  ch.platform,
		Message:   m,
		Engine:    ch.engine,
		Publisher: ch.publisher,
		Command:   cmd,
		Commands:  ch.commands,
		Client:    ch.client,
		Actor:     ch.actorFor(m, cmd),
		Prefix:    prefix,
		Args:      fields[1:],
	}

	if !ch.allowed(cctx) {
		ch.denyAndNotify(cctx)
		return true
	}

	ch.run(cctx)
	return true
}

// actorFor builds the actor of a message. Platform permissions are only
// resolved for commands that need them.
func (ch *CommandHandler) actorFor(m *discordgo.Message, cmd *Command) state.Actor {
	actor := state.Actor{ID: m.Author.ID}

	if m.Member != nil {
		actor.RoleIDs = m.Member.Roles
	} else if member, err := ch.platform.GuildMember(m.GuildID, m.Author.ID); err == nil {
		actor.RoleIDs = member.Roles
	}

	if cmd.AdminOnly {
		perms, err := ch.platform.UserChannelPermissions(m.Author.ID, m.ChannelID)
		if err != nil {
			logger.Debug(fmt.Sprintf("Could not resolve permissions of %s: %v", m.Author.ID, err), "CommandHandler")
		}
		actor.PlatformAdmin = err == nil && perms&discordgo.PermissionAdministrator != 0
	}

	return actor
}

// allowed applies the administrator and admin-role gates of the command
func (ch *CommandHandler) allowed(ctx *CommandContext) bool {
	if ctx.Command.AdminOnly && !ctx.Actor.PlatformAdmin {
		return false
	}
	if ctx.Command.Privileged && !ch.engine.IsPrivileged(ctx.Context(), ctx.GuildID(), ctx.Actor.RoleIDs) {
		return false
	}
	return true
}

// run executes the command with panic recovery and turns errors into replies
func (ch *CommandHandler) run(ctx *CommandContext) {
	name := ctx.Command.Name
	defer func() {
		if r := recover(); r != nil {
			metrics.CommandsTotal.WithLabelValues(name, metrics.OutcomePanic).Inc()
			railerrors.Handle("command "+name, r)
			_ = ctx.Reply("something went wrong while running that command")
		}
	}()

	err := ctx.Command.Run(ctx)
	if err == nil {
		metrics.CommandsTotal.WithLabelValues(name, metrics.OutcomeOK).Inc()
		return
	}

	ch.handleError(ctx, err)
}

// handleError renders a command error for the channel
func (ch *CommandHandler) handleError(ctx *CommandContext, err error) {
	name := ctx.Command.Name

	var actionErr *state.ActionError
	switch {
	case errors.Is(err, state.ErrPrivilegeDenied):
		ch.denyAndNotify(ctx)
		return

	case errors.As(err, &actionErr):
		metrics.CommandsTotal.WithLabelValues(name, metrics.OutcomeError).Inc()
		msg := fmt.Sprintf("couldn't %s <@%s>", actionErr.Action, actionErr.MemberID)
		if isForbidden(actionErr.Err) {
			msg += ", i'm missing the permissions to do that"
		}
		_ = ctx.Reply(msg)

	case errors.Is(err, state.ErrScoreOutOfRange):
		metrics.CommandsTotal.WithLabelValues(name, metrics.OutcomeError).Inc()
		_ = ctx.Replyf("that would take the score past ±%s", humanize.Comma(state.MaxScore))

	case errors.Is(err, store.ErrUnavailable):
		metrics.CommandsTotal.WithLabelValues(name, metrics.OutcomeError).Inc()
		logger.Warn(fmt.Sprintf("Command %s could not reach the store: %v", name, err), "CommandHandler")
		_ = ctx.Reply("couldn't reach the database, please try again later")

	default:
		metrics.CommandsTotal.WithLabelValues(name, metrics.OutcomeError).Inc()
		if h := railerrors.Get(); h != nil {
			h.IncrementError()
		}
		logger.Error(fmt.Sprintf("Error executing command %s: %v", name, err), "CommandHandler")
		_ = ctx.Reply("something went wrong while running that command")
	}
}

// isForbidden reports whether err is a Discord 403
func isForbidden(err error) bool {
	var restErr *discordgo.RESTError
	return errors.As(err, &restErr) && restErr.Response != nil && restErr.Response.StatusCode == http.StatusForbidden
}
