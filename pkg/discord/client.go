// Package discord connects the state engine to the Discord gateway: it owns the
// session, parses prefix commands out of guild messages, applies the privilege
// gates and relays private notices.
package discord

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/PancyStudios/RailmodGo/pkg/logger"
	"github.com/PancyStudios/RailmodGo/pkg/mqtt"
	"github.com/PancyStudios/RailmodGo/pkg/state"
)

func init() {
	discordgo.Logger = func(msgL int, caller int, format string, a ...interface{}) {
		msg := fmt.Sprintf(format, a...)
		switch msgL {
		case discordgo.LogError:
			logger.Error(msg, "DiscordGo")
		case discordgo.LogWarning:
			logger.Warn(msg, "DiscordGo")
		default:
			logger.Debug(msg, "DiscordGo")
		}
	}
}

// ExtendedClient wraps discordgo.Session with the bot's command and event handling
type ExtendedClient struct {
	Session        *discordgo.Session
	Platform       Platform
	Commands       *CommandCollection
	CommandHandler *CommandHandler
	EventHandler   *EventHandler
	Engine         *state.Engine
	Relay          *DMRelay
	StartTime      time.Time

	mu      sync.RWMutex
	isReady bool
}

// NewClient creates a client for the given bot token. The engine's notifier is
// set to the client's DM relay.
func NewClient(token string, engine *state.Engine, publisher mqtt.EventPublisher) (*ExtendedClient, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsMessageContent
	session.StateEnabled = true
	session.LogLevel = discordgo.LogWarning

	platform := sessionPlatform{Session: session}
	relay := NewDMRelay(platform)
	engine.SetNotifier(relay)

	c := &ExtendedClient{
		Session:      session,
		Platform:     platform,
		Commands:     NewCommandCollection(),
		EventHandler: NewEventHandler(session),
		Engine:       engine,
		Relay:        relay,
	}

	c.CommandHandler = NewCommandHandler(HandlerOptions{
		Commands:  c.Commands,
		Engine:    engine,
		Platform:  platform,
		Relay:     relay,
		Publisher: publisher,
		Client:    c,
	})

	return c, nil
}

// Start opens the gateway connection
func (c *ExtendedClient) Start() error {
	c.EventHandler.OnReady(func(s *discordgo.Session, r *discordgo.Ready) {
		c.CommandHandler.SetBotID(r.User.ID)
		c.mu.Lock()
		c.isReady = true
		c.mu.Unlock()
	})

	c.StartTime = time.Now()
	logger.System(fmt.Sprintf("Opening gateway with %d commands", c.Commands.Size()), "Client")
	return c.Session.Open()
}

// HandleMessage dispatches a gateway message to the command handler
func (c *ExtendedClient) HandleMessage(ctx context.Context, m *discordgo.Message) bool {
	return c.CommandHandler.Dispatch(ctx, m)
}

// Stop closes the session
func (c *ExtendedClient) Stop() error {
	c.mu.Lock()
	c.isReady = false
	c.mu.Unlock()

	c.EventHandler.RemoveAll()
	if c.Session != nil {
		return c.Session.Close()
	}
	return nil
}

// IsReady returns true once the gateway reported ready
func (c *ExtendedClient) IsReady() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isReady
}

// GuildCount returns the number of guilds the bot is in
func (c *ExtendedClient) GuildCount() int {
	if c.Session == nil || c.Session.State == nil {
		return 0
	}
	c.Session.State.RLock()
	defer c.Session.State.RUnlock()
	return len(c.Session.State.Guilds)
}

// BotUser returns the bot's own user once connected
func (c *ExtendedClient) BotUser() *discordgo.User {
	if c.Session == nil || c.Session.State == nil {
		return nil
	}
	return c.Session.State.User
}

// Uptime returns how long the gateway has been open
func (c *ExtendedClient) Uptime() time.Duration {
	if c.StartTime.IsZero() {
		return 0
	}
	return time.Since(c.StartTime)
}
