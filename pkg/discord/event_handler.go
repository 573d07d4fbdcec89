package discord

import (
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/PancyStudios/RailmodGo/pkg/logger"
)

// EventHandler manages gateway event registration
type EventHandler struct {
	session *discordgo.Session
	removes []func()
	mu      sync.Mutex
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(session *discordgo.Session) *EventHandler {
	return &EventHandler{session: session}
}

// RegisterEvent adds an event handler to the Discord session. The handler must
// have one of the unnamed func types discordgo recognizes.
func (eh *EventHandler) RegisterEvent(handler interface{}) {
	remove := eh.session.AddHandler(handler)
	eh.mu.Lock()
	eh.removes = append(eh.removes, remove)
	eh.mu.Unlock()
}

// Count returns how many handlers are registered
func (eh *EventHandler) Count() int {
	eh.mu.Lock()
	defer eh.mu.Unlock()
	return len(eh.removes)
}

// RemoveAll detaches every registered handler
func (eh *EventHandler) RemoveAll() {
	eh.mu.Lock()
	defer eh.mu.Unlock()
	for _, remove := range eh.removes {
		remove()
	}
	eh.removes = nil
}

// ReadyHandler is called when the bot is ready
type ReadyHandler func(s *discordgo.Session, r *discordgo.Ready)

// GuildCreateHandler is called when the bot joins a guild
type GuildCreateHandler func(s *discordgo.Session, g *discordgo.GuildCreate)

// GuildDeleteHandler is called when the bot leaves a guild
type GuildDeleteHandler func(s *discordgo.Session, g *discordgo.GuildDelete)

// MessageCreateHandler is called when a message is created
type MessageCreateHandler func(s *discordgo.Session, m *discordgo.MessageCreate)

// OnReady registers a ready event handler
func (eh *EventHandler) OnReady(handler ReadyHandler) {
	eh.RegisterEvent((func(*discordgo.Session, *discordgo.Ready))(handler))
	logger.Debug("Event 'Ready' registered", "EventHandler")
}

// OnGuildCreate registers a guild create event handler
func (eh *EventHandler) OnGuildCreate(handler GuildCreateHandler) {
	eh.RegisterEvent((func(*discordgo.Session, *discordgo.GuildCreate))(handler))
	logger.Debug("Event 'GuildCreate' registered", "EventHandler")
}

// OnGuildDelete registers a guild delete event handler
func (eh *EventHandler) OnGuildDelete(handler GuildDeleteHandler) {
	eh.RegisterEvent((func(*discordgo.Session, *discordgo.GuildDelete))(handler))
	logger.Debug("Event 'GuildDelete' registered", "EventHandler")
}

// OnMessageCreate registers a message create event handler
func (eh *EventHandler) OnMessageCreate(handler MessageCreateHandler) {
	eh.RegisterEvent((func(*discordgo.Session, *discordgo.MessageCreate))(handler))
	logger.Debug("Event 'MessageCreate' registered", "EventHandler")
}
