package mqtt

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/PancyStudios/RailmodGo/pkg/logger"
	"github.com/PancyStudios/RailmodGo/pkg/metrics"
)

// EventKind names a moderation event
type EventKind string

const (
	EventWarn       EventKind = "warn"
	EventBan        EventKind = "ban"
	EventUnban      EventKind = "unban"
	EventPoints     EventKind = "points"
	EventPrefix     EventKind = "prefix"
	EventPointsName EventKind = "pointsname"
	EventAdminRole  EventKind = "adminrole"
)

// Event is a state change published after a command succeeds
type Event struct {
	ID        string    `json:"id"`
	GuildID   string    `json:"guildId"`
	ActorID   string    `json:"actorId"`
	MemberID  string    `json:"memberId,omitempty"`
	Kind      EventKind `json:"kind"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Topic returns the topic the event is published on
func (e Event) Topic() string {
	return fmt.Sprintf("%s/events/%s/%s", Namespace, e.GuildID, e.Kind)
}

// EventPublisher sends moderation events somewhere
type EventPublisher interface {
	PublishEvent(ev Event)
}

// NopPublisher drops every event; used when MQTT is disabled
type NopPublisher struct{}

// PublishEvent implements EventPublisher
func (NopPublisher) PublishEvent(Event) {}

// PublishEvent implements EventPublisher. Failures are logged and never returned.
func (mc *MqttCommunicator) PublishEvent(ev Event) {
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}

	if err := mc.Publish(ev.Topic(), ev); err != nil {
		logger.Warn(fmt.Sprintf("Could not publish %s event for guild %s: %v", ev.Kind, ev.GuildID, err), "MQTT")
		return
	}
	metrics.EventsPublished.WithLabelValues(string(ev.Kind)).Inc()
}
