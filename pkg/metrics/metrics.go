// Package metrics holds the Prometheus collectors exported by the bot.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for CommandsTotal
const (
	OutcomeOK      = "ok"
	OutcomeDenied  = "denied"
	OutcomeError   = "error"
	OutcomePanic   = "panic"
	OutcomeUnknown = "unknown"
)

// CommandsTotal counts dispatched prefix commands
var CommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "railmod_commands_total",
	Help: "Prefix commands dispatched, by command and outcome",
}, []string{"command", "outcome"})

// StoreUnavailable counts store calls that failed to reach Redis
var StoreUnavailable = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "railmod_store_unavailable_total",
	Help: "Store operations that could not reach the key-value store",
}, []string{"op"})

// PrivilegeDenied counts gated commands refused to the actor
var PrivilegeDenied = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "railmod_privilege_denied_total",
	Help: "Gated commands refused because the actor lacked privilege",
}, []string{"command"})

// Notifications counts private notice attempts
var Notifications = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "railmod_notifications_total",
	Help: "Private notices attempted, by delivery result",
}, []string{"delivered"})

// EventsPublished counts moderation events sent to the broker
var EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "railmod_events_published_total",
	Help: "Moderation events published over MQTT, by kind",
}, []string{"kind"})
