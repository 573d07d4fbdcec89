// Package mqtttest provides an in-process MQTT client for tests. Messages
// published on it are delivered straight to its own matching subscriptions.
package mqtttest

import (
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/PancyStudios/RailmodGo/pkg/mqtt"
)

// Message is a message published through a Loopback
type Message struct {
	TopicName string
	Body      []byte
}

func (m *Message) Duplicate() bool   { return false }
func (m *Message) Qos() byte         { return 0 }
func (m *Message) Retained() bool    { return false }
func (m *Message) Topic() string     { return m.TopicName }
func (m *Message) MessageID() uint16 { return 0 }
func (m *Message) Payload() []byte   { return m.Body }
func (m *Message) Ack()              {}

// Token is an already completed paho token
type Token struct {
	Err error
}

func (t Token) Wait() bool                     { return true }
func (t Token) WaitTimeout(time.Duration) bool { return true }
func (t Token) Error() error                   { return t.Err }
func (t Token) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

// Loopback is a paho client without a broker. Handlers run on the publishing
// goroutine, after the lock is released.
type Loopback struct {
	mu        sync.Mutex
	subs      map[string]paho.MessageHandler
	published []*Message
}

// NewLoopback returns a connected Loopback
func NewLoopback() *Loopback {
	return &Loopback{subs: make(map[string]paho.MessageHandler)}
}

func (l *Loopback) IsConnected() bool      { return true }
func (l *Loopback) IsConnectionOpen() bool { return true }
func (l *Loopback) Connect() paho.Token    { return Token{} }
func (l *Loopback) Disconnect(uint)        {}

// Publish records the message and hands it to every subscription whose filter matches
func (l *Loopback) Publish(topic string, _ byte, _ bool, payload interface{}) paho.Token {
	var body []byte
	switch p := payload.(type) {
	case []byte:
		body = p
	case string:
		body = []byte(p)
	}
	msg := &Message{TopicName: topic, Body: body}

	l.mu.Lock()
	l.published = append(l.published, msg)
	var handlers []paho.MessageHandler
	for filter, handler := range l.subs {
		if mqtt.TopicMatch(filter, topic) {
			handlers = append(handlers, handler)
		}
	}
	l.mu.Unlock()

	for _, handler := range handlers {
		handler(l, msg)
	}
	return Token{}
}

func (l *Loopback) Subscribe(topic string, _ byte, callback paho.MessageHandler) paho.Token {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.subs[topic] = callback
	return Token{}
}

func (l *Loopback) SubscribeMultiple(filters map[string]byte, callback paho.MessageHandler) paho.Token {
	for topic := range filters {
		l.Subscribe(topic, 0, callback)
	}
	return Token{}
}

func (l *Loopback) Unsubscribe(topics ...string) paho.Token {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, topic := range topics {
		delete(l.subs, topic)
	}
	return Token{}
}

func (l *Loopback) AddRoute(string, paho.MessageHandler) {}

func (l *Loopback) OptionsReader() paho.ClientOptionsReader {
	return paho.ClientOptionsReader{}
}

// Subscribed reports whether a subscription with exactly this filter exists
func (l *Loopback) Subscribed(filter string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.subs[filter]
	return ok
}

// Published returns every message published so far
func (l *Loopback) Published() []*Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*Message(nil), l.published...)
}
