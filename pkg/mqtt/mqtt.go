// Package mqtt provides MQTT communication for the bot: a moderation event
// stream and a request/response channel other services use to query guild state.
package mqtt

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/PancyStudios/RailmodGo/pkg/logger"
)

// Namespace is the root of every topic the bot uses
const Namespace = "railmod"

const publishTimeout = 5 * time.Second

// MqttRequest represents an MQTT request message
type MqttRequest struct {
	CorrelationID string      `json:"correlationId"`
	Payload       interface{} `json:"payload,omitempty"`
}

// MqttResponse represents an MQTT response message
type MqttResponse struct {
	CorrelationID string      `json:"correlationId"`
	Data          interface{} `json:"data"`
	Error         string      `json:"error,omitempty"`
}

// RequestHandler is a function type for handling MQTT requests
type RequestHandler func(payload map[string]interface{}) (interface{}, error)

// Options configures the broker connection
type Options struct {
	Host     string
	Port     string
	Username string
	Password string
	ClientID string
}

// MqttCommunicator handles MQTT communication
type MqttCommunicator struct {
	client           mqtt.Client
	clientID         string
	responseHandlers map[string]func(MqttResponse)
	requestHandlers  map[string]RequestHandler
	mu               sync.RWMutex
}

// NewMqttCommunicator creates a communicator and connects to the broker.
// A failed first connection is logged; the client keeps retrying in the background.
func NewMqttCommunicator(opts Options) *MqttCommunicator {
	uniqueID := fmt.Sprintf("%s_%s", opts.ClientID, uuid.New().String())

	clientOpts := mqtt.NewClientOptions().
		AddBroker(fmt.Sprintf("tcp://%s:%s", opts.Host, opts.Port)).
		SetClientID(uniqueID).
		SetUsername(opts.Username).
		SetPassword(opts.Password).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(func(c mqtt.Client) {
			logger.Success(fmt.Sprintf("Connected to MQTT broker as %s", opts.ClientID), "MQTT")
		}).
		SetConnectionLostHandler(func(c mqtt.Client, err error) {
			logger.Error(fmt.Sprintf("MQTT connection lost: %v", err), "MQTT")
		})

	mc := NewMqttCommunicatorFromClient(mqtt.NewClient(clientOpts), opts.ClientID)

	token := mc.client.Connect()
	if token.WaitTimeout(publishTimeout) && token.Error() != nil {
		logger.Error(fmt.Sprintf("MQTT connection error: %v", token.Error()), "MQTT")
	}

	return mc
}

// NewMqttCommunicatorFromClient wraps an existing paho client
func NewMqttCommunicatorFromClient(client mqtt.Client, clientID string) *MqttCommunicator {
	return &MqttCommunicator{
		client:           client,
		clientID:         clientID,
		responseHandlers: make(map[string]func(MqttResponse)),
		requestHandlers:  make(map[string]RequestHandler),
	}
}

// Destroy closes the MQTT connection
func (mc *MqttCommunicator) Destroy() {
	if mc.client != nil && mc.client.IsConnected() {
		mc.client.Disconnect(250)
		logger.System("MQTT connection closed.", "MQTT")
	} else {
		logger.Warn("MQTT client was not connected, nothing to close.", "MQTT")
	}
}

// IsConnected returns true if connected to the broker
func (mc *MqttCommunicator) IsConnected() bool {
	return mc.client != nil && mc.client.IsConnected()
}

// Publish sends a JSON message to a topic
func (mc *MqttCommunicator) Publish(topic string, payload interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	token := mc.client.Publish(topic, 0, false, jsonData)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish to %s timed out", topic)
	}
	return token.Error()
}

// Request sends a request and waits for a response
func (mc *MqttCommunicator) Request(topic string, payload interface{}, timeout time.Duration) (interface{}, error) {
	correlationID := uuid.New().String()
	reqTopic := requestTopic(topic)
	respTopic := responseTopic(topic, correlationID)

	responseChan := make(chan MqttResponse, 1)
	errChan := make(chan error, 1)

	mc.mu.Lock()
	mc.responseHandlers[correlationID] = func(response MqttResponse) {
		responseChan <- response
	}
	mc.mu.Unlock()

	defer func() {
		mc.mu.Lock()
		delete(mc.responseHandlers, correlationID)
		mc.mu.Unlock()
		mc.client.Unsubscribe(respTopic)
	}()

	token := mc.client.Subscribe(respTopic, 0, func(c mqtt.Client, msg mqtt.Message) {
		var response MqttResponse
		if err := json.Unmarshal(msg.Payload(), &response); err != nil {
			errChan <- err
			return
		}

		mc.mu.RLock()
		handler, exists := mc.responseHandlers[response.CorrelationID]
		mc.mu.RUnlock()

		if exists {
			handler(response)
		}
	})

	if token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}

	request := MqttRequest{
		CorrelationID: correlationID,
		Payload:       payload,
	}

	if err := mc.Publish(reqTopic, request); err != nil {
		return nil, err
	}

	select {
	case response := <-responseChan:
		if response.Error != "" {
			return nil, fmt.Errorf("%s", response.Error)
		}
		return response.Data, nil
	case err := <-errChan:
		return nil, err
	case <-time.After(timeout):
		return nil, fmt.Errorf("request to '%s' timed out", topic)
	}
}

// On registers a handler for a request topic. The pattern may use MQTT wildcards.
func (mc *MqttCommunicator) On(pattern string, callback RequestHandler) {
	mc.mu.Lock()
	first := len(mc.requestHandlers) == 0
	mc.requestHandlers[pattern] = callback
	mc.mu.Unlock()

	if !first {
		return
	}

	topic := requestTopic("#")
	token := mc.client.Subscribe(topic, 0, func(c mqtt.Client, msg mqtt.Message) {
		mc.handleRequest(msg.Topic(), msg.Payload())
	})

	if token.Wait() && token.Error() != nil {
		logger.Error(fmt.Sprintf("Error subscribing to topic %s: %v", topic, token.Error()), "MQTT")
	}
}

// handleRequest answers one request message with the first matching handler
func (mc *MqttCommunicator) handleRequest(receivedTopic string, raw []byte) {
	var request MqttRequest
	if err := json.Unmarshal(raw, &request); err != nil {
		logger.Error(fmt.Sprintf("Error parsing MQTT request: %v", err), "MQTT")
		return
	}

	actualTopic := strings.TrimPrefix(receivedTopic, requestTopic(""))

	mc.mu.RLock()
	var callback RequestHandler
	for pattern, handler := range mc.requestHandlers {
		if TopicMatch(pattern, actualTopic) {
			callback = handler
			break
		}
	}
	mc.mu.RUnlock()

	if callback == nil {
		return
	}

	payloadMap := make(map[string]interface{})
	if pm, ok := request.Payload.(map[string]interface{}); ok {
		payloadMap = pm
	}
	payloadMap["_topic"] = actualTopic

	response := MqttResponse{CorrelationID: request.CorrelationID}
	data, err := callback(payloadMap)
	if err != nil {
		response.Error = err.Error()
	} else {
		response.Data = data
	}

	if err := mc.Publish(responseTopic(actualTopic, request.CorrelationID), response); err != nil {
		logger.Warn(fmt.Sprintf("Could not answer %s: %v", actualTopic, err), "MQTT")
	}
}

// Subscribe subscribes to a topic with a message handler
func (mc *MqttCommunicator) Subscribe(topic string, handler func(topic string, payload []byte)) error {
	token := mc.client.Subscribe(topic, 0, func(c mqtt.Client, msg mqtt.Message) {
		handler(msg.Topic(), msg.Payload())
	})
	token.Wait()
	return token.Error()
}

// Unsubscribe unsubscribes from a topic
func (mc *MqttCommunicator) Unsubscribe(topic string) error {
	token := mc.client.Unsubscribe(topic)
	token.Wait()
	return token.Error()
}

func requestTopic(topic string) string {
	return fmt.Sprintf("%s/request/%s", Namespace, topic)
}

func responseTopic(topic, correlationID string) string {
	return fmt.Sprintf("%s/response/%s/%s", Namespace, topic, correlationID)
}

// EventFilter returns the subscription filter for the events of one guild,
// or of every guild when guildID is empty
func EventFilter(guildID string) string {
	if guildID == "" {
		return fmt.Sprintf("%s/events/#", Namespace)
	}
	return fmt.Sprintf("%s/events/%s/#", Namespace, guildID)
}

// TopicMatch checks if a received topic matches a pattern (with wildcards)
// '+' matches exactly one topic level
// '#' matches zero or more topic levels and must be the last character
func TopicMatch(pattern, topic string) bool {
	patternParts := strings.Split(pattern, "/")
	topicParts := strings.Split(topic, "/")

	for i := 0; i < len(patternParts); i++ {
		if patternParts[i] == "#" {
			return true
		}
		if i >= len(topicParts) {
			return false
		}
		if patternParts[i] == "+" {
			continue
		}
		if patternParts[i] != topicParts[i] {
			return false
		}
	}

	return len(patternParts) == len(topicParts)
}
