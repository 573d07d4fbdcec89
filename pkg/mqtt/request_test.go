package mqtt_test

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/goccy/go-json"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PancyStudios/RailmodGo/pkg/mqtt"
	"github.com/PancyStudios/RailmodGo/pkg/mqtt/mqtttest"
	"github.com/PancyStudios/RailmodGo/pkg/state"
	"github.com/PancyStudios/RailmodGo/pkg/store"
)

func newEngine(t *testing.T) *state.Engine {
	mr := miniredis.RunT(t)
	s := store.NewRedisStoreFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = s.Close() })
	return state.NewEngine(s, state.Options{})
}

func TestRequest_RoundTrip(t *testing.T) {
	broker := mqtttest.NewLoopback()
	engine := newEngine(t)
	require.NoError(t, engine.SetScore(context.Background(), state.OperatorActor, "g1", "m1", 42))

	bot := mqtt.NewMqttCommunicatorFromClient(broker, "bot")
	mqtt.RegisterResponders(bot, engine)
	caller := mqtt.NewMqttCommunicatorFromClient(broker, "caller")

	data, err := caller.Request("member", map[string]interface{}{"guildId": "g1", "memberId": "m1"}, time.Second)
	require.NoError(t, err)

	raw, err := json.Marshal(data)
	require.NoError(t, err)
	var resp mqtt.MemberResponse
	require.NoError(t, json.Unmarshal(raw, &resp))
	assert.Equal(t, int64(42), resp.Score)
	assert.Equal(t, int64(1), resp.Rank)

	// the response subscription is dropped once answered
	for _, msg := range broker.Published() {
		if msg.TopicName != "railmod/request/member" {
			assert.False(t, broker.Subscribed(msg.TopicName), msg.TopicName)
		}
	}
}

func TestRequest_HandlerError(t *testing.T) {
	broker := mqtttest.NewLoopback()
	mqtt.RegisterResponders(mqtt.NewMqttCommunicatorFromClient(broker, "bot"), newEngine(t))
	caller := mqtt.NewMqttCommunicatorFromClient(broker, "caller")

	_, err := caller.Request("leaderboard", map[string]interface{}{}, time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "guildId")
}

func TestRequest_Timeout(t *testing.T) {
	caller := mqtt.NewMqttCommunicatorFromClient(mqtttest.NewLoopback(), "caller")

	_, err := caller.Request("leaderboard", map[string]interface{}{"guildId": "g1"}, 20*time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
}

func TestSubscribeAndUnsubscribe(t *testing.T) {
	broker := mqtttest.NewLoopback()
	mc := mqtt.NewMqttCommunicatorFromClient(broker, "watcher")
	filter := mqtt.EventFilter("g1")

	var topics []string
	require.NoError(t, mc.Subscribe(filter, func(topic string, _ []byte) {
		topics = append(topics, topic)
	}))

	mc.PublishEvent(mqtt.Event{GuildID: "g1", Kind: mqtt.EventWarn})
	mc.PublishEvent(mqtt.Event{GuildID: "g2", Kind: mqtt.EventWarn})
	mc.PublishEvent(mqtt.Event{GuildID: "g1", Kind: mqtt.EventBan})
	assert.Equal(t, []string{"railmod/events/g1/warn", "railmod/events/g1/ban"}, topics)

	require.NoError(t, mc.Unsubscribe(filter))
	assert.False(t, broker.Subscribed(filter))

	mc.PublishEvent(mqtt.Event{GuildID: "g1", Kind: mqtt.EventUnban})
	assert.Len(t, topics, 2)
}

func TestEventFilter(t *testing.T) {
	assert.Equal(t, "railmod/events/#", mqtt.EventFilter(""))
	assert.Equal(t, "railmod/events/g1/#", mqtt.EventFilter("g1"))
	assert.True(t, mqtt.TopicMatch(mqtt.EventFilter(""), "railmod/events/g1/warn"))
}
