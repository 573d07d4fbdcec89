package main

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cli "github.com/urfave/cli/v2"

	"github.com/PancyStudios/RailmodGo/pkg/mqtt"
	"github.com/PancyStudios/RailmodGo/pkg/mqtt/mqtttest"
	"github.com/PancyStudios/RailmodGo/pkg/state"
	"github.com/PancyStudios/RailmodGo/pkg/store"
)

// setupLiveBot answers live requests from an engine backed by mr
func setupLiveBot(t *testing.T, mr *miniredis.Miniredis) (*mqtttest.Loopback, *state.Engine) {
	t.Helper()
	s := store.NewRedisStoreFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = s.Close() })
	engine := state.NewEngine(s, state.Options{})

	loop := mqtttest.NewLoopback()
	mqtt.RegisterResponders(mqtt.NewMqttCommunicatorFromClient(loop, "railmod"), engine)

	prev := dialBroker
	dialBroker = func(*cli.Context) (broker, error) {
		return mqtt.NewMqttCommunicatorFromClient(loop, "railmodctl"), nil
	}
	t.Cleanup(func() { dialBroker = prev })
	return loop, engine
}

func TestLiveLeaderboard(t *testing.T) {
	mr := miniredis.RunT(t)
	_, engine := setupLiveBot(t, mr)
	ctx := context.Background()

	out, err := run(t, mr, "live", "leaderboard", "g1")
	require.NoError(t, err)
	assert.Equal(t, "no scores in guild g1", out)

	require.NoError(t, engine.SetScore(ctx, state.OperatorActor, "g1", "alice", 1200))
	require.NoError(t, engine.SetScore(ctx, state.OperatorActor, "g1", "bob", 5))

	out, err = run(t, mr, "live", "leaderboard", "-n", "1", "g1")
	require.NoError(t, err)
	assert.Equal(t, "1. alice  1,200", out)

	out, err = run(t, mr, "--json", "live", "leaderboard", "g1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"guildId": "g1", "label": "points", "entries": [
		{"rank": 1, "memberId": "alice", "score": 1200},
		{"rank": 2, "memberId": "bob", "score": 5}
	]}`, out)
}

func TestLiveMember(t *testing.T) {
	mr := miniredis.RunT(t)
	_, engine := setupLiveBot(t, mr)
	ctx := context.Background()

	require.NoError(t, engine.SetScore(ctx, state.OperatorActor, "g1", "bob", 1500))
	_, err := engine.AppendWarning(ctx, state.OperatorActor, "g1", "bob", "spam", "")
	require.NoError(t, err)

	out, err := run(t, mr, "live", "member", "g1", "bob")
	require.NoError(t, err)
	assert.Equal(t, "bob: 1,500 (rank 1)\n1 warning(s), caution", out)

	_, err = run(t, mr, "live", "member", "g1")
	assert.Error(t, err)
}

func TestLiveWatch(t *testing.T) {
	mr := miniredis.RunT(t)
	loop, _ := setupLiveBot(t, mr)

	type result struct {
		out string
		err error
	}
	done := make(chan result, 1)
	go func() {
		out, err := run(t, mr, "live", "watch", "--count", "2", "g1")
		done <- result{out, err}
	}()

	filter := mqtt.EventFilter("g1")
	require.Eventually(t, func() bool { return loop.Subscribed(filter) }, time.Second, 5*time.Millisecond)

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	bot := mqtt.NewMqttCommunicatorFromClient(loop, "railmod")
	bot.PublishEvent(mqtt.Event{GuildID: "g2", ActorID: "a1", Kind: mqtt.EventWarn, Timestamp: at})
	bot.PublishEvent(mqtt.Event{GuildID: "g1", ActorID: "a1", MemberID: "m1", Kind: mqtt.EventWarn, Detail: "spam", Timestamp: at})
	bot.PublishEvent(mqtt.Event{GuildID: "g1", ActorID: "a1", Kind: mqtt.EventPrefix, Detail: "!", Timestamp: at})

	select {
	case res := <-done:
		require.NoError(t, res.err)
		assert.Equal(t,
			"2026-01-02T03:04:05Z g1 warn actor=a1 member=m1 spam\n"+
				"2026-01-02T03:04:05Z g1 prefix actor=a1 !",
			res.out)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after two events")
	}
	assert.False(t, loop.Subscribed(filter))
}

func TestLiveBrokerUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	prev := dialBroker
	dialBroker = func(*cli.Context) (broker, error) {
		return nil, errors.New("could not reach the MQTT broker at localhost:1883")
	}
	t.Cleanup(func() { dialBroker = prev })

	_, err := run(t, mr, "live", "leaderboard", "g1")
	assert.ErrorContains(t, err, "MQTT broker")
}
