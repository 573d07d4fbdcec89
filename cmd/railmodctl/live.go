package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"
	cli "github.com/urfave/cli/v2"

	"github.com/PancyStudios/RailmodGo/pkg/mqtt"
	"github.com/PancyStudios/RailmodGo/pkg/state"
)

// broker is the part of the MQTT communicator the live commands use
type broker interface {
	Request(topic string, payload interface{}, timeout time.Duration) (interface{}, error)
	Subscribe(topic string, handler func(topic string, payload []byte)) error
	Unsubscribe(topic string) error
	Destroy()
}

// dialBroker connects to the broker named by the global flags
var dialBroker = func(cctx *cli.Context) (broker, error) {
	mc := mqtt.NewMqttCommunicator(mqtt.Options{
		Host:     cctx.String("mqtt-host"),
		Port:     cctx.String("mqtt-port"),
		Username: cctx.String("mqtt-user"),
		Password: cctx.String("mqtt-password"),
		ClientID: "railmodctl",
	})
	if !mc.IsConnected() {
		mc.Destroy()
		return nil, fmt.Errorf("could not reach the MQTT broker at %s:%s", cctx.String("mqtt-host"), cctx.String("mqtt-port"))
	}
	return mc, nil
}

// withBroker wraps an action that talks to a running bot
func withBroker(action func(cctx *cli.Context, b broker) error) cli.ActionFunc {
	return func(cctx *cli.Context) error {
		b, err := dialBroker(cctx)
		if err != nil {
			return err
		}
		defer b.Destroy()
		return action(cctx, b)
	}
}

// request asks the bot and decodes its answer into v
func request(cctx *cli.Context, b broker, topic string, payload map[string]interface{}, v interface{}) error {
	data, err := b.Request(topic, payload, cctx.Duration("timeout"))
	if err != nil {
		return fmt.Errorf("%s request: %w", topic, err)
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

var liveCmd = &cli.Command{
	Name:  "live",
	Usage: "query a running bot over MQTT",
	Flags: []cli.Flag{
		&cli.DurationFlag{Name: "timeout", Usage: "how long to wait for the bot", Value: 5 * time.Second},
	},
	Subcommands: []*cli.Command{
		{
			Name:      "leaderboard",
			Usage:     "print the leaderboard the bot serves for a guild",
			ArgsUsage: "<guild>",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "n", Usage: "number of rows", Value: state.DefaultTop},
			},
			Action: withBroker(func(cctx *cli.Context, b broker) error {
				if err := requireArgs(cctx, 1); err != nil {
					return err
				}
				guildID := cctx.Args().First()

				var resp mqtt.LeaderboardResponse
				if err := request(cctx, b, "leaderboard", map[string]interface{}{"guildId": guildID, "n": cctx.Int("n")}, &resp); err != nil {
					return err
				}

				lines := make([]string, len(resp.Entries))
				for i, e := range resp.Entries {
					lines[i] = fmt.Sprintf("%3d. %s  %s", e.Rank, e.MemberID, humanize.Comma(e.Score))
				}
				if len(resp.Entries) == 0 {
					lines = []string{"no scores in guild " + guildID}
				}
				return output(cctx, resp, lines...)
			}),
		},
		{
			Name:      "member",
			Usage:     "print what the bot knows about a member",
			ArgsUsage: "<guild> <member>",
			Action: withBroker(func(cctx *cli.Context, b broker) error {
				if err := requireArgs(cctx, 2); err != nil {
					return err
				}
				guildID, memberID := cctx.Args().Get(0), cctx.Args().Get(1)

				var resp mqtt.MemberResponse
				if err := request(cctx, b, "member", map[string]interface{}{"guildId": guildID, "memberId": memberID}, &resp); err != nil {
					return err
				}

				line := fmt.Sprintf("%s: %s", memberID, humanize.Comma(resp.Score))
				if resp.Rank > 0 {
					line += fmt.Sprintf(" (rank %d)", resp.Rank)
				}
				lines := []string{line, fmt.Sprintf("%d warning(s), %s", len(resp.Warnings), resp.Severity)}
				if resp.Banned {
					lines = append(lines, "banned")
				}
				return output(cctx, resp, lines...)
			}),
		},
		{
			Name:      "watch",
			Usage:     "stream moderation events until interrupted",
			ArgsUsage: "[guild]",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "count", Usage: "stop after this many events, 0 for no limit"},
			},
			Action: withBroker(func(cctx *cli.Context, b broker) error {
				ctx, stop := signal.NotifyContext(cctx.Context, os.Interrupt, syscall.SIGTERM)
				defer stop()
				return watch(ctx, cctx, b, mqtt.EventFilter(cctx.Args().First()), cctx.Int("count"))
			}),
		},
	},
}

// watch prints events matching filter until ctx ends or limit events arrived
func watch(ctx context.Context, cctx *cli.Context, b broker, filter string, limit int) error {
	events := make(chan mqtt.Event)
	if err := b.Subscribe(filter, func(_ string, payload []byte) {
		var ev mqtt.Event
		if err := json.Unmarshal(payload, &ev); err != nil {
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
		}
	}); err != nil {
		return fmt.Errorf("subscribe %s: %w", filter, err)
	}
	defer func() { _ = b.Unsubscribe(filter) }()

	for seen := 0; limit <= 0 || seen < limit; seen++ {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if err := printEvent(cctx.App.Writer, ev, cctx.Bool("json")); err != nil {
				return err
			}
		}
	}
	return nil
}

func printEvent(w io.Writer, ev mqtt.Event, asJSON bool) error {
	if asJSON {
		b, err := json.Marshal(ev)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}

	line := fmt.Sprintf("%s %s %s actor=%s", ev.Timestamp.Format(time.RFC3339), ev.GuildID, ev.Kind, ev.ActorID)
	if ev.MemberID != "" {
		line += " member=" + ev.MemberID
	}
	if ev.Detail != "" {
		line += " " + ev.Detail
	}
	_, err := fmt.Fprintln(w, line)
	return err
}
