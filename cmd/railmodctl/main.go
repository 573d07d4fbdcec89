// Package main is railmodctl, an operator tool that reads and edits guild state
// directly in Redis. It acts as a trusted operator and bypasses the admin-role gate.
// The live commands query a running bot over MQTT instead.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	cli "github.com/urfave/cli/v2"

	"github.com/PancyStudios/RailmodGo/pkg/config"
	"github.com/PancyStudios/RailmodGo/pkg/state"
	"github.com/PancyStudios/RailmodGo/pkg/store"
)

func main() {
	app := newApp(config.Get())
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp(cfg *config.Config) *cli.App {
	app := cli.NewApp()
	app.Name = "railmodctl"
	app.Usage = "inspect and edit Railmod guild state"
	app.Version = config.Version

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "redis-addr",
			Usage:   "address of the Redis server",
			Value:   cfg.RedisAddr,
			EnvVars: []string{"REDIS_ADDR"},
		},
		&cli.StringFlag{
			Name:    "redis-password",
			Usage:   "password of the Redis server",
			Value:   cfg.RedisPassword,
			EnvVars: []string{"REDIS_PASSWORD"},
		},
		&cli.IntFlag{
			Name:    "redis-db",
			Usage:   "Redis database number",
			Value:   cfg.RedisDB,
			EnvVars: []string{"REDIS_DB"},
		},
		&cli.StringFlag{
			Name:    "mqtt-host",
			Usage:   "host of the MQTT broker the bot is connected to",
			Value:   cfg.MQTTHost,
			EnvVars: []string{"MQTT_Host"},
		},
		&cli.StringFlag{
			Name:    "mqtt-port",
			Usage:   "port of the MQTT broker",
			Value:   cfg.MQTTPort,
			EnvVars: []string{"MQTT_Port"},
		},
		&cli.StringFlag{
			Name:    "mqtt-user",
			Usage:   "MQTT username",
			Value:   cfg.MQTTUser,
			EnvVars: []string{"MQTT_User"},
		},
		&cli.StringFlag{
			Name:    "mqtt-password",
			Usage:   "MQTT password",
			Value:   cfg.MQTTPassword,
			EnvVars: []string{"MQTT_Password"},
		},
		&cli.StringFlag{
			Name:  "default-prefix",
			Usage: "prefix used when a guild has none",
			Value: cfg.DefaultPrefix,
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "print results as JSON",
		},
	}

	app.Commands = []*cli.Command{
		prefixCmd,
		pointsCmd,
		warningsCmd,
		adminRolesCmd,
		liveCmd,
	}
	return app
}

// openEngine connects to the store named by the global flags
func openEngine(cctx *cli.Context) (*state.Engine, func(), error) {
	s := store.NewRedisStore(store.Options{
		Addr:     cctx.String("redis-addr"),
		Password: cctx.String("redis-password"),
		DB:       cctx.Int("redis-db"),
	})
	if err := s.Ping(cctx.Context); err != nil {
		_ = s.Close()
		return nil, nil, err
	}

	engine := state.NewEngine(s, state.Options{DefaultPrefix: cctx.String("default-prefix")})
	return engine, func() { _ = s.Close() }, nil
}

// withEngine wraps an action that needs an engine
func withEngine(action func(cctx *cli.Context, engine *state.Engine) error) cli.ActionFunc {
	return func(cctx *cli.Context) error {
		engine, closeFn, err := openEngine(cctx)
		if err != nil {
			return err
		}
		defer closeFn()
		return action(cctx, engine)
	}
}

// output prints v as JSON when --json is set, otherwise the text lines
func output(cctx *cli.Context, v interface{}, lines ...string) error {
	w := cctx.App.Writer
	if cctx.Bool("json") {
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}
	for _, line := range lines {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// requireArgs checks the positional argument count of a command
func requireArgs(cctx *cli.Context, n int) error {
	if cctx.NArg() < n {
		return fmt.Errorf("%s needs %d argument(s): %s", cctx.Command.Name, n, cctx.Command.ArgsUsage)
	}
	return nil
}
