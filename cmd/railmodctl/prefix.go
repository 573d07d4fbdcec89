package main

import (
	"fmt"

	cli "github.com/urfave/cli/v2"

	"github.com/PancyStudios/RailmodGo/pkg/state"
)

var prefixCmd = &cli.Command{
	Name:  "prefix",
	Usage: "show or change command prefixes",
	Subcommands: []*cli.Command{
		{
			Name:      "get",
			Usage:     "print the prefix of a guild, or the global prefix",
			ArgsUsage: "[guild]",
			Action: withEngine(func(cctx *cli.Context, engine *state.Engine) error {
				guildID := cctx.Args().First()
				prefix := engine.GlobalPrefix(cctx.Context)
				if guildID != "" {
					prefix = engine.Prefix(cctx.Context, guildID)
				}
				return output(cctx, map[string]string{"guildId": guildID, "prefix": prefix}, prefix)
			}),
		},
		{
			Name:      "set",
			Usage:     "set the prefix of a guild, or the global prefix with --global",
			ArgsUsage: "<guild> <prefix>",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "global", Usage: "set the prefix of every guild without its own"},
			},
			Action: withEngine(func(cctx *cli.Context, engine *state.Engine) error {
				if cctx.Bool("global") {
					if err := requireArgs(cctx, 1); err != nil {
						return err
					}
					prefix := cctx.Args().First()
					if err := engine.SetGlobalPrefix(cctx.Context, prefix); err != nil {
						return err
					}
					return output(cctx, map[string]string{"prefix": prefix}, fmt.Sprintf("global prefix set to %q", prefix))
				}

				if err := requireArgs(cctx, 2); err != nil {
					return err
				}
				out, err := engine.SetPrefix(cctx.Context, cctx.Args().Get(0), cctx.Args().Get(1))
				if err != nil {
					return err
				}
				if !out.Applied {
					return fmt.Errorf("%s", out.Message)
				}
				return output(cctx, out, out.Message)
			}),
		},
		{
			Name:      "reset",
			Usage:     "remove the prefix of a guild, or the global prefix with --global",
			ArgsUsage: "<guild>",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "global", Usage: "remove the global prefix"},
			},
			Action: withEngine(func(cctx *cli.Context, engine *state.Engine) error {
				if cctx.Bool("global") {
					if err := engine.SetGlobalPrefix(cctx.Context, ""); err != nil {
						return err
					}
					prefix := engine.GlobalPrefix(cctx.Context)
					return output(cctx, map[string]string{"prefix": prefix}, "global prefix reset to "+prefix)
				}

				if err := requireArgs(cctx, 1); err != nil {
					return err
				}
				guildID := cctx.Args().First()
				if err := engine.ResetPrefix(cctx.Context, guildID); err != nil {
					return err
				}
				prefix := engine.Prefix(cctx.Context, guildID)
				return output(cctx, map[string]string{"guildId": guildID, "prefix": prefix}, "prefix reset to "+prefix)
			}),
		},
	},
}
