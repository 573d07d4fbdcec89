package main

import (
	"fmt"

	cli "github.com/urfave/cli/v2"

	"github.com/PancyStudios/RailmodGo/pkg/state"
)

var warningsCmd = &cli.Command{
	Name:  "warnings",
	Usage: "inspect warning logs",
	Subcommands: []*cli.Command{
		{
			Name:      "list",
			Usage:     "print every warning of a member, oldest first",
			ArgsUsage: "<guild> <member>",
			Action: withEngine(func(cctx *cli.Context, engine *state.Engine) error {
				if err := requireArgs(cctx, 2); err != nil {
					return err
				}
				guildID, memberID := cctx.Args().Get(0), cctx.Args().Get(1)
				warnings := engine.Warnings(cctx.Context, guildID, memberID)

				lines := []string{fmt.Sprintf("%s: %d warning(s), %s", memberID, len(warnings), state.ClassifySeverity(len(warnings)))}
				for i, w := range warnings {
					lines = append(lines, fmt.Sprintf("%3d. %s", i+1, w))
				}
				return output(cctx, warnings, lines...)
			}),
		},
	},
}

var adminRolesCmd = &cli.Command{
	Name:  "adminroles",
	Usage: "manage the roles allowed to use privileged commands",
	Subcommands: []*cli.Command{
		{
			Name:      "list",
			Usage:     "print the admin roles of a guild",
			ArgsUsage: "<guild>",
			Action: withEngine(func(cctx *cli.Context, engine *state.Engine) error {
				if err := requireArgs(cctx, 1); err != nil {
					return err
				}
				roles := engine.AdminRoles(cctx.Context, cctx.Args().First())
				lines := roles
				if len(roles) == 0 {
					lines = []string{"no admin roles"}
				}
				return output(cctx, roles, lines...)
			}),
		},
		{
			Name:      "add",
			Usage:     "let a role use privileged commands",
			ArgsUsage: "<guild> <role>",
			Action: withEngine(func(cctx *cli.Context, engine *state.Engine) error {
				if err := requireArgs(cctx, 2); err != nil {
					return err
				}
				guildID, roleID := cctx.Args().Get(0), cctx.Args().Get(1)
				if err := engine.AddAdminRole(cctx.Context, guildID, roleID); err != nil {
					return err
				}
				return output(cctx, engine.AdminRoles(cctx.Context, guildID), "added "+roleID)
			}),
		},
		{
			Name:      "remove",
			Usage:     "take privileged commands away from a role",
			ArgsUsage: "<guild> <role>",
			Action: withEngine(func(cctx *cli.Context, engine *state.Engine) error {
				if err := requireArgs(cctx, 2); err != nil {
					return err
				}
				guildID, roleID := cctx.Args().Get(0), cctx.Args().Get(1)
				if err := engine.RemoveAdminRole(cctx.Context, guildID, roleID); err != nil {
					return err
				}
				return output(cctx, engine.AdminRoles(cctx.Context, guildID), "removed "+roleID)
			}),
		},
	},
}
