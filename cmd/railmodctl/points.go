package main

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	cli "github.com/urfave/cli/v2"

	"github.com/PancyStudios/RailmodGo/pkg/state"
)

type standingJSON struct {
	Rank     int    `json:"rank"`
	MemberID string `json:"memberId"`
	Score    int64  `json:"score"`
}

var pointsCmd = &cli.Command{
	Name:  "points",
	Usage: "inspect or edit the points ledger",
	Subcommands: []*cli.Command{
		{
			Name:      "top",
			Usage:     "print the leaderboard of a guild",
			ArgsUsage: "<guild>",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "n", Usage: "number of rows", Value: state.DefaultTop},
			},
			Action: withEngine(func(cctx *cli.Context, engine *state.Engine) error {
				if err := requireArgs(cctx, 1); err != nil {
					return err
				}
				guildID := cctx.Args().First()
				board := engine.Top(cctx.Context, guildID, cctx.Int("n"))

				rows := make([]standingJSON, len(board.Standings))
				lines := make([]string, len(board.Standings))
				for i, s := range board.Standings {
					rows[i] = standingJSON{Rank: i + 1, MemberID: s.MemberID, Score: s.Score}
					lines[i] = fmt.Sprintf("%3d. %s  %s", i+1, s.MemberID, humanize.Comma(s.Score))
				}
				if board.Empty() {
					lines = []string{"no scores in guild " + guildID}
				}
				return output(cctx, rows, lines...)
			}),
		},
		{
			Name:      "get",
			Usage:     "print the score and rank of a member",
			ArgsUsage: "<guild> <member>",
			Action: withEngine(func(cctx *cli.Context, engine *state.Engine) error {
				if err := requireArgs(cctx, 2); err != nil {
					return err
				}
				guildID, memberID := cctx.Args().Get(0), cctx.Args().Get(1)
				score := engine.Score(cctx.Context, guildID, memberID)
				rank, _ := engine.Rank(cctx.Context, guildID, memberID)

				line := fmt.Sprintf("%s: %s %s", memberID, humanize.Comma(score), engine.PointsLabel(cctx.Context, guildID))
				if rank > 0 {
					line += fmt.Sprintf(" (rank %d)", rank)
				}
				return output(cctx, standingJSON{Rank: int(rank), MemberID: memberID, Score: score}, line)
			}),
		},
		{
			Name:      "set",
			Usage:     "overwrite the score of a member",
			ArgsUsage: "<guild> <member> <amount>",
			Action: withEngine(func(cctx *cli.Context, engine *state.Engine) error {
				if err := requireArgs(cctx, 3); err != nil {
					return err
				}
				guildID, memberID := cctx.Args().Get(0), cctx.Args().Get(1)
				amount, err := strconv.ParseInt(cctx.Args().Get(2), 10, 64)
				if err != nil {
					return fmt.Errorf("amount must be a whole number: %w", err)
				}
				if !state.InScoreRange(amount) {
					return state.ErrScoreOutOfRange
				}
				if err := engine.SetScore(cctx.Context, state.OperatorActor, guildID, memberID, amount); err != nil {
					return err
				}
				return output(cctx, standingJSON{MemberID: memberID, Score: amount},
					fmt.Sprintf("%s now has %s", memberID, humanize.Comma(amount)))
			}),
		},
	},
}
