// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/f1ctlgo/internal/meta"
	"github.com/staranto/f1ctlgo/internal/schedule"
)

var cqDefaultAttrs = []string{"circuit", "name", "locality", "country"}

// CqCommandAction is the action handler for the "cq" subcommand. It lists the
// circuits of the season, or every circuit with --all. A circuit identifier
// argument narrows the listing to that circuit.
func CqCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &QueryActionRunner[CircuitRow]{
		CommandName:  "cq",
		DefaultAttrs: cqDefaultAttrs,
		FetchFn: func(ctx context.Context, cmd *cli.Command) ([]CircuitRow, error) {
			year := cmd.Int("year")
			if cmd.Bool("all") {
				year = 0
			}

			circuits, err := NewSource(cmd).Circuits(ctx, year)
			if err != nil {
				return nil, err
			}

			idx := schedule.NewCircuitIndex(circuits)
			log.Debugf("indexed %d circuits", len(idx))

			if id := cmd.Args().First(); id != "" {
				c, err := idx.Lookup(id)
				if err != nil {
					return nil, err
				}
				idx = schedule.CircuitIndex{id: c}
			}
			return CircuitRows(idx), nil
		},
	}
	return runner.Run(ctx, cmd)
}

// CqCommandBuilder constructs the cli.Command for "cq".
func CqCommandBuilder(meta meta.Meta) *cli.Command {
	qcb := &QueryCommandBuilder{
		Name:      "cq",
		Usage:     "circuit query",
		UsageText: `f1ctl cq [circuitId] [options]`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "all",
				Usage: "every circuit ever raced, not just the season's",
				Value: false,
			},
			NewYearFlag("cq", meta.Config.Source),
			NewAPIFlag("cq", meta.Config.Source),
		},
		Action: CqCommandAction,
		Meta:   meta,
	}
	return qcb.Build()
}
