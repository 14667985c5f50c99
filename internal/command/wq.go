// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/f1ctlgo/internal/ergast"
	"github.com/staranto/f1ctlgo/internal/meta"
	"github.com/staranto/f1ctlgo/internal/schedule"
)

// ErrSeasonOver is returned by wq without a circuit once every round of the
// season has been raced.
var ErrSeasonOver = errors.New("no rounds left this season; name a circuit")

// now is swapped in tests.
var now = time.Now

var wqDefaultAttrs = []string{"session", "start::T", "start:when:h"}

// WqCommandAction is the action handler for the "wq" subcommand. It lists the
// sessions of the weekend held at the circuit named by the first argument, or
// of the next round when there is none.
func WqCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &QueryActionRunner[SessionRow]{
		CommandName:  "wq",
		DefaultAttrs: wqDefaultAttrs,
		FetchFn:      wqFetch,
	}
	return runner.Run(ctx, cmd)
}

func wqFetch(ctx context.Context, cmd *cli.Command) ([]SessionRow, error) {
	season, err := NewSource(cmd).Season(ctx, cmd.Int("year"))
	if err != nil {
		return nil, err
	}

	race, ws, err := wqWeekend(season, cmd.Args().First())
	if err != nil {
		return nil, err
	}
	log.Debugf("weekend: round %s %s", race.Round, race.RaceName)

	return SessionRows(race, ws), nil
}

// wqWeekend resolves the weekend held at circuitID, or the next one when
// circuitID is empty.
func wqWeekend(season ergast.Season, circuitID string) (ergast.RaceEntry, schedule.WeekendSchedule, error) {
	if circuitID == "" {
		race, ok := schedule.NextRace(season, now())
		if !ok {
			return ergast.RaceEntry{}, schedule.WeekendSchedule{}, fmt.Errorf("%s: %w", season.Year, ErrSeasonOver)
		}
		return race, schedule.FromRace(race), nil
	}

	ws, err := schedule.FindByCircuit(season, circuitID)
	if err != nil {
		return ergast.RaceEntry{}, schedule.WeekendSchedule{}, err
	}
	// FindByCircuit succeeded, so the same first match labels the rows.
	race, err := schedule.FindRace(season, circuitID)
	return race, ws, err
}

// WqCommandBuilder constructs the cli.Command for "wq", wiring metadata,
// flags, and action/validator handlers.
func WqCommandBuilder(meta meta.Meta) *cli.Command {
	qcb := &QueryCommandBuilder{
		Name:      "wq",
		Usage:     "weekend query",
		UsageText: `f1ctl wq [circuitId] [options]`,
		Flags: []cli.Flag{
			NewYearFlag("wq", meta.Config.Source),
			NewAPIFlag("wq", meta.Config.Source),
		},
		Action: WqCommandAction,
		Meta:   meta,
	}
	return qcb.Build()
}
