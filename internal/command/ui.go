// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/staranto/f1ctlgo/internal/meta"
	"github.com/staranto/f1ctlgo/internal/tui"
)

// ErrNotTerminal is returned by ui when stdin or stdout is redirected.
var ErrNotTerminal = errors.New("ui needs an interactive terminal")

// UiCommandAction is the action handler for the "ui" subcommand.
func UiCommandAction(ctx context.Context, cmd *cli.Command) error {
	if ShortCircuitTLDR(ctx, cmd, "ui") {
		return nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNotTerminal
	}

	loc, err := Location(cmd)
	if err != nil {
		return err
	}

	season, err := NewSource(cmd).Season(ctx, cmd.Int("year"))
	if err != nil {
		return err
	}
	log.Debugf("ui: %d rounds in %s", len(season.Races), loc)

	return tui.Run(ctx, season, loc)
}

// UiCommandBuilder constructs the cli.Command for "ui".
func UiCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "ui",
		Usage:     "interactive season browser",
		UsageText: `f1ctl ui [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			NewYearFlag("ui", meta.Config.Source),
			NewAPIFlag("ui", meta.Config.Source),
			NewTzFlag("ui", meta.Config.Source),
			newTldrFlag(),
		},
		Action: UiCommandAction,
	}
}
