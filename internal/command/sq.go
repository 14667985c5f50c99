// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"strings"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/f1ctlgo/internal/meta"
)

var sqDefaultAttrs = []string{"round", "name", "circuit", "country", "start::t"}

// SqCommandAction is the action handler for the "sq" subcommand. It lists
// every round of the season.
func SqCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &QueryActionRunner[RaceRow]{
		CommandName:  "sq",
		DefaultAttrs: sqDefaultAttrs,
		FetchFn: func(ctx context.Context, cmd *cli.Command) ([]RaceRow, error) {
			season, err := NewSource(cmd).Season(ctx, cmd.Int("year"))
			if err != nil {
				return nil, err
			}
			return RaceRows(season), nil
		},
		PostProcess: func(cmd *cli.Command, rows []RaceRow) {
			if !cmd.Bool("chop") {
				return
			}
			names := make([]string, len(rows))
			for i := range rows {
				names[i] = rows[i].Name
			}
			for i, name := range chopSuffix(names) {
				rows[i].Name = name
			}
		},
	}
	return runner.Run(ctx, cmd)
}

// SqCommandBuilder constructs the cli.Command for "sq", wiring metadata,
// flags, and action/validator handlers.
func SqCommandBuilder(meta meta.Meta) *cli.Command {
	qcb := &QueryCommandBuilder{
		Name:      "sq",
		Usage:     "season query",
		UsageText: `f1ctl sq [options]`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "chop",
				Usage: "chop the common suffix from race names",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("sq.chop", altsrc.StringSourcer(meta.Config.Source)),
				),
				Value: false,
			},
			NewYearFlag("sq", meta.Config.Source),
			NewAPIFlag("sq", meta.Config.Source),
		},
		Action: SqCommandAction,
		Meta:   meta,
	}
	return qcb.Build()
}

// chopSuffix finds common trailing space-delimited words in values. If at
// least 50% of entries share at least 2 common trailing words, those words
// are removed from the entries that end with them.
func chopSuffix(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	if len(values) == 0 {
		return out
	}

	threshold := (len(values) + 1) / 2

	segmented := make([][]string, len(values))
	maxSegments := 0
	for i, v := range values {
		segmented[i] = strings.Fields(v)
		if len(segmented[i]) > maxSegments {
			maxSegments = len(segmented[i])
		}
	}

	// Walk backwards from the last word while a word is shared by at least
	// half of the values.
	var common []string
	for pos := 1; pos <= maxSegments; pos++ {
		counts := make(map[string]int)
		for _, segs := range segmented {
			if pos <= len(segs) {
				counts[segs[len(segs)-pos]]++
			}
		}

		var best string
		var bestCount int
		for seg, count := range counts {
			if count > bestCount || (count == bestCount && seg < best) {
				best = seg
				bestCount = count
			}
		}

		if bestCount < threshold {
			break
		}
		common = append([]string{best}, common...)
	}

	if len(common) < 2 {
		return out
	}

	suffix := " " + strings.Join(common, " ")
	for i, segs := range segmented {
		joined := strings.Join(segs, " ")
		// A value made only of the suffix is left alone.
		if strings.HasSuffix(joined, suffix) {
			out[i] = strings.TrimSuffix(joined, suffix)
		}
	}
	return out
}
