// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT
package command

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/f1ctlgo/internal/cacheutil"
	"github.com/staranto/f1ctlgo/internal/config"
	"github.com/staranto/f1ctlgo/internal/meta"
)

// InitApp builds the f1ctl command tree for args.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	// The arg[1] immediately following the binary (arg[0]) is the f1ctl
	// subcommand and also represents the namespace key to be used when retrieving
	// config values. arg[1] could be -h/--help, so ignore it if it appears to be
	// a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	cfg, err := config.Load(ns)
	if err != nil && !errors.Is(err, config.ErrNoConfig) {
		return nil, err
	}
	log.Debugf("config: %q", cfg.Source)

	base, ok := cacheutil.Dir()
	if !ok {
		return nil, errors.New("unable to determine a cache directory; set F1CTL_CACHE_DIR")
	}

	meta := meta.Meta{
		Args:    args,
		Config:  cfg,
		Context: ctx,
		Cache:   cacheutil.NewStore(base),
	}

	app := &cli.Command{
		Name:  "f1ctl",
		Usage: "Formula 1 schedule control",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "f1ctl version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		CacheCommandBuilder(meta),
		CompletionCommandBuilder(meta),
		CqCommandBuilder(meta),
		SqCommandBuilder(meta),
		UiCommandBuilder(meta),
		WqCommandBuilder(meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
