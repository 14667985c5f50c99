// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/staranto/f1ctlgo/internal/cacheutil"
	"github.com/staranto/f1ctlgo/internal/meta"
)

var cacheDefaultAttrs = []string{"key", "bytes", "modified:age:h"}

// CacheCommandAction is the action handler for the "cache" subcommand. It
// lists the cached API responses.
func CacheCommandAction(ctx context.Context, cmd *cli.Command) error {
	store := GetMeta(cmd).Cache
	if store == nil {
		base, ok := cacheutil.Dir()
		if !ok {
			return fmt.Errorf("no cache directory; set F1CTL_CACHE_DIR")
		}
		store = cacheutil.NewStore(base)
	}

	if cmd.Bool("path") {
		_, err := fmt.Fprintln(writer(cmd), store.Base)
		return err
	}

	runner := &QueryActionRunner[CacheRow]{
		CommandName:  "cache",
		DefaultAttrs: cacheDefaultAttrs,
		FetchFn: func(context.Context, *cli.Command) ([]CacheRow, error) {
			entries, err := store.Entries()
			if err != nil {
				return nil, err
			}
			return CacheRows(entries), nil
		},
	}
	return runner.Run(ctx, cmd)
}

// CacheCommandBuilder constructs the cli.Command for "cache".
func CacheCommandBuilder(meta meta.Meta) *cli.Command {
	qcb := &QueryCommandBuilder{
		Name:      "cache",
		Usage:     "list cached API responses",
		UsageText: `f1ctl cache [options]`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "path",
				Usage: "print the cache directory and exit",
			},
		},
		Action: CacheCommandAction,
		Meta:   meta,
	}
	return qcb.Build()
}
