// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"reflect"
	"time"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/staranto/f1ctlgo/internal/attrs"
	"github.com/staranto/f1ctlgo/internal/cacheutil"
	"github.com/staranto/f1ctlgo/internal/ergast"
	"github.com/staranto/f1ctlgo/internal/fetch"
	"github.com/staranto/f1ctlgo/internal/meta"
	"github.com/staranto/f1ctlgo/internal/output"
	"github.com/staranto/f1ctlgo/internal/version"
)

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr f1ctl <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "f1ctl", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// DumpSchemaIfRequested prints the attribute paths of the row type when
// --schema is set, and returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, t reflect.Type) bool {
	if t != nil && cmd.Bool("schema") {
		output.DumpSchema(writer(cmd), t)
		return true
	}
	return false
}

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec and the --tz location.
func BuildAttrs(cmd *cli.Command, defaults ...string) (al attrs.AttrList, err error) {
	for _, d := range defaults {
		if err = al.Set(d); err != nil {
			return nil, err
		}
	}
	if extras := cmd.String("attrs"); extras != "" {
		if err = al.Set(extras); err != nil {
			return nil, fmt.Errorf("invalid --attrs: %w", err)
		}
	}
	_ = al.SetGlobalTransformSpec()

	loc, err := Location(cmd)
	if err != nil {
		return nil, err
	}
	al.SetLocation(loc)
	return al, nil
}

// Location resolves --tz. "Local" and "" mean the system zone.
func Location(cmd *cli.Command) (*time.Location, error) {
	tz := cmd.String("tz")
	if tz == "" || tz == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid --tz %q: %w", tz, err)
	}
	return loc, nil
}

// EmitRows marshals rows as JSON and passes them to the common output
// routine.
func EmitRows(rows any, al attrs.AttrList, cmd *cli.Command) error {
	var raw bytes.Buffer
	if err := json.NewEncoder(&raw).Encode(rows); err != nil {
		return fmt.Errorf("failed to marshal rows: %w", err)
	}

	opts := output.OptionsFromCommand(cmd)
	if opts.Color && !isTerminal(writer(cmd)) {
		log.Debug("stdout is not a terminal, color disabled")
		opts.Color = false
	}
	return output.Spit(raw, al, opts, writer(cmd))
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// NewSource builds the schedule source for a command from its meta cache
// and the --api flag.
func NewSource(cmd *cli.Command) *ergast.Source {
	store := GetMeta(cmd).Cache
	if store == nil {
		base, _ := cacheutil.Dir()
		store = cacheutil.NewStore(base)
	}
	log.Debugf("cache: %s", store)
	f := fetch.New(store, fetch.WithUserAgent("f1ctl/"+version.Version))
	return ergast.NewSource(f, cmd.String("api"))
}

// QueryCommandBuilder constructs a cli.Command for the query subcommands
// using a consistent pattern. It wires metadata, adds the tldr/schema flags,
// applies the global flags and sets up validators.
type QueryCommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (qcb *QueryCommandBuilder) Build() *cli.Command {
	return &cli.Command{
		Name:      qcb.Name,
		Usage:     qcb.Usage,
		UsageText: qcb.UsageText,
		Metadata: map[string]any{
			"meta": qcb.Meta,
		},
		Flags: append(qcb.Flags, append([]cli.Flag{
			newTldrFlag(),
			newSchemaFlag(),
		}, NewGlobalFlags(qcb.Name, qcb.Meta.Config.Source)...)...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: qcb.Action,
	}
}

// QueryActionRunner[T] encapsulates the common query action pattern: the
// tldr and schema short circuits, BuildAttrs, fetching rows through FetchFn
// and emitting them.
type QueryActionRunner[T any] struct {
	CommandName  string
	DefaultAttrs []string
	FetchFn      func(context.Context, *cli.Command) ([]T, error)
	// PostProcess, when set, may rewrite the rows before they are emitted.
	PostProcess func(*cli.Command, []T)
}

// Run executes the query action with the provided context and command.
func (qar *QueryActionRunner[T]) Run(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	if len(m.Args) > 1 {
		log.Debugf("Executing action for %v", m.Args[1:])
	}

	if ShortCircuitTLDR(ctx, cmd, qar.CommandName) {
		return nil
	}
	if DumpSchemaIfRequested(cmd, reflect.TypeOf((*T)(nil)).Elem()) {
		return nil
	}

	al, err := BuildAttrs(cmd, qar.DefaultAttrs...)
	if err != nil {
		return err
	}
	log.Debugf("attrs: %v", al.String())

	rows, err := qar.FetchFn(ctx, cmd)
	if err != nil {
		return err
	}
	if rows == nil {
		rows = []T{}
	}
	if qar.PostProcess != nil {
		qar.PostProcess(cmd, rows)
	}

	return EmitRows(rows, al, cmd)
}

func writer(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
