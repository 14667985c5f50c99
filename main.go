// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apex/log"

	"github.com/staranto/f1ctlgo/internal/cacheutil"
	"github.com/staranto/f1ctlgo/internal/command"
	"github.com/staranto/f1ctlgo/internal/config"
	"github.com/staranto/f1ctlgo/internal/fault"
	mylog "github.com/staranto/f1ctlgo/internal/log"
	"github.com/staranto/f1ctlgo/internal/version"
)

var ctx = context.Background()

const (
	exitOK       = 0
	exitInit     = 1
	exitFailure  = 2
	exitNotFound = 3
)

func main() {
	os.Exit(realMain(os.Args, os.Stdout, os.Stderr))
}

func realMain(args []string, stdout, stderr io.Writer) int {
	mylog.InitLogger()

	if len(args) < 2 {
		fmt.Fprintln(stderr, "No command specified.")
		args = append(args, "--help")
	} else {
		// Sets live in the config file, so it has to be read before mangling.
		if _, err := config.Load(args[1]); err != nil && !errors.Is(err, config.ErrNoConfig) {
			log.Debugf("config: %v", err)
		}
		args = mangleArguments(args)
	}

	// Short-circuit --version/-v.
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Fprintln(stdout, version.Version)
			return exitOK
		}
	}

	// Best-effort: pre-create the cache directory.
	if _, _, err := cacheutil.EnsureBaseDir(); err != nil {
		fmt.Fprintln(stderr, fault.Friendly(err))
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitInit
	}
	app.Writer = stdout
	app.ErrWriter = stderr

	if err := app.Run(ctx, args); err != nil {
		if fault.IsInfrastructure(err) {
			log.WithError(err).Debug("schedule retrieval failed")
		}
		fmt.Fprintln(stderr, fault.Friendly(err))
		return exitCode(err)
	}

	return exitOK
}

// exitCode maps a command failure to the process exit status.
func exitCode(err error) int {
	switch fault.KindOf(err) {
	case fault.KindCircuitNotFound:
		return exitNotFound
	default:
		return exitFailure
	}
}

// mangleArguments expands an @set argument into the flags stored under
// <command>.<set> in the config file. Without an explicit @set the
// <command>.defaults set, if any, is used.
func mangleArguments(args []string) []string {
	// The first two args are the executable and the command.
	preamble := make([]string, 2)
	copy(preamble, args[:2])

	// If help is requested, just keep the preamble and add --help.
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return append(preamble, "--help")
		}
	}

	set := "defaults"
	rest := make([]string, 0, len(args)-2)
	for _, a := range args[2:] {
		if strings.HasPrefix(a, "@") && set == "defaults" && len(a) > 1 {
			set = a[1:]
			continue
		}
		rest = append(rest, a)
	}

	// Set flags go ahead of the user's own so later values win.
	setArgs, _ := config.GetStringSlice(args[1] + "." + set)
	var expanded []string
	for _, arg := range setArgs {
		expanded = append(expanded, strings.Fields(arg)...)
	}

	out := append(preamble, expanded...)
	out = append(out, rest...)

	log.Debugf("set=%s, args=%v", set, out)
	return out
}
