// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"os/exec"
	"time"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/f1ctlgo/internal/ergast"
)

// Flags hold their parsed value, so every command gets its own instance.

func newSchemaFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "schema",
		Usage:       "dump the attributes available to --attrs",
		HideDefault: true,
	}
}

func newTldrFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}
}

// NewGlobalFlags returns the presentation flags shared by the query commands.
// ns is the command name and src the config file; config values are looked
// up as <ns>.<flag> first and then <flag>.
func NewGlobalFlags(ns string, src string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
		},
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+".color", altsrc.StringSourcer(src)),
				yaml.YAML("color", altsrc.StringSourcer(src)),
			),
			Value: false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format (text, json, yaml, raw, ics)",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+".output", altsrc.StringSourcer(src)),
				yaml.YAML("output", altsrc.StringSourcer(src)),
			),
			Value: "text",
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator, OutputValidator)
			},
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+".sort", altsrc.StringSourcer(src)),
			),
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+".titles", altsrc.StringSourcer(src)),
				yaml.YAML("titles", altsrc.StringSourcer(src)),
			),
			Value: false,
		},
		NewTzFlag(ns, src),
	}

	return
}

// NewTzFlag constructs the --tz flag used by the time transforms.
func NewTzFlag(ns string, src string) *cli.StringFlag {
	flag := &cli.StringFlag{
		Name:  "tz",
		Usage: "IANA timezone for session times, or Local",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("F1CTL_TZ"),
		),
		Value: "Local",
		Validator: func(value string) error {
			return FlagValidators(value, JammedFlagValidator, TimezoneValidator)
		},
	}
	return NameSpacedValueChainFlagFromConfigFile(ns, src, flag)
}

// NewYearFlag constructs the --year flag. It defaults to the current year.
func NewYearFlag(ns string, src string) *cli.IntFlag {
	return &cli.IntFlag{
		Name:    "year",
		Aliases: []string{"y"},
		Usage:   fmt.Sprintf("season to query (%d or later, earlier seasons have no session times)", firstSeason),
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("F1CTL_YEAR"),
			yaml.YAML(ns+".year", altsrc.StringSourcer(src)),
		),
		Value: time.Now().Year(),
		Validator: func(value int) error {
			return FlagValidators(value, YearValidator)
		},
	}
}

// NewAPIFlag constructs the --api flag naming the Ergast-compatible base URL.
func NewAPIFlag(ns string, src string) *cli.StringFlag {
	flag := &cli.StringFlag{
		Name:  "api",
		Usage: "base URL of the Ergast compatible schedule API",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("F1CTL_API"),
		),
		Value: ergast.DefaultBaseURL,
		Validator: func(value string) error {
			return FlagValidators(value, JammedFlagValidator, URLValidator)
		},
	}
	return NameSpacedValueChainFlagFromConfigFile(ns, src, flag)
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}

// pathHas reports whether target is on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
