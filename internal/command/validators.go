// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/staranto/f1ctlgo/internal/output"
)

// firstSeason is the first season the schedule API publishes practice and
// qualifying times for. Earlier seasons never parse.
const firstSeason = 2022

// GlobalFlagsValidator checks flag combinations that single-flag validators
// cannot see.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	if c.String("output") == "ics" && slices.Contains([]string{"cq", "cache"}, c.Name) {
		return fmt.Errorf("--output ics needs session times; %s has none", c.Name)
	}
	return nil
}

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// JammedFlagValidator verifies that the arg following a flag does not begin
// with '--'.  urfave/cli allows this and I don't see how to turn it off.
func JammedFlagValidator(value any) error {
	if strings.HasPrefix(value.(string), "--") {
		return errors.New("must not begin with '--'")
	}
	return nil
}

func OutputValidator(value any) error {
	if !slices.Contains(output.Formats, value.(string)) {
		return fmt.Errorf("must be one of %v", output.Formats)
	}
	return nil
}

// YearValidator accepts seasons from firstSeason through next year.
func YearValidator(value any) error {
	year := value.(int)
	last := time.Now().Year() + 1
	if year < firstSeason || year > last {
		return fmt.Errorf("must be between %d and %d", firstSeason, last)
	}
	return nil
}

func TimezoneValidator(value any) error {
	tz := value.(string)
	if tz == "" || tz == "Local" {
		return nil
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return fmt.Errorf("unknown timezone %q", tz)
	}
	return nil
}

func URLValidator(value any) error {
	u, err := url.Parse(value.(string))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("must be an http(s) URL")
	}
	return nil
}
