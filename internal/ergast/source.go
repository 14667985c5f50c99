// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package ergast

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/apex/log"

	"github.com/staranto/f1ctlgo/internal/cacheutil"
	"github.com/staranto/f1ctlgo/internal/fault"
)

// DefaultBaseURL is the Ergast-compatible API that replaced ergast.com.
const DefaultBaseURL = "https://api.jolpi.ca/ergast/f1"

// pageLimit is large enough that a season or the full circuit list arrives in
// one response. The API otherwise pages at 30 items.
const pageLimit = 1000

// Getter is satisfied by fetch.Fetcher.
type Getter interface {
	FetchOrCache(ctx context.Context, url string, key cacheutil.Key) ([]byte, error)
}

// SeasonURL is the schedule endpoint for year.
func SeasonURL(base string, year int) string {
	return fmt.Sprintf("%s/%d.json?limit=%d", strings.TrimRight(base, "/"), year, pageLimit)
}

// SeasonKey is where the schedule for year is cached.
func SeasonKey(year int) cacheutil.Key {
	return cacheutil.Key{Filename: strconv.Itoa(year) + ".json"}
}

// CircuitsURL is the circuits endpoint, scoped to year when year is non-zero.
func CircuitsURL(base string, year int) string {
	base = strings.TrimRight(base, "/")
	if year == 0 {
		return fmt.Sprintf("%s/circuits.json?limit=%d", base, pageLimit)
	}
	return fmt.Sprintf("%s/%d/circuits.json?limit=%d", base, year, pageLimit)
}

// CircuitsKey is where the circuits listing is cached, beneath a year
// directory when year is non-zero.
func CircuitsKey(year int) cacheutil.Key {
	if year == 0 {
		return cacheutil.Key{Filename: "circuits.json"}
	}
	return cacheutil.Key{Year: strconv.Itoa(year), Filename: "circuits.json"}
}

// Source loads and parses API documents through a Getter.
type Source struct {
	Fetcher Getter
	BaseURL string
}

// NewSource returns a Source for base, falling back to DefaultBaseURL.
func NewSource(f Getter, base string) *Source {
	if base == "" {
		base = DefaultBaseURL
	}
	return &Source{Fetcher: f, BaseURL: base}
}

// Season returns the parsed schedule for year.
func (s *Source) Season(ctx context.Context, year int) (Season, error) {
	url := SeasonURL(s.BaseURL, year)
	data, err := s.Fetcher.FetchOrCache(ctx, url, SeasonKey(year))
	if err != nil {
		return Season{}, err
	}

	season, err := ParseSeason(data)
	if err != nil {
		return Season{}, label(err, url)
	}
	log.Debugf("season %d: %d races", year, len(season.Races))
	return season, nil
}

// Circuits returns the circuits raced in year, or every circuit when year is
// zero.
func (s *Source) Circuits(ctx context.Context, year int) ([]Circuit, error) {
	url := CircuitsURL(s.BaseURL, year)
	data, err := s.Fetcher.FetchOrCache(ctx, url, CircuitsKey(year))
	if err != nil {
		return nil, err
	}

	circuits, err := ParseCircuits(data)
	if err != nil {
		return nil, label(err, url)
	}
	return circuits, nil
}

// label records which document failed to parse.
func label(err error, resource string) error {
	var fe *fault.Error
	if errors.As(err, &fe) && fe.Resource == "" {
		fe.Resource = resource
	}
	return err
}
