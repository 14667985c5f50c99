// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"time"

	"github.com/dustin/go-humanize"

	"github.com/staranto/f1ctlgo/internal/cacheutil"
	"github.com/staranto/f1ctlgo/internal/ergast"
	"github.com/staranto/f1ctlgo/internal/schedule"
)

// The row types below are what --attrs, --filter and --sort address. Their
// json tags are the attribute paths.

// SessionRow is one session of a race weekend.
type SessionRow struct {
	Season   string `json:"season"`
	Round    string `json:"round"`
	Name     string `json:"name"`
	Circuit  string `json:"circuit"`
	Locality string `json:"locality"`
	Country  string `json:"country"`
	Session  string `json:"session"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Start    string `json:"start"`
	URL      string `json:"url"`
}

// Weekend holds the start of each session of a round. Sessions a round does
// not have are empty.
type Weekend struct {
	FirstPractice    string `json:"fp1"`
	SecondPractice   string `json:"fp2"`
	ThirdPractice    string `json:"fp3,omitempty"`
	SprintQualifying string `json:"sprintQualifying,omitempty"`
	Sprint           string `json:"sprint,omitempty"`
	Qualifying       string `json:"qualifying"`
	Race             string `json:"race"`
}

// RaceRow is one round of a season.
type RaceRow struct {
	Season      string   `json:"season"`
	Round       string   `json:"round"`
	Name        string   `json:"name"`
	Circuit     string   `json:"circuit"`
	CircuitName string   `json:"circuitName"`
	Locality    string   `json:"locality"`
	Country     string   `json:"country"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Start       string   `json:"start"`
	Sprint      bool     `json:"sprint"`
	Sessions    []string `json:"sessions"`
	Weekend     Weekend  `json:"weekend"`
	URL         string   `json:"url"`
}

// CircuitRow is one circuit of a circuits listing.
type CircuitRow struct {
	Circuit  string `json:"circuit"`
	Name     string `json:"name"`
	Locality string `json:"locality"`
	Country  string `json:"country"`
	Lat      string `json:"lat"`
	Long     string `json:"long"`
	URL      string `json:"url"`
}

// CacheRow is one file in the cache.
type CacheRow struct {
	Key      string `json:"key"`
	Path     string `json:"path"`
	Size     int64  `json:"size"`
	Bytes    string `json:"bytes"`
	Modified string `json:"modified"`
}

// start renders a session start as RFC3339 in UTC. Schedules that do not
// parse fall back to their date so the row still sorts sensibly.
func start(s ergast.SessionSchedule) string {
	t, err := s.Start()
	if err != nil {
		return s.Date
	}
	return t.UTC().Format(time.RFC3339)
}

func optionalStart(s *ergast.SessionSchedule) string {
	if s == nil {
		return ""
	}
	return start(*s)
}

// SessionRows lists the sessions of ws in programme order, labelled with
// the round details of race.
func SessionRows(race ergast.RaceEntry, ws schedule.WeekendSchedule) []SessionRow {
	sessions := ws.Sessions()
	rows := make([]SessionRow, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, SessionRow{
			Season:   race.Season,
			Round:    race.Round,
			Name:     race.RaceName,
			Circuit:  race.Circuit.CircuitID,
			Locality: race.Circuit.Location.Locality,
			Country:  race.Circuit.Location.Country,
			Session:  s.Name,
			Date:     s.Schedule.Date,
			Time:     s.Schedule.Time,
			Start:    start(s.Schedule),
			URL:      race.URL,
		})
	}
	return rows
}

// RaceRows lists the rounds of season in round order.
func RaceRows(season ergast.Season) []RaceRow {
	schedules := schedule.AllSchedules(season)
	rows := make([]RaceRow, 0, len(season.Races))
	for i, race := range season.Races {
		ws := schedules[i]

		names := []string{}
		for _, s := range ws.Sessions() {
			names = append(names, s.Name)
		}

		rows = append(rows, RaceRow{
			Season:      race.Season,
			Round:       race.Round,
			Name:        race.RaceName,
			Circuit:     race.Circuit.CircuitID,
			CircuitName: race.Circuit.CircuitName,
			Locality:    race.Circuit.Location.Locality,
			Country:     race.Circuit.Location.Country,
			Date:        race.Date,
			Time:        race.Time,
			Start:       start(ws.Race),
			Sprint:      race.IsSprintWeekend(),
			Sessions:    names,
			Weekend: Weekend{
				FirstPractice:    start(ws.FirstPractice),
				SecondPractice:   start(ws.SecondPractice),
				ThirdPractice:    optionalStart(ws.ThirdPractice),
				SprintQualifying: optionalStart(ws.SprintQualifying),
				Sprint:           optionalStart(ws.Sprint),
				Qualifying:       start(ws.Qualifying),
				Race:             start(ws.Race),
			},
			URL: race.URL,
		})
	}
	return rows
}

// CircuitRows lists idx in identifier order.
func CircuitRows(idx schedule.CircuitIndex) []CircuitRow {
	rows := make([]CircuitRow, 0, len(idx))
	for _, id := range idx.IDs() {
		c := idx[id]
		rows = append(rows, CircuitRow{
			Circuit:  c.CircuitID,
			Name:     c.CircuitName,
			Locality: c.Location.Locality,
			Country:  c.Location.Country,
			Lat:      c.Location.Lat,
			Long:     c.Location.Long,
			URL:      c.URL,
		})
	}
	return rows
}

// CacheRows describes the cache entries.
func CacheRows(entries []cacheutil.Entry) []CacheRow {
	rows := make([]CacheRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, CacheRow{
			Key:      e.Key.String(),
			Path:     e.Path,
			Size:     e.Size,
			Bytes:    humanize.Bytes(uint64(e.Size)),
			Modified: e.ModTime.UTC().Format(time.RFC3339),
		})
	}
	return rows
}
