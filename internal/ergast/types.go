// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package ergast

import (
	"encoding/json"
	"fmt"
	"time"
)

// Location is where a circuit is. Coordinates stay as the API's strings.
type Location struct {
	Lat      string `json:"lat" validate:"required"`
	Long     string `json:"long" validate:"required"`
	Locality string `json:"locality" validate:"required"`
	Country  string `json:"country" validate:"required"`
}

// Circuit is a racing venue. Circuits are shared by value across seasons and
// never modified after parsing.
type Circuit struct {
	CircuitID   string   `json:"circuitId" validate:"required"`
	URL         string   `json:"url" validate:"required"`
	CircuitName string   `json:"circuitName" validate:"required"`
	Location    Location `json:"Location"`
}

// SessionSchedule is one timed event of a race weekend. Date and Time are kept
// exactly as the API sends them and only combined by Start.
type SessionSchedule struct {
	Date string `json:"date" validate:"required"`
	Time string `json:"time" validate:"required"`
}

// Start combines Date and Time into an instant. Times without an offset are
// taken as UTC.
func (s SessionSchedule) Start() (time.Time, error) {
	joined := s.Date + "T" + s.Time
	if t, err := time.Parse(time.RFC3339, joined); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02T15:04:05", joined, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid session time %q %q: %w", s.Date, s.Time, err)
	}
	return t, nil
}

// RaceEntry is one round of a season.
type RaceEntry struct {
	Season   string  `json:"season" validate:"required"`
	Round    string  `json:"round" validate:"required"`
	URL      string  `json:"url"`
	RaceName string  `json:"raceName" validate:"required"`
	Circuit  Circuit `json:"Circuit"`
	Date     string  `json:"date" validate:"required"`
	Time     string  `json:"time" validate:"required"`

	FirstPractice    *SessionSchedule `json:"FirstPractice" validate:"required"`
	SecondPractice   *SessionSchedule `json:"SecondPractice" validate:"required"`
	ThirdPractice    *SessionSchedule `json:"ThirdPractice,omitempty" validate:"omitempty"`
	Qualifying       *SessionSchedule `json:"Qualifying" validate:"required"`
	SprintQualifying *SessionSchedule `json:"SprintQualifying,omitempty" validate:"omitempty"`
	Sprint           *SessionSchedule `json:"Sprint,omitempty" validate:"omitempty"`
}

// UnmarshalJSON accepts SprintShootout, the 2023 name for SprintQualifying.
func (r *RaceEntry) UnmarshalJSON(b []byte) error {
	type plain RaceEntry
	aux := struct {
		*plain
		SprintShootout *SessionSchedule `json:"SprintShootout"`
	}{plain: (*plain)(r)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if r.SprintQualifying == nil {
		r.SprintQualifying = aux.SprintShootout
	}
	return nil
}

// RaceSession returns the main race as a SessionSchedule.
func (r RaceEntry) RaceSession() SessionSchedule {
	return SessionSchedule{Date: r.Date, Time: r.Time}
}

// IsSprintWeekend is true for rounds that carry a sprint race.
func (r RaceEntry) IsSprintWeekend() bool {
	return r.Sprint != nil
}

// Season is the ordered list of rounds for one year, in the order the API
// returned them.
type Season struct {
	Year  string
	Races []RaceEntry
}

// Envelope holds the MRData bookkeeping fields. None of them are required.
type Envelope struct {
	Xmlns  string `json:"xmlns"`
	Series string `json:"series"`
	URL    string `json:"url"`
	Limit  string `json:"limit"`
	Offset string `json:"offset"`
	Total  string `json:"total"`
}

type circuitsResponse struct {
	MRData *circuitsData `json:"MRData" validate:"required"`
}

type circuitsData struct {
	Envelope
	CircuitTable *circuitTable `json:"CircuitTable" validate:"required"`
}

type circuitTable struct {
	Season   string    `json:"season"`
	Circuits []Circuit `json:"Circuits" validate:"required,dive"`
}

type seasonResponse struct {
	MRData *seasonData `json:"MRData" validate:"required"`
}

type seasonData struct {
	Envelope
	RaceTable *raceTable `json:"RaceTable" validate:"required"`
}

type raceTable struct {
	Season string      `json:"season"`
	Races  []RaceEntry `json:"Races" validate:"required,dive"`
}
