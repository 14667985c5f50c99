// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package schedule

import (
	"sort"
	"time"

	"github.com/apex/log"

	"github.com/staranto/f1ctlgo/internal/ergast"
	"github.com/staranto/f1ctlgo/internal/fault"
)

// ErrCircuitNotFound matches lookup misses with errors.Is.
var ErrCircuitNotFound = fault.CircuitNotFound

// WeekendSchedule is the session-only view of a RaceEntry. ThirdPractice,
// SprintQualifying and Sprint are nil when the round does not have them.
type WeekendSchedule struct {
	FirstPractice    ergast.SessionSchedule  `json:"FirstPractice"`
	SecondPractice   ergast.SessionSchedule  `json:"SecondPractice"`
	ThirdPractice    *ergast.SessionSchedule `json:"ThirdPractice,omitempty"`
	SprintQualifying *ergast.SessionSchedule `json:"SprintQualifying,omitempty"`
	Sprint           *ergast.SessionSchedule `json:"Sprint,omitempty"`
	Qualifying       ergast.SessionSchedule  `json:"Qualifying"`
	Race             ergast.SessionSchedule  `json:"Race"`
}

// Session is a named entry of a weekend.
type Session struct {
	Name     string
	Schedule ergast.SessionSchedule
}

// FromRace extracts the WeekendSchedule of race.
func FromRace(race ergast.RaceEntry) WeekendSchedule {
	return WeekendSchedule{
		FirstPractice:    deref(race.FirstPractice),
		SecondPractice:   deref(race.SecondPractice),
		ThirdPractice:    clone(race.ThirdPractice),
		SprintQualifying: clone(race.SprintQualifying),
		Sprint:           clone(race.Sprint),
		Qualifying:       deref(race.Qualifying),
		Race:             race.RaceSession(),
	}
}

// Sessions lists the sessions present in the weekend in programme order.
func (w WeekendSchedule) Sessions() []Session {
	sessions := []Session{
		{Name: "Practice 1", Schedule: w.FirstPractice},
		{Name: "Practice 2", Schedule: w.SecondPractice},
	}
	if w.ThirdPractice != nil {
		sessions = append(sessions, Session{Name: "Practice 3", Schedule: *w.ThirdPractice})
	}
	if w.SprintQualifying != nil {
		sessions = append(sessions, Session{Name: "Sprint Qualifying", Schedule: *w.SprintQualifying})
	}
	if w.Sprint != nil {
		sessions = append(sessions, Session{Name: "Sprint", Schedule: *w.Sprint})
	}
	sessions = append(sessions,
		Session{Name: "Qualifying", Schedule: w.Qualifying},
		Session{Name: "Race", Schedule: w.Race},
	)
	return sessions
}

// FindRace returns the first race of season, in round order, held at
// circuitID. The match is exact and case-sensitive.
func FindRace(season ergast.Season, circuitID string) (ergast.RaceEntry, error) {
	for _, race := range season.Races {
		if race.Circuit.CircuitID == circuitID {
			log.Debugf("circuit %s is round %s of %s", circuitID, race.Round, race.Season)
			return race, nil
		}
	}
	return ergast.RaceEntry{}, fault.New(fault.KindCircuitNotFound, fault.OpFindCircuit, circuitID, nil)
}

// FindByCircuit resolves the weekend schedule of circuitID within season.
func FindByCircuit(season ergast.Season, circuitID string) (WeekendSchedule, error) {
	race, err := FindRace(season, circuitID)
	if err != nil {
		return WeekendSchedule{}, err
	}
	return FromRace(race), nil
}

// NextRace returns the first race of season, in round order, whose race
// start is after at. Races whose start does not parse are skipped.
func NextRace(season ergast.Season, at time.Time) (ergast.RaceEntry, bool) {
	for _, race := range season.Races {
		start, err := race.RaceSession().Start()
		if err != nil {
			continue
		}
		if start.After(at) {
			return race, true
		}
	}
	return ergast.RaceEntry{}, false
}

// AllSchedules maps every race of season to its WeekendSchedule, keeping
// round order.
func AllSchedules(season ergast.Season) []WeekendSchedule {
	schedules := make([]WeekendSchedule, 0, len(season.Races))
	for _, race := range season.Races {
		schedules = append(schedules, FromRace(race))
	}
	return schedules
}

// CircuitIndex maps circuit identifiers to circuits. Build it once from a
// circuits listing and pass it to whoever needs lookups.
type CircuitIndex map[string]ergast.Circuit

// NewCircuitIndex indexes circuits. Identifiers are unique within a listing;
// should one repeat, the first occurrence wins.
func NewCircuitIndex(circuits []ergast.Circuit) CircuitIndex {
	idx := make(CircuitIndex, len(circuits))
	for _, c := range circuits {
		if _, ok := idx[c.CircuitID]; ok {
			continue
		}
		idx[c.CircuitID] = c
	}
	return idx
}

// Lookup returns the circuit for id.
func (idx CircuitIndex) Lookup(id string) (ergast.Circuit, error) {
	c, ok := idx[id]
	if !ok {
		return ergast.Circuit{}, fault.New(fault.KindCircuitNotFound, fault.OpLookupCircuit, id, nil)
	}
	return c, nil
}

// IDs returns the indexed identifiers in lexical order.
func (idx CircuitIndex) IDs() []string {
	ids := make([]string, 0, len(idx))
	for id := range idx {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func deref(s *ergast.SessionSchedule) ergast.SessionSchedule {
	if s == nil {
		return ergast.SessionSchedule{}
	}
	return *s
}

func clone(s *ergast.SessionSchedule) *ergast.SessionSchedule {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
