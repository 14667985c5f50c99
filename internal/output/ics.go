// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/apex/log"
	ics "github.com/arran4/golang-ical"

	"github.com/staranto/f1ctlgo/internal/attrs"
)

// Row keys read when building calendar events. Rows without a start are
// skipped.
var calendarKeys = []string{"start", "session", "name", "round", "season", "locality", "country", "url"}

const calendarPrefix = "_ics_"

// Session lengths used for DTEND. Ergast only publishes start times.
var sessionDurations = map[string]time.Duration{
	"Race":   2 * time.Hour,
	"Sprint": time.Hour,
}

const defaultSessionDuration = time.Hour

// now is swapped in tests.
var now = time.Now

func withCalendarAttrs(al attrs.AttrList) attrs.AttrList {
	out := make(attrs.AttrList, len(al), len(al)+len(calendarKeys))
	copy(out, al)
	for _, k := range calendarKeys {
		out = append(out, attrs.Attr{Key: k, OutputKey: calendarPrefix + k})
	}
	return out
}

// CalendarWriter renders rows as an iCalendar document with one VEVENT per
// row.
func CalendarWriter(rows []map[string]interface{}, name string, w io.Writer) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//f1ctl//schedule//EN")
	if name != "" {
		cal.SetXWRCalName(name)
	}

	stamp := now().UTC()
	for _, row := range rows {
		field := func(k string) string {
			return InterfaceToString(row[calendarPrefix+k])
		}

		start, err := time.Parse(time.RFC3339, field("start"))
		if err != nil {
			log.Debugf("row without start skipped: %v", row)
			continue
		}

		session := field("session")
		if session == "" {
			session = "Race"
		}
		duration, ok := sessionDurations[session]
		if !ok {
			duration = defaultSessionDuration
		}

		summary := field("name")
		if session != "Race" {
			summary = fmt.Sprintf("%s - %s", summary, session)
		}

		event := cal.AddEvent(eventUID(field("season"), field("round"), session))
		event.SetDtStampTime(stamp)
		event.SetStartAt(start)
		event.SetEndAt(start.Add(duration))
		event.SetSummary(summary)
		if loc := joinNonEmpty(", ", field("locality"), field("country")); loc != "" {
			event.SetLocation(loc)
		}
		if u := field("url"); u != "" {
			event.SetURL(u)
		}
	}

	return cal.SerializeTo(w)
}

func eventUID(season, round, session string) string {
	slug := strings.ToLower(strings.ReplaceAll(session, " ", "-"))
	return fmt.Sprintf("%s-%s-%s@f1ctl", season, round, slug)
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
