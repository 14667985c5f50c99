// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/staranto/f1ctlgo/internal/attrs"
)

func TestSortDataset(t *testing.T) {
	testData := []map[string]interface{}{
		{"name": "monza", "round": "14", "country": "Italy"},
		{"name": "Bahrain", "round": "1", "country": "Bahrain"},
		{"name": "baku", "round": "4", "country": "Azerbaijan"},
		{"name": "jeddah", "round": "2", "country": "Saudi Arabia"},
	}

	tests := []struct {
		name      string
		spec      string
		wantOrder []string
	}{
		{
			name:      "ascending by name ignores case",
			spec:      "name",
			wantOrder: []string{"Bahrain", "baku", "jeddah", "monza"},
		},
		{
			name:      "descending by name",
			spec:      "-name",
			wantOrder: []string{"monza", "jeddah", "baku", "Bahrain"},
		},
		{
			name:      "case sensitive",
			spec:      "!name",
			wantOrder: []string{"Bahrain", "baku", "jeddah", "monza"},
		},
		{
			name:      "numeric text",
			spec:      "round",
			wantOrder: []string{"Bahrain", "jeddah", "baku", "monza"},
		},
		{
			name:      "numeric text descending",
			spec:      "-round",
			wantOrder: []string{"monza", "baku", "jeddah", "Bahrain"},
		},
		{
			name:      "combined flags",
			spec:      "-!name",
			wantOrder: []string{"monza", "jeddah", "baku", "Bahrain"},
		},
		{
			name:      "empty spec",
			spec:      "",
			wantOrder: []string{"monza", "Bahrain", "baku", "jeddah"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]map[string]interface{}, len(testData))
			copy(data, testData)
			SortDataset(data, tt.spec)
			for i, expectedName := range tt.wantOrder {
				assert.Equal(t, expectedName, data[i]["name"], "at index %d", i)
			}
		})
	}
}

func TestSortDataset_MultipleKeys(t *testing.T) {
	data := []map[string]interface{}{
		{"name": "Race", "round": "2"},
		{"name": "Qualifying", "round": "1"},
		{"name": "Race", "round": "1"},
		{"name": "Qualifying"},
	}

	SortDataset(data, "name,-round")

	got := []interface{}{}
	for _, r := range data {
		got = append(got, r["round"])
	}
	assert.Equal(t, []interface{}{"1", nil, "2", "1"}, got, "missing values sort low")
}

func TestInterfaceToString(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		emptyVal string
		want     string
	}{
		{name: "string", value: "hello", want: "hello"},
		{name: "int", value: 42, want: "42"},
		{name: "float64", value: 42.5, want: "42.5"},
		{name: "float64 integral", value: 14.0, want: "14"},
		{name: "bool true", value: true, want: "true"},
		{name: "bool false", value: false, want: "false"},
		{name: "nil default", value: nil, want: ""},
		{name: "nil custom", value: nil, emptyVal: "-", want: "-"},
		{name: "slice", value: []string{"a", "b"}, want: `["a","b"]`},
		{name: "map", value: map[string]int{"x": 1}, want: `{"x":1}`},
		{name: "zero value int", value: 0, want: ""},
		{name: "empty string custom", value: "", emptyVal: "N/A", want: "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			if tt.emptyVal != "" {
				got = InterfaceToString(tt.value, tt.emptyVal)
			} else {
				got = InterfaceToString(tt.value)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

const sessionRows = `[
  {"season":"2023","round":"4","name":"Azerbaijan Grand Prix","circuit":"baku","locality":"Baku","country":"Azerbaijan","session":"Sprint","start":"2023-04-29T13:30:00Z"},
  {"season":"2023","round":"4","name":"Azerbaijan Grand Prix","circuit":"baku","locality":"Baku","country":"Azerbaijan","session":"Race","start":"2023-04-30T11:00:00Z"},
  {"season":"2023","round":"4","name":"Azerbaijan Grand Prix","circuit":"baku","locality":"Baku","country":"Azerbaijan","session":"Practice 1","start":"2023-04-28T09:30:00Z"}
]`

func buffer(s string) bytes.Buffer {
	var b bytes.Buffer
	b.WriteString(s)
	return b
}

func sessionAttrs(t *testing.T, spec string) attrs.AttrList {
	t.Helper()
	var al attrs.AttrList
	require.NoError(t, al.Set(spec))
	return al
}

func TestSpit_Raw(t *testing.T) {
	var w bytes.Buffer
	require.NoError(t, Spit(buffer(sessionRows), nil, Options{Output: "raw"}, &w))
	assert.Equal(t, sessionRows, w.String())
}

func TestSpit_JSON(t *testing.T) {
	var w bytes.Buffer
	al := sessionAttrs(t, "session,start::t,!circuit")
	opts := Options{Output: "json", Sort: "start", Filter: "circuit=baku"}
	require.NoError(t, Spit(buffer(sessionRows), al, opts, &w))

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Bytes(), &got))
	assert.Equal(t, []map[string]interface{}{
		{"session": "Practice 1", "start": "2023-04-28 09:30 UTC"},
		{"session": "Sprint", "start": "2023-04-29 13:30 UTC"},
		{"session": "Race", "start": "2023-04-30 11:00 UTC"},
	}, got)
}

func TestSpit_JSONEmpty(t *testing.T) {
	var w bytes.Buffer
	al := sessionAttrs(t, "session")
	require.NoError(t, Spit(buffer(sessionRows), al, Options{Output: "json", Filter: "session=Qualifying"}, &w))
	assert.Equal(t, "[]\n", w.String())
}

func TestSpit_YAML(t *testing.T) {
	var w bytes.Buffer
	al := sessionAttrs(t, "session::u")
	require.NoError(t, Spit(buffer(sessionRows), al, Options{Output: "yaml", Filter: "session^S"}, &w))

	var got []map[string]string
	require.NoError(t, yaml.Unmarshal(w.Bytes(), &got))
	assert.Equal(t, []map[string]string{{"session": "SPRINT"}}, got)
}

func TestSpit_Text(t *testing.T) {
	var w bytes.Buffer
	al := sessionAttrs(t, "session,start::t,!round")
	require.NoError(t, Spit(buffer(sessionRows), al, Options{Output: "text", Titles: true, Sort: "-start"}, &w))

	out := w.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "session")
	assert.Contains(t, lines[0], "start")
	assert.NotContains(t, lines[0], "round")
	assert.Contains(t, lines[1], "Race")
	assert.Contains(t, lines[3], "Practice 1")
	assert.Contains(t, lines[3], "2023-04-28 09:30 UTC")
}

func TestSpit_TextEmpty(t *testing.T) {
	var w bytes.Buffer
	al := sessionAttrs(t, "session")
	require.NoError(t, Spit(buffer(`[]`), al, Options{Output: "text"}, &w))
	assert.Empty(t, w.String())
}

func TestSpit_Calendar(t *testing.T) {
	orig := now
	t.Cleanup(func() { now = orig })
	now = func() time.Time { return time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC) }

	var w bytes.Buffer
	al := sessionAttrs(t, "session")
	opts := Options{Output: "ics", Sort: "start", Filter: "session!=Practice 1", Calendar: "f1ctl wq"}
	require.NoError(t, Spit(buffer(sessionRows), al, opts, &w))
	assert.Contains(t, w.String(), "BEGIN:VCALENDAR")

	cal, err := ics.ParseCalendar(strings.NewReader(w.String()))
	require.NoError(t, err)

	events := cal.Events()
	require.Len(t, events, 2)

	assert.Equal(t, "Azerbaijan Grand Prix - Sprint", events[0].GetProperty(ics.ComponentPropertySummary).Value)
	assert.Equal(t, "2023-4-sprint@f1ctl", events[0].GetProperty(ics.ComponentPropertyUniqueId).Value)
	start, err := events[0].GetStartAt()
	require.NoError(t, err)
	assert.True(t, start.Equal(time.Date(2023, 4, 29, 13, 30, 0, 0, time.UTC)))
	end, err := events[0].GetEndAt()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, end.Sub(start))

	assert.Equal(t, "Azerbaijan Grand Prix", events[1].GetProperty(ics.ComponentPropertySummary).Value)
	start, err = events[1].GetStartAt()
	require.NoError(t, err)
	end, err = events[1].GetEndAt()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, end.Sub(start))
}

func TestCalendarWriter_SkipsRowsWithoutStart(t *testing.T) {
	var w bytes.Buffer
	rows := []map[string]interface{}{
		{calendarPrefix + "name": "TBC Grand Prix", calendarPrefix + "start": "TBC"},
	}
	require.NoError(t, CalendarWriter(rows, "", &w))

	cal, err := ics.ParseCalendar(strings.NewReader(w.String()))
	require.NoError(t, err)
	assert.Empty(t, cal.Events())
}

func TestDumpSchemaWalker(t *testing.T) {
	type Location struct {
		Country  string `json:"country"`
		Locality string `json:"locality"`
	}

	type Row struct {
		Name     string    `json:"name"`
		Round    string    `json:"round,omitempty"`
		Location *Location `json:"location"`
		Skipped  string    `json:"-"`
		Untagged string
		hidden   string
	}

	got := DumpSchemaWalker("", reflect.TypeOf(Row{}), 0)
	assert.ElementsMatch(t, []string{"name", "round", "location.country", "location.locality"}, got)

	got = DumpSchemaWalker("parent", reflect.TypeOf(&Location{}), 0)
	assert.ElementsMatch(t, []string{"parent.country", "parent.locality"}, got)

	assert.Empty(t, DumpSchemaWalker("", reflect.TypeOf(""), 0))
}

func TestDumpSchema(t *testing.T) {
	type Row struct {
		Round string `json:"round"`
		Name  string `json:"name"`
	}

	var w bytes.Buffer
	DumpSchema(&w, reflect.TypeOf(Row{}))
	assert.Equal(t, "Schema for Row --\nname\nround\n", w.String())
}

func TestGetColors(t *testing.T) {
	header, even, odd := getColors("nope")
	assert.Equal(t, "#e10600", header)
	assert.Equal(t, "#ffffff", even)
	assert.Equal(t, "#00c8f0", odd)
}

func BenchmarkSortDataset(b *testing.B) {
	testData := []map[string]interface{}{
		{"name": "zebra", "round": "3"},
		{"name": "alpha", "round": "1"},
		{"name": "beta", "round": "2"},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		data := make([]map[string]interface{}, len(testData))
		copy(data, testData)
		SortDataset(data, "round")
	}
}
