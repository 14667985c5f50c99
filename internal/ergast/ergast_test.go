// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package ergast

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/f1ctlgo/internal/cacheutil"
	"github.com/staranto/f1ctlgo/internal/fault"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return b
}

func TestParseSeason(t *testing.T) {
	season, err := ParseSeason(readFixture(t, "season_2023.json"))
	require.NoError(t, err)

	assert.Equal(t, "2023", season.Year)
	require.Len(t, season.Races, 3)

	ids := []string{}
	for _, r := range season.Races {
		ids = append(ids, r.Circuit.CircuitID)
	}
	assert.Equal(t, []string{"bahrain", "jeddah", "baku"}, ids, "payload order is kept")

	bahrain := season.Races[0]
	assert.Equal(t, "1", bahrain.Round)
	assert.Equal(t, "Bahrain Grand Prix", bahrain.RaceName)
	assert.Equal(t, "26.0325", bahrain.Circuit.Location.Lat)
	assert.Equal(t, "50.5106", bahrain.Circuit.Location.Long)
	assert.Equal(t, SessionSchedule{Date: "2023-03-05", Time: "15:00:00Z"}, bahrain.RaceSession())
	require.NotNil(t, bahrain.FirstPractice)
	require.NotNil(t, bahrain.ThirdPractice)
	assert.Nil(t, bahrain.Sprint)
	assert.Nil(t, bahrain.SprintQualifying)
	assert.False(t, bahrain.IsSprintWeekend())

	baku := season.Races[2]
	assert.Equal(t, "4", baku.Round, "round stays text, gaps included")
	assert.Nil(t, baku.ThirdPractice)
	require.NotNil(t, baku.Sprint)
	assert.Equal(t, "13:30:00Z", baku.Sprint.Time)
	require.NotNil(t, baku.SprintQualifying, "SprintShootout maps to SprintQualifying")
	assert.Equal(t, "08:30:00Z", baku.SprintQualifying.Time)
	assert.True(t, baku.IsSprintWeekend())
}

func TestParseSeason_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		mention string
	}{
		{"not json", `{"MRData":`, ""},
		{"no envelope", `{}`, "MRData"},
		{"no race table", `{"MRData":{"series":"f1"}}`, "RaceTable"},
		{"no races list", `{"MRData":{"RaceTable":{"season":"2023"}}}`, "Races"},
		{
			"race without circuit",
			`{"MRData":{"RaceTable":{"Races":[{"season":"2023","round":"1","raceName":"X","date":"2023-01-01","time":"10:00:00Z",
			"FirstPractice":{"date":"a","time":"b"},"SecondPractice":{"date":"a","time":"b"},"Qualifying":{"date":"a","time":"b"}}]}}}`,
			"circuitId",
		},
		{
			"race without qualifying",
			`{"MRData":{"RaceTable":{"Races":[{"season":"2023","round":"1","raceName":"X","date":"2023-01-01","time":"10:00:00Z",
			"Circuit":{"circuitId":"x","url":"u","circuitName":"n","Location":{"lat":"1","long":"2","locality":"l","country":"c"}},
			"FirstPractice":{"date":"a","time":"b"},"SecondPractice":{"date":"a","time":"b"}}]}}}`,
			"Qualifying",
		},
		{
			"race without time",
			`{"MRData":{"RaceTable":{"Races":[{"season":"2023","round":"1","raceName":"X","date":"2023-01-01",
			"Circuit":{"circuitId":"x","url":"u","circuitName":"n","Location":{"lat":"1","long":"2","locality":"l","country":"c"}},
			"FirstPractice":{"date":"a","time":"b"},"SecondPractice":{"date":"a","time":"b"},"Qualifying":{"date":"a","time":"b"}}]}}}`,
			"Races[0].time",
		},
		{
			"sprint without time",
			`{"MRData":{"RaceTable":{"Races":[{"season":"2023","round":"1","raceName":"X","date":"2023-01-01","time":"10:00:00Z",
			"Circuit":{"circuitId":"x","url":"u","circuitName":"n","Location":{"lat":"1","long":"2","locality":"l","country":"c"}},
			"FirstPractice":{"date":"a","time":"b"},"SecondPractice":{"date":"a","time":"b"},"Qualifying":{"date":"a","time":"b"},
			"Sprint":{"date":"a"}}]}}}`,
			"Sprint.time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			season, err := ParseSeason([]byte(tt.payload))
			require.Error(t, err)
			assert.True(t, errors.Is(err, fault.MalformedResponse))
			assert.Empty(t, season.Races, "no partial season")
			if tt.mention != "" {
				assert.Contains(t, err.Error(), tt.mention)
			}
		})
	}
}

func TestParseSeason_ExtraFieldsIgnored(t *testing.T) {
	payload := `{"MRData":{"extra":1,"RaceTable":{"season":"2024","Races":[],"more":true}},"other":"x"}`
	season, err := ParseSeason([]byte(payload))
	require.NoError(t, err)
	assert.Equal(t, "2024", season.Year)
	assert.Empty(t, season.Races)
}

func TestParseCircuits(t *testing.T) {
	circuits, err := ParseCircuits(readFixture(t, "circuits_2023.json"))
	require.NoError(t, err)
	require.Len(t, circuits, 2)
	assert.Equal(t, "monza", circuits[1].CircuitID)
	assert.Equal(t, "Autodromo Nazionale di Monza", circuits[1].CircuitName)
	assert.Equal(t, "9.28111", circuits[1].Location.Long)
	assert.Equal(t, "Italy", circuits[1].Location.Country)
}

func TestParseCircuits_Malformed(t *testing.T) {
	for _, payload := range []string{
		`[]`,
		`{"MRData":{}}`,
		`{"MRData":{"CircuitTable":{}}}`,
		`{"MRData":{"CircuitTable":{"Circuits":[{"circuitId":"x"}]}}}`,
	} {
		_, err := ParseCircuits([]byte(payload))
		assert.True(t, errors.Is(err, fault.MalformedResponse), payload)
	}
}

func TestSessionScheduleStart(t *testing.T) {
	got, err := SessionSchedule{Date: "2023-03-05", Time: "15:00:00Z"}.Start()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 3, 5, 15, 0, 0, 0, time.UTC), got.UTC())

	got, err = SessionSchedule{Date: "2023-03-05", Time: "15:00:00"}.Start()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 3, 5, 15, 0, 0, 0, time.UTC), got)

	_, err = SessionSchedule{Date: "TBC", Time: ""}.Start()
	assert.Error(t, err)
}

func TestEndpoints(t *testing.T) {
	assert.Equal(t, "http://x/f1/2023.json?limit=1000", SeasonURL("http://x/f1/", 2023))
	assert.Equal(t, "http://x/f1/circuits.json?limit=1000", CircuitsURL("http://x/f1", 0))
	assert.Equal(t, "http://x/f1/2023/circuits.json?limit=1000", CircuitsURL("http://x/f1", 2023))

	assert.Equal(t, "2023.json", SeasonKey(2023).String())
	assert.Equal(t, "circuits.json", CircuitsKey(0).String())
	assert.Equal(t, "2023/circuits.json", CircuitsKey(2023).String())
}

type stubGetter struct {
	docs map[string][]byte
	urls []string
}

func (s *stubGetter) FetchOrCache(_ context.Context, url string, key cacheutil.Key) ([]byte, error) {
	s.urls = append(s.urls, url)
	b, ok := s.docs[key.String()]
	if !ok {
		return nil, fault.New(fault.KindNetwork, "fetch", url, errors.New("no route"))
	}
	return b, nil
}

func TestSource(t *testing.T) {
	g := &stubGetter{docs: map[string][]byte{
		"2023.json":          readFixture(t, "season_2023.json"),
		"2023/circuits.json": readFixture(t, "circuits_2023.json"),
		"2024.json":          []byte(`{"MRData":{}}`),
	}}
	src := NewSource(g, "http://api.test/f1")

	season, err := src.Season(context.Background(), 2023)
	require.NoError(t, err)
	assert.Len(t, season.Races, 3)

	circuits, err := src.Circuits(context.Background(), 2023)
	require.NoError(t, err)
	assert.Len(t, circuits, 2)

	_, err = src.Season(context.Background(), 2024)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fault.MalformedResponse))
	assert.Contains(t, err.Error(), "http://api.test/f1/2024.json")

	_, err = src.Circuits(context.Background(), 0)
	assert.True(t, errors.Is(err, fault.NetworkError))

	assert.Equal(t, "http://api.test/f1/2023.json?limit=1000", g.urls[0])
}

func TestNewSource_DefaultBase(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, NewSource(&stubGetter{}, "").BaseURL)
}
