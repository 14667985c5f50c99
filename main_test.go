// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/f1ctlgo/internal/config"
)

const setsYAML = `
sq:
  defaults:
    - --tz UTC
  compact:
    - -a round,name
    - --chop
`

func loadSets(t *testing.T) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "f1ctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(setsYAML), 0o600))
	t.Setenv("F1CTL_CFG", path)
	_, err := config.Load("sq")
	require.NoError(t, err)
	t.Cleanup(func() { config.Config = config.Type{} })
}

func TestMangleArguments(t *testing.T) {
	loadSets(t)

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "defaults",
			in:   []string{"f1ctl", "sq", "--year", "2023"},
			want: []string{"f1ctl", "sq", "--tz", "UTC", "--year", "2023"},
		},
		{
			name: "named set",
			in:   []string{"f1ctl", "sq", "@compact", "-o", "json"},
			want: []string{"f1ctl", "sq", "-a", "round,name", "--chop", "-o", "json"},
		},
		{
			name: "unknown set",
			in:   []string{"f1ctl", "sq", "@nope", "-o", "json"},
			want: []string{"f1ctl", "sq", "-o", "json"},
		},
		{
			name: "help",
			in:   []string{"f1ctl", "sq", "@compact", "-h"},
			want: []string{"f1ctl", "sq", "--help"},
		},
		{
			name: "no sets for command",
			in:   []string{"f1ctl", "wq", "bahrain"},
			want: []string{"f1ctl", "wq", "bahrain"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mangleArguments(tt.in))
		})
	}
}

// isolateMain points config, cache and API at test-local resources.
func isolateMain(t *testing.T, api string) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("F1CTL_CFG", "")
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("APPDATA", "")
	t.Setenv("HOME", home)
	t.Setenv("F1CTL_CACHE_DIR", t.TempDir())
	t.Setenv("F1CTL_API", api)
	t.Cleanup(func() { config.Config = config.Type{} })
}

func newScheduleServer(t *testing.T) *httptest.Server {
	t.Helper()
	season, err := os.ReadFile(filepath.Join("internal", "ergast", "testdata", "season_2023.json"))
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/f1/2023.json":
			_, _ = w.Write(season)
		case "/f1/2024.json":
			http.Error(w, "maintenance", http.StatusServiceUnavailable)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRealMain_ExitCodes(t *testing.T) {
	srv := newScheduleServer(t)

	tests := []struct {
		name   string
		args   []string
		code   int
		stdout string
		stderr string
	}{
		{
			name:   "weekend found",
			args:   []string{"wq", "--year", "2023", "-o", "json", "bahrain"},
			code:   exitOK,
			stdout: `"session":"Race"`,
		},
		{
			name:   "unknown circuit",
			args:   []string{"wq", "--year", "2023", "-o", "json", "nonexistent"},
			code:   exitNotFound,
			stderr: `no race found for circuit "nonexistent"`,
		},
		{
			name:   "circuit ids are case sensitive",
			args:   []string{"wq", "--year", "2023", "Bahrain"},
			code:   exitNotFound,
			stderr: `no race found for circuit "Bahrain"`,
		},
		{
			name:   "api unavailable",
			args:   []string{"wq", "--year", "2024", "bahrain"},
			code:   exitFailure,
			stderr: "status 503",
		},
		{
			name:   "invalid flag",
			args:   []string{"sq", "--year", "1990"},
			code:   exitFailure,
			stderr: "must be between",
		},
		{
			name:   "version",
			args:   []string{"--version"},
			code:   exitOK,
			stdout: "dev",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateMain(t, srv.URL+"/f1")

			var stdout, stderr bytes.Buffer
			code := realMain(append([]string{"f1ctl"}, tt.args...), &stdout, &stderr)

			assert.Equal(t, tt.code, code, "stderr: %s", stderr.String())
			assert.Contains(t, stdout.String(), tt.stdout)
			assert.Contains(t, stderr.String(), tt.stderr)
		})
	}
}

func TestRealMain_InitFailure(t *testing.T) {
	isolateMain(t, "http://127.0.0.1:1/f1")
	path := filepath.Join(t.TempDir(), "f1ctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sq: [unterminated\n"), 0o600))
	t.Setenv("F1CTL_CFG", path)

	var stdout, stderr bytes.Buffer
	assert.Equal(t, exitInit, realMain([]string{"f1ctl", "sq"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "failed to parse config")
}

func TestRealMain_CacheDirFailure(t *testing.T) {
	isolateMain(t, "http://127.0.0.1:1/f1")
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))
	t.Setenv("F1CTL_CACHE_DIR", filepath.Join(blocker, "cache"))

	var stdout, stderr bytes.Buffer
	assert.Equal(t, exitOK, realMain([]string{"f1ctl", "cache", "--path"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "cache failure at")
	assert.Contains(t, stdout.String(), blocker)
}
