// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/staranto/f1ctlgo/internal/attrs"
	"github.com/staranto/f1ctlgo/internal/ergast"
	"github.com/staranto/f1ctlgo/internal/schedule"
)

// now is swapped in tests.
var now = time.Now

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e10600"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	baseStyle  = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
)

// Model browses the rounds of a season. Enter opens the weekend of the
// selected round, esc goes back and q quits.
type Model struct {
	season   ergast.Season
	loc      *time.Location
	races    table.Model
	sessions table.Model
	detail   bool
	selected int
}

// New returns a Model over season with times shown in loc. The cursor starts
// on the next round still to be raced.
func New(season ergast.Season, loc *time.Location) Model {
	if loc == nil {
		loc = time.Local
	}

	m := Model{
		season: season,
		loc:    loc,
		races: newTable([]table.Column{
			{Title: "Rnd", Width: 4},
			{Title: "Grand Prix", Width: 28},
			{Title: "Circuit", Width: 16},
			{Title: "Country", Width: 14},
			{Title: "Race", Width: 22},
			{Title: "", Width: 2},
		}, true),
		sessions: newTable([]table.Column{
			{Title: "Session", Width: 18},
			{Title: "Start", Width: 22},
			{Title: "When", Width: 20},
		}, false),
	}

	rows := make([]table.Row, 0, len(season.Races))
	next := -1
	for i, race := range season.Races {
		start, err := race.RaceSession().Start()
		if err == nil && next < 0 && start.After(now()) {
			next = i
		}
		sprint := ""
		if race.IsSprintWeekend() {
			sprint = "S"
		}
		rows = append(rows, table.Row{
			race.Round,
			race.RaceName,
			race.Circuit.CircuitID,
			race.Circuit.Location.Country,
			m.format(race.RaceSession()),
			sprint,
		})
	}
	m.races.SetRows(rows)
	if next >= 0 {
		m.races.SetCursor(next)
	}

	return m
}

func newTable(columns []table.Column, focused bool) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(focused),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("#e10600")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m Model) format(s ergast.SessionSchedule) string {
	t, err := s.Start()
	if err != nil {
		return s.Date
	}
	return t.In(m.loc).Format(attrs.LongTimeLayout)
}

func (m Model) relative(s ergast.SessionSchedule) string {
	t, err := s.Start()
	if err != nil {
		return ""
	}
	return humanize.RelTime(t, now(), "ago", "from now")
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h := msg.Height - 6
		if h < 3 {
			h = 3
		}
		m.races.SetHeight(h)
		m.sessions.SetHeight(h)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			if !m.detail && len(m.season.Races) > 0 {
				m.openWeekend(m.races.Cursor())
				return m, nil
			}
		case "esc", "backspace":
			if m.detail {
				m.detail = false
				m.sessions.Blur()
				m.races.Focus()
				return m, nil
			}
		}
	}

	if m.detail {
		m.sessions, cmd = m.sessions.Update(msg)
	} else {
		m.races, cmd = m.races.Update(msg)
	}
	return m, cmd
}

func (m *Model) openWeekend(i int) {
	m.selected = i
	m.detail = true

	ws := schedule.FromRace(m.season.Races[i])
	sessions := ws.Sessions()
	rows := make([]table.Row, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, table.Row{s.Name, m.format(s.Schedule), m.relative(s.Schedule)})
	}
	m.sessions.SetRows(rows)
	m.sessions.SetCursor(0)
	m.races.Blur()
	m.sessions.Focus()
}

// Detail reports whether a weekend is open.
func (m Model) Detail() bool { return m.detail }

// View implements tea.Model.
func (m Model) View() string {
	var title, body, help string
	if m.detail {
		race := m.season.Races[m.selected]
		title = fmt.Sprintf("Round %s  %s  %s, %s",
			race.Round, race.RaceName, race.Circuit.Location.Locality, race.Circuit.Location.Country)
		body = m.sessions.View()
		help = "esc back • q quit"
	} else {
		title = fmt.Sprintf("%s season  (%s)", m.season.Year, m.loc)
		body = m.races.View()
		help = "↑/↓ move • enter weekend • q quit"
	}

	return titleStyle.Render(title) + "\n" +
		baseStyle.Render(body) + "\n" +
		helpStyle.Render(help) + "\n"
}

// Run starts the browser and blocks until the user quits or ctx ends.
func Run(ctx context.Context, season ergast.Season, loc *time.Location) error {
	p := tea.NewProgram(New(season, loc), tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
