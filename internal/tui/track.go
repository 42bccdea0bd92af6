package tui

import (
	"context"
	"fmt"
	"time"

	"fitlog/internal/geo"
	"fitlog/internal/service"
	"fitlog/internal/store"
	"fitlog/internal/tracker"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

type trackPhase int

const (
	trackPick trackPhase = iota
	trackLive
	trackDone
)

// trackableTypes lists the activity types offered by the picker, in display
// order.
var trackableTypes = []store.ActivityType{
	store.ActivityRunning,
	store.ActivityWalking,
	store.ActivityCycling,
	store.ActivityHiking,
	store.ActivityIndoorRun,
	store.ActivityIndoorWalk,
}

// TrackModel is the live cardio tracking screen. While a session is live it
// re-renders on a one second tick; the tracker itself is fed by the service's
// dispatch loop, not by this screen.
type TrackModel struct {
	activity *service.ActivityService
	units    Units

	phase          trackPhase
	cursor         int
	confirmDiscard bool
	saved          *store.Activity
	err            error
}

// NewTrackModel creates the tracking screen, reattaching to a live session if
// one exists.
func NewTrackModel(svc *service.ActivityService, units Units) TrackModel {
	m := TrackModel{activity: svc, units: units}
	if _, ok := svc.Snapshot(); ok {
		m.phase = trackLive
	}
	return m
}

// Init initializes the tracking screen
func (m TrackModel) Init() tea.Cmd {
	if m.phase == trackLive {
		return trackTick()
	}
	return nil
}

type trackTickMsg time.Time

func trackTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return trackTickMsg(t)
	})
}

type trackStartedMsg struct{ err error }

type trackDoneMsg struct {
	activity *store.Activity
	err      error
}

// Update handles messages
func (m TrackModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case trackTickMsg:
		if m.phase == trackLive {
			return m, trackTick()
		}
		return m, nil

	case trackStartedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.phase = trackLive
		return m, trackTick()

	case trackDoneMsg:
		m.err = msg.err
		if msg.err == nil {
			m.saved = msg.activity
			m.phase = trackDone
		}
		return m, nil

	case tea.KeyMsg:
		switch m.phase {
		case trackPick:
			return m.updatePick(msg)
		case trackLive:
			return m.updateLive(msg)
		case trackDone:
			if msg.String() == "enter" {
				m.phase = trackPick
				m.saved = nil
				m.cursor = 0
			}
		}
	}
	return m, nil
}

func (m TrackModel) updatePick(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(trackableTypes)-1 {
			m.cursor++
		}
	case "enter":
		activityType := trackableTypes[m.cursor]
		return m, func() tea.Msg {
			return trackStartedMsg{err: m.activity.Start(context.Background(), activityType)}
		}
	}
	return m, nil
}

func (m TrackModel) updateLive(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if m.confirmDiscard && key != "x" {
		m.confirmDiscard = false
	}

	switch key {
	case " ", "p":
		if m.activity.State() == tracker.StatePaused {
			m.activity.Resume()
		} else {
			m.activity.Pause()
		}
	case "enter", "f":
		return m, func() tea.Msg {
			activity, err := m.activity.Complete()
			return trackDoneMsg{activity: activity, err: err}
		}
	case "x":
		if !m.confirmDiscard {
			m.confirmDiscard = true
			return m, nil
		}
		m.activity.Cancel()
		m.confirmDiscard = false
		m.phase = trackPick
		m.cursor = 0
	}
	return m, nil
}

// View renders the tracking screen
func (m TrackModel) View() string {
	switch m.phase {
	case trackLive:
		return m.viewLive()
	case trackDone:
		return m.viewDone()
	}
	return m.viewPick()
}

func (m TrackModel) viewPick() string {
	var sections []string
	sections = append(sections, cardTitleStyle.Render("Start an Activity"))

	for i, t := range trackableTypes {
		label := t.Label()
		if t.Indoor() {
			label += "  (steps, no GPS)"
		}
		row := "  " + label
		if i == m.cursor {
			row = "> " + label
			sections = append(sections, tableSelectedStyle.Render(row))
		} else {
			sections = append(sections, tableRowStyle.Render(row))
		}
	}

	if m.err != nil {
		sections = append(sections, errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err)))
	}

	sections = append(sections, statusStyle.Render("\n  j/k: choose  enter: start"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m TrackModel) viewLive() string {
	snap, ok := m.activity.Snapshot()
	if !ok {
		return "\n  No active session."
	}

	title := snap.ActivityType.Label()
	if m.activity.State() == tracker.StatePaused {
		title += "  " + warningStyle.Render("PAUSED")
	}

	elapsed := snap.ElapsedActive(time.Now())
	lines := []string{
		RenderMetric("Time", FormatDuration(elapsed), ""),
		RenderMetric("Distance", m.units.FormatDistance(snap.DistanceMeters), ""),
		RenderMetric("Pace", m.units.FormatPaceWithUnit(elapsed.Milliseconds(), snap.DistanceMeters), ""),
		RenderMetric("Speed", m.units.FormatSpeed(snap.CurrentSpeedMetersPerSec*3.6), ""),
		RenderMetric("Steps", humanize.Comma(int64(snap.Steps)), ""),
	}
	if snap.ActivityType.Indoor() {
		lines = append(lines, "", statusStyle.Render("Indoor mode: distance estimated from steps"))
	} else {
		lines = append(lines, RenderMetric("GPS points", fmt.Sprintf("%d", len(snap.Route)), ""))
		if n := len(snap.Route); n >= 2 {
			prev, last := snap.Route[n-2], snap.Route[n-1]
			deg := geo.Bearing(prev.Latitude, prev.Longitude, last.Latitude, last.Longitude)
			lines = append(lines, RenderMetric("Heading", compassLabel(deg), ""))
		}
	}

	card := cardStyle.Width(44).Render(lipgloss.JoinVertical(lipgloss.Left,
		cardTitleStyle.Render(title),
		lipgloss.JoinVertical(lipgloss.Left, lines...),
	))

	footer := statusStyle.Render("  space: pause/resume  enter: finish  x: discard")
	if m.confirmDiscard {
		footer = warningStyle.Render("  Press 'x' again to discard this session")
	}
	if m.err != nil {
		footer = errorStyle.Render(fmt.Sprintf("  Error: %v", m.err))
	}

	return lipgloss.JoinVertical(lipgloss.Left, card, footer)
}

// compassLabel turns a bearing in degrees into a compass point.
func compassLabel(deg float64) string {
	points := []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}
	idx := int((deg+22.5)/45) % 8
	return fmt.Sprintf("%s (%.0f deg)", points[idx], deg)
}

func (m TrackModel) viewDone() string {
	a := m.saved
	lines := []string{
		RenderMetric("Distance", m.units.FormatDistance(a.DistanceMeters), ""),
		RenderMetric("Active time", FormatDuration(time.Duration(a.DurationMs)*time.Millisecond), ""),
		RenderMetric("Paused", FormatDuration(time.Duration(a.PausedDurationMs)*time.Millisecond), ""),
		RenderMetric("Avg pace", m.units.FormatPaceWithUnit(a.DurationMs, a.DistanceMeters), ""),
		RenderMetric("Avg speed", m.units.FormatSpeed(a.AverageSpeedKmh), ""),
		RenderMetric("Steps", humanize.Comma(int64(a.Steps)), ""),
	}

	card := cardStyle.Width(44).Render(lipgloss.JoinVertical(lipgloss.Left,
		cardTitleStyle.Render(a.Type.Label()+" saved"),
		successStyle.Render("Nice work!"),
		"",
		lipgloss.JoinVertical(lipgloss.Left, lines...),
	))

	return lipgloss.JoinVertical(lipgloss.Left, card, statusStyle.Render("  enter: track another  1: dashboard"))
}
