package tui

import (
	"fmt"
	"time"

	"fitlog/internal/service"
	"fitlog/internal/store"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

const historyPageSize = 30

// HistoryModel is the training history screen: recent cardio activities and
// strength workouts in one scrollable log.
type HistoryModel struct {
	queryService *service.QueryService
	units        Units

	activities []store.Activity
	workouts   []store.Workout
	viewport   viewport.Model
	loading    bool
	err        error
	ready      bool
}

// NewHistoryModel creates a new history model
func NewHistoryModel(qs *service.QueryService, units Units, width, height int) HistoryModel {
	m := HistoryModel{
		queryService: qs,
		units:        units,
		loading:      true,
	}
	if width > 0 && height > 0 {
		m.viewport = viewport.New(width, height-6)
		m.ready = true
	}
	return m
}

// Init initializes the history screen
func (m HistoryModel) Init() tea.Cmd {
	return m.loadHistory
}

type historyLoadedMsg struct {
	activities []store.Activity
	workouts   []store.Workout
	err        error
}

func (m HistoryModel) loadHistory() tea.Msg {
	activities, err := m.queryService.Activities(historyPageSize)
	if err != nil {
		return historyLoadedMsg{err: err}
	}
	workouts, err := m.queryService.WorkoutHistory(historyPageSize)
	if err != nil {
		return historyLoadedMsg{err: err}
	}
	return historyLoadedMsg{activities: activities, workouts: workouts}
}

// Update handles messages
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.activities = msg.activities
		m.workouts = msg.workouts
		if m.ready {
			m.viewport.SetContent(m.renderContent())
		}

	case tea.WindowSizeMsg:
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-6)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 6
		}
		if !m.loading {
			m.viewport.SetContent(m.renderContent())
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.loadHistory
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the history screen
func (m HistoryModel) View() string {
	if m.loading {
		return "\n  Loading history..."
	}
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}
	if !m.ready {
		return "\n  Initializing..."
	}

	footer := statusStyle.Render("  j/k or arrows: scroll  r: refresh")
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), footer)
}

func (m HistoryModel) renderContent() string {
	var sections []string

	sections = append(sections, cardTitleStyle.Render("Cardio Activities"))
	if len(m.activities) == 0 {
		sections = append(sections, "  No activities yet.")
	} else {
		header := tableHeaderStyle.Render(fmt.Sprintf("%-14s  %-12s  %9s  %8s  %8s  %7s",
			"When", "Type", "Distance", "Time", "Pace", "Steps"))
		sections = append(sections, header)
		for _, a := range m.activities {
			sections = append(sections, tableRowStyle.Render(fmt.Sprintf("%-14s  %-12s  %9s  %8s  %8s  %7d",
				humanize.Time(a.StartedAt),
				a.Type.Label(),
				m.units.FormatDistance(a.DistanceMeters),
				FormatDuration(time.Duration(a.DurationMs)*time.Millisecond),
				m.units.FormatPace(a.DurationMs, a.DistanceMeters),
				a.Steps,
			)))
		}
	}

	sections = append(sections, "")
	sections = append(sections, cardTitleStyle.Render("Workouts"))
	if len(m.workouts) == 0 {
		sections = append(sections, "  No workouts yet.")
	} else {
		header := tableHeaderStyle.Render(fmt.Sprintf("%-14s  %-24s  %5s  %5s  %8s",
			"When", "Routine", "Sets", "Reps", "Time"))
		sections = append(sections, header)
		for _, w := range m.workouts {
			sections = append(sections, tableRowStyle.Render(fmt.Sprintf("%-14s  %-24s  %5d  %5d  %8s",
				humanize.Time(w.CompletedAt),
				truncateName(w.RoutineName, 24),
				w.TotalSets,
				w.TotalReps,
				FormatDuration(w.CompletedAt.Sub(w.StartedAt)),
			)))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
