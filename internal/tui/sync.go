package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fitlog/internal/backend"
	"fitlog/internal/service"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// SyncModel is the backend sync screen. Sync is push-only: the device is the
// source of truth and the backend is a mirror.
type SyncModel struct {
	syncService *service.SyncService
	client      *backend.Client

	pendingActivities int
	pendingWorkouts   int
	lastSync          time.Time
	syncing           bool
	result            *service.SyncResult
	err               error
	done              bool
}

// NewSyncModel creates a new sync model. Both arguments may be nil when no
// backend is configured.
func NewSyncModel(ss *service.SyncService, client *backend.Client) SyncModel {
	return SyncModel{
		syncService: ss,
		client:      client,
	}
}

// Init initializes the sync screen
func (m SyncModel) Init() tea.Cmd {
	if m.syncService == nil {
		return nil
	}
	return m.loadPending
}

type pendingLoadedMsg struct {
	activities int
	workouts   int
	lastSync   time.Time
	err        error
}

func (m SyncModel) loadPending() tea.Msg {
	a, w, err := m.syncService.PendingCounts()
	if err != nil {
		return pendingLoadedMsg{err: err}
	}
	last, err := m.syncService.LastSync()
	return pendingLoadedMsg{activities: a, workouts: w, lastSync: last, err: err}
}

// SyncDoneMsg is sent when a sync pass finishes
type SyncDoneMsg struct {
	Result *service.SyncResult
	Err    error
}

// Update handles messages
func (m SyncModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pendingLoadedMsg:
		m.pendingActivities = msg.activities
		m.pendingWorkouts = msg.workouts
		m.lastSync = msg.lastSync
		if msg.err != nil {
			m.err = msg.err
		}

	case SyncDoneMsg:
		m.syncing = false
		m.done = true
		m.result = msg.Result
		m.err = msg.Err
		return m, tea.Batch(m.loadPending, func() tea.Msg { return SyncCompleteMsg{} })

	case tea.KeyMsg:
		if m.syncService == nil || m.syncing {
			return m, nil
		}
		switch msg.String() {
		case "enter", "s":
			m.syncing = true
			m.done = false
			m.err = nil
			m.result = nil
			return m, m.runSync
		}
	}
	return m, nil
}

func (m SyncModel) runSync() tea.Msg {
	result, err := m.syncService.Push(context.Background())
	return SyncDoneMsg{Result: result, Err: err}
}

// View renders the sync screen
func (m SyncModel) View() string {
	var sections []string

	title := cardTitleStyle.Render("Backend Sync")
	sections = append(sections, title)

	if m.syncService == nil {
		sections = append(sections, "\n  No sync backend configured.")
		sections = append(sections, statusStyle.Render("  Add backend credentials to the config file to enable sync."))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	if m.err != nil {
		sections = append(sections, errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err)))
		sections = append(sections, "\n"+statusStyle.Render("  Press 's' or Enter to retry"))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	if m.done {
		sections = append(sections, successStyle.Render("\n  Sync complete!"))
		sections = append(sections, m.renderSummary())
		sections = append(sections, "\n"+statusStyle.Render("  Press '1' to go to dashboard"))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	if m.syncing {
		sections = append(sections, "\n  Pushing records to the backend...")
	} else {
		sections = append(sections, m.renderStartPrompt())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m SyncModel) renderStartPrompt() string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("  %d activities and %d workouts waiting to upload.",
		m.pendingActivities, m.pendingWorkouts))
	if !m.lastSync.IsZero() {
		lines = append(lines, statusStyle.Render("  Last synced "+humanize.Time(m.lastSync)))
	}
	lines = append(lines, "")

	if m.client != nil {
		short, daily := m.client.RateLimitStatus()
		lines = append(lines, statusStyle.Render(fmt.Sprintf("  API budget: %d (15min), %d (daily) requests left", short, daily)))
	}
	lines = append(lines, "")
	lines = append(lines, statusStyle.Render("  Press 's' or Enter to push"))

	return strings.Join(lines, "\n")
}

func (m SyncModel) renderSummary() string {
	if m.result == nil {
		return ""
	}

	r := m.result
	var lines []string
	lines = append(lines, "")

	if r.ActivitiesPushed > 0 {
		lines = append(lines, successStyle.Render(fmt.Sprintf("  %d activities pushed", r.ActivitiesPushed)))
	}
	if r.WorkoutsPushed > 0 {
		lines = append(lines, successStyle.Render(fmt.Sprintf("  %d workouts pushed", r.WorkoutsPushed)))
	}
	if r.ActivitiesPushed == 0 && r.WorkoutsPushed == 0 {
		lines = append(lines, statusStyle.Render("  Nothing to push"))
	}

	if len(r.Errors) > 0 {
		lines = append(lines, "")
		lines = append(lines, warningStyle.Render(fmt.Sprintf("  %d records failed and will retry next pass", len(r.Errors))))
	}

	return strings.Join(lines, "\n")
}
