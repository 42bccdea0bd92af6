package tui

import (
	"fmt"

	"fitlog/internal/analysis"
	"fitlog/internal/service"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// RecordsModel is the personal bests screen.
type RecordsModel struct {
	queryService *service.QueryService

	records  []analysis.PersonalBest
	viewport viewport.Model
	loading  bool
	err      error
	ready    bool
}

// NewRecordsModel creates a new records model
func NewRecordsModel(qs *service.QueryService, width, height int) RecordsModel {
	m := RecordsModel{
		queryService: qs,
		loading:      true,
	}
	if width > 0 && height > 0 {
		m.viewport = viewport.New(width, height-6)
		m.ready = true
	}
	return m
}

// Init initializes the records screen
func (m RecordsModel) Init() tea.Cmd {
	return m.loadRecords
}

type recordsLoadedMsg struct {
	records []analysis.PersonalBest
	err     error
}

func (m RecordsModel) loadRecords() tea.Msg {
	records, err := m.queryService.Records()
	return recordsLoadedMsg{records: records, err: err}
}

// Update handles messages
func (m RecordsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case recordsLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.records = msg.records
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
			return m, m.loadRecords
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the records screen
func (m RecordsModel) View() string {
	if m.loading {
		return "\n  Loading personal records..."
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

func (m RecordsModel) renderContent() string {
	var sections []string
	sections = append(sections, cardTitleStyle.Render("Personal Bests"))

	if len(m.records) == 0 {
		sections = append(sections, "  No records yet. Finish a workout with weighted sets to set one.")
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	header := tableHeaderStyle.Render(fmt.Sprintf("%3s  %-28s  %8s  %5s  %9s  %-14s",
		"#", "Exercise", "Weight", "Reps", "Volume", "When"))
	sections = append(sections, header)

	for i, pb := range m.records {
		sections = append(sections, tableRowStyle.Render(fmt.Sprintf("%3d  %-28s  %6.1fkg  %5d  %9.0f  %-14s",
			i+1,
			truncateName(pb.Exercise, 28),
			pb.Weight,
			pb.Reps,
			pb.Volume,
			humanize.Time(pb.Date),
		)))
	}

	sections = append(sections, "")
	sections = append(sections, statusStyle.Render("  Volume = weight x reps for the single best set of each exercise."))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
