package tui

import (
	"fmt"

	"fitlog/internal/service"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const trendsTopLimit = 5

// TrendsModel is the strength trends screen: per-exercise max weight compared
// between the two most recent periods, plus the most trained exercises.
type TrendsModel struct {
	queryService *service.QueryService

	data    *service.Trends
	loading bool
	err     error
}

// NewTrendsModel creates a new trends model
func NewTrendsModel(qs *service.QueryService) TrendsModel {
	return TrendsModel{
		queryService: qs,
		loading:      true,
	}
}

// Init initializes the trends screen
func (m TrendsModel) Init() tea.Cmd {
	return m.loadTrends
}

type trendsLoadedMsg struct {
	data *service.Trends
	err  error
}

func (m TrendsModel) loadTrends() tea.Msg {
	data, err := m.queryService.Trends(0, trendsTopLimit)
	return trendsLoadedMsg{data: data, err: err}
}

// Update handles messages
func (m TrendsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case trendsLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.data = msg.data

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.loadTrends
		}
	}
	return m, nil
}

// View renders the trends screen
func (m TrendsModel) View() string {
	if m.loading {
		return "\n  Loading strength trends..."
	}
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	var sections []string
	sections = append(sections, m.renderProgress())
	sections = append(sections, m.renderTop())
	sections = append(sections, statusStyle.Render("  r: refresh"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m TrendsModel) renderProgress() string {
	title := cardTitleStyle.Render(fmt.Sprintf("Strength Progress - Last %d Days vs Before", m.data.PeriodDays))

	if len(m.data.Progress) == 0 {
		return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title,
			"No weighted sets in the current period yet."))
	}

	var rows []string
	rows = append(rows, tableHeaderStyle.Render(fmt.Sprintf("%-28s  %9s  %9s  %8s  %7s",
		"Exercise", "Previous", "Current", "Change", "%")))

	for _, p := range m.data.Progress {
		prev := "-"
		if p.PreviousMax > 0 {
			prev = fmt.Sprintf("%.1f kg", p.PreviousMax)
		}
		change := fmt.Sprintf("%+.1f", p.Change)
		percent := "-"
		if p.PreviousMax > 0 {
			percent = fmt.Sprintf("%+.1f%%", p.ChangePercent)
		}
		rows = append(rows, tableRowStyle.Render(fmt.Sprintf("%-28s  %9s  %7.1f kg  %8s  %7s  %s",
			truncateName(p.Exercise, 28),
			prev,
			p.CurrentMax,
			change,
			percent,
			RenderTrendArrow(p.Trend),
		)))
	}

	table := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, table))
}

func (m TrendsModel) renderTop() string {
	title := cardTitleStyle.Render("Most Trained Exercises")

	if len(m.data.Top) == 0 {
		return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, "No workouts yet."))
	}

	maxCount := m.data.Top[0].Count

	var rows []string
	for _, t := range m.data.Top {
		share := 0.0
		if maxCount > 0 {
			share = float64(t.Count) / float64(maxCount)
		}
		rows = append(rows, tableRowStyle.Render(fmt.Sprintf("%-28s  %s  x%d",
			truncateName(t.Exercise, 28),
			RenderProgressBar(share, 16),
			t.Count,
		)))
	}

	table := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, table))
}
