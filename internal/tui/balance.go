package tui

import (
	"fmt"
	"strings"

	"fitlog/internal/analysis"
	"fitlog/internal/service"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// BalanceModel is the muscle-group balance screen.
type BalanceModel struct {
	queryService *service.QueryService

	data    *service.Balance
	loading bool
	err     error
}

// NewBalanceModel creates a new balance model
func NewBalanceModel(qs *service.QueryService) BalanceModel {
	return BalanceModel{
		queryService: qs,
		loading:      true,
	}
}

// Init initializes the balance screen
func (m BalanceModel) Init() tea.Cmd {
	return m.loadBalance
}

type balanceLoadedMsg struct {
	data *service.Balance
	err  error
}

func (m BalanceModel) loadBalance() tea.Msg {
	data, err := m.queryService.Balance()
	return balanceLoadedMsg{data: data, err: err}
}

// Update handles messages
func (m BalanceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case balanceLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.data = msg.data

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.loadBalance
		}
	}
	return m, nil
}

// View renders the balance screen
func (m BalanceModel) View() string {
	if m.loading {
		return "\n  Loading muscle balance..."
	}
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	var sections []string
	sections = append(sections, m.renderStats())
	sections = append(sections, m.renderInsights())
	sections = append(sections, statusStyle.Render("  r: refresh"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m BalanceModel) renderStats() string {
	title := cardTitleStyle.Render("Muscle Groups")

	var maxVolume float64
	for _, g := range m.data.Stats {
		if g.TotalVolume > maxVolume {
			maxVolume = g.TotalVolume
		}
	}

	var rows []string
	rows = append(rows, tableHeaderStyle.Render(fmt.Sprintf("%-10s  %-20s  %5s  %5s  %-14s",
		"Group", "Volume", "Sets", "Days", "Last worked")))

	for _, g := range m.data.Stats {
		bar := RenderProgressBar(volumeShare(g.TotalVolume, maxVolume), 20)
		last := "-"
		if !g.LastWorked.IsZero() {
			last = humanize.Time(g.LastWorked)
		}
		rows = append(rows, tableRowStyle.Render(fmt.Sprintf("%-10s  %s  %5d  %5d  %-14s",
			g.Group, bar, g.TotalSets, g.Frequency, last)))
	}

	table := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, table))
}

func volumeShare(volume, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return volume / max
}

func (m BalanceModel) renderInsights() string {
	title := cardTitleStyle.Render("Insights")

	in := m.data.Insights
	var lines []string

	if in.Balanced {
		lines = append(lines, successStyle.Render("Your training looks balanced."))
	}
	if len(in.Strong) > 0 {
		lines = append(lines, helpKeyStyle.Render("Well trained: ")+groupNames(in.Strong))
	}
	if len(in.NeedsWork) > 0 {
		lines = append(lines, warningStyle.Render("Needs work:   ")+groupNames(in.NeedsWork))
	}
	if len(lines) == 0 {
		lines = append(lines, "Not enough workout history yet.")
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func groupNames(groups []analysis.GroupStats) string {
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Group
	}
	return strings.Join(names, ", ")
}
