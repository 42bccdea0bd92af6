package tui

import (
	"fmt"
	"time"

	"fitlog/internal/service"
	"fitlog/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"
)

const dashboardChartDays = 14

// DashboardModel is the dashboard screen model
type DashboardModel struct {
	queryService *service.QueryService
	units        Units

	journey *service.Journey
	week    *service.WeekSummary
	dailyKm []float64
	loading bool
	err     error
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel(qs *service.QueryService, units Units) DashboardModel {
	return DashboardModel{
		queryService: qs,
		units:        units,
		loading:      true,
	}
}

// Init initializes the dashboard
func (m DashboardModel) Init() tea.Cmd {
	return m.loadData
}

type dashboardDataMsg struct {
	journey *service.Journey
	week    *service.WeekSummary
	dailyKm []float64
	err     error
}

func (m DashboardModel) loadData() tea.Msg {
	journey, err := m.queryService.Journey(5)
	if err != nil {
		return dashboardDataMsg{err: err}
	}
	week, err := m.queryService.Week()
	if err != nil {
		return dashboardDataMsg{err: err}
	}
	activities, err := m.queryService.Activities(0)
	if err != nil {
		return dashboardDataMsg{err: err}
	}
	return dashboardDataMsg{
		journey: journey,
		week:    week,
		dailyKm: bucketDailyKm(activities, time.Now(), dashboardChartDays),
	}
}

// bucketDailyKm sums distance per calendar day over the trailing window,
// oldest day first.
func bucketDailyKm(activities []store.Activity, now time.Time, days int) []float64 {
	out := make([]float64, days)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -(days - 1))
	for _, a := range activities {
		day := int(a.StartedAt.Sub(start).Hours() / 24)
		if day >= 0 && day < days {
			out[day] += a.DistanceMeters / 1000
		}
	}
	return out
}

// Update handles messages
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		m.loading = false
		m.err = msg.err
		m.journey = msg.journey
		m.week = msg.week
		m.dailyKm = msg.dailyKm
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.loadData
		}
	}
	return m, nil
}

// View renders the dashboard
func (m DashboardModel) View() string {
	if m.loading {
		return "\n  Loading dashboard..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	var sections []string

	journeyCard := m.renderJourneyCard()
	weekCard := m.renderWeekCard()
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, journeyCard, "  ", weekCard))

	if hasDistance(m.dailyKm) {
		sections = append(sections, m.renderChart())
	}

	sections = append(sections, m.renderRecentActivities())

	help := statusStyle.Render("Press 'r' to refresh, '2' to start tracking, '3' to start a workout")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func hasDistance(dailyKm []float64) bool {
	for _, v := range dailyKm {
		if v > 0 {
			return true
		}
	}
	return false
}

func (m DashboardModel) renderJourneyCard() string {
	title := cardTitleStyle.Render("Your Journey")

	j := m.journey
	lines := []string{
		RenderMetric("Activities", humanize.Comma(int64(j.TotalActivities)), ""),
		RenderMetric("Distance", m.units.FormatDistance(j.TotalDistanceKm*1000), ""),
		RenderMetric("Active time", FormatDuration(j.TotalDuration), ""),
		RenderMetric("Steps", humanize.Comma(int64(j.TotalSteps)), ""),
		RenderMetric("Calories burned", fmt.Sprintf("%.0f kcal", j.EstimatedCalories), ""),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(38).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderWeekCard() string {
	title := cardTitleStyle.Render("Last 7 Days")

	w := m.week
	lines := []string{
		RenderMetric("Cardio sessions", fmt.Sprintf("%d", w.Activities), ""),
		RenderMetric("Distance", m.units.FormatDistance(w.DistanceKm*1000), ""),
		RenderMetric("Workouts", fmt.Sprintf("%d", w.Workouts), ""),
		RenderMetric("Sets completed", fmt.Sprintf("%d", w.SetsDone), ""),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(34).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderChart() string {
	title := cardTitleStyle.Render(fmt.Sprintf("Daily Distance (%s) - Last %d Days", m.units.DistanceLabel(), dashboardChartDays))

	data := m.dailyKm
	if m.units.IsMiles() {
		data = make([]float64, len(m.dailyKm))
		for i, km := range m.dailyKm {
			data[i] = km * metersPerKm / metersPerMile
		}
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Precision(1),
	)

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, graph))
}

func (m DashboardModel) renderRecentActivities() string {
	title := cardTitleStyle.Render("Recent Activities")

	if len(m.journey.Recent) == 0 {
		return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, "No activities yet. Press '2' to track one."))
	}

	header := tableHeaderStyle.Render(fmt.Sprintf("%-12s  %-12s  %9s  %8s  %8s",
		"Date", "Type", "Distance", "Time", "Pace"))

	rows := []string{header}
	for _, a := range m.journey.Recent {
		row := tableRowStyle.Render(fmt.Sprintf("%-12s  %-12s  %9s  %8s  %8s",
			a.StartedAt.Format("Jan 02"),
			a.Type.Label(),
			m.units.FormatDistance(a.DistanceMeters),
			FormatDuration(time.Duration(a.DurationMs)*time.Millisecond),
			m.units.FormatPace(a.DurationMs, a.DistanceMeters),
		))
		rows = append(rows, row)
	}

	table := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, table))
}
