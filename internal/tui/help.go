package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpModel is the help screen model
type HelpModel struct{}

// NewHelpModel creates a new help model
func NewHelpModel() HelpModel {
	return HelpModel{}
}

// Init initializes the help screen
func (m HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

// View renders the help screen
func (m HelpModel) View() string {
	var sections []string

	title := cardTitleStyle.Render("Keyboard Shortcuts")
	sections = append(sections, title)

	navSection := m.renderSection("Navigation", []keyHelp{
		{"1", "Dashboard"},
		{"2", "Track a cardio activity"},
		{"3", "Start a workout"},
		{"4", "Training history"},
		{"5", "Personal records"},
		{"6", "Muscle balance"},
		{"7", "Strength trends"},
		{"8", "Food and water"},
		{"9", "Backend sync (when configured)"},
		{"?", "Help (this screen)"},
		{"q", "Quit"},
		{"esc", "Close help"},
	})
	sections = append(sections, navSection)

	trackSection := m.renderSection("Tracking", []keyHelp{
		{"j/k, enter", "Choose activity type and start"},
		{"space or p", "Pause / resume"},
		{"enter or f", "Finish and save"},
		{"x x", "Discard session"},
	})
	sections = append(sections, trackSection)

	workoutSection := m.renderSection("Workout", []keyHelp{
		{"space", "Toggle set done"},
		{"+ / -", "Adjust reps"},
		{"] / [", "Adjust weight"},
		{"a", "Add a set"},
		{"enter or f", "Finish and save"},
		{"x x", "Discard workout"},
	})
	sections = append(sections, workoutSection)

	foodSection := m.renderSection("Food", []keyHelp{
		{"m", "Log a meal"},
		{"w", "Log 250ml of water"},
		{"g", "Edit daily goals"},
		{"d", "Delete selected meal"},
	})
	sections = append(sections, foodSection)

	sections = append(sections, m.renderTermsHelp())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

type keyHelp struct {
	key  string
	desc string
}

func (m HelpModel) renderSection(title string, keys []keyHelp) string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(secondaryColor).Render(title))

	for _, k := range keys {
		lines = append(lines, "  "+RenderKeyHelp(k.key, k.desc))
	}

	return strings.Join(lines, "\n")
}

func (m HelpModel) renderTermsHelp() string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(secondaryColor).Render("Terms Explained"))
	lines = append(lines, "")

	terms := []struct {
		name string
		desc string
	}{
		{"Volume", "Weight times reps for a set. Personal bests rank by volume."},
		{"Pace", "Active time per km or mile. Paused time does not count."},
		{"Balance", "Per muscle group volume and training days vs. the mean."},
		{"Trend", "Max weight per exercise, this period against the one before."},
		{"Calories", "Estimated from activity type, duration, and body weight."},
	}

	for _, term := range terms {
		lines = append(lines, "  "+helpKeyStyle.Render(term.name))
		lines = append(lines, "  "+helpDescStyle.Render(term.desc))
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
