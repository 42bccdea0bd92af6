package tui

import (
	"fmt"
	"strconv"
	"time"

	"fitlog/internal/nutrition"
	"fitlog/internal/store"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type nutritionForm int

const (
	formNone nutritionForm = iota
	formMeal
	formGoals
)

// NutritionModel is the diet screen: today's intake against goals, meal
// logging, and water tracking.
type NutritionModel struct {
	svc *nutrition.Service

	day     nutrition.DaySummary
	cursor  int
	loading bool
	err     error

	// Form state. While editing, the app routes all keys here.
	editing bool
	form    nutritionForm
	inputs  []textinput.Model
	focus   int
}

// NewNutritionModel creates a new nutrition model
func NewNutritionModel(svc *nutrition.Service) NutritionModel {
	return NutritionModel{
		svc:     svc,
		loading: true,
	}
}

// Init initializes the nutrition screen
func (m NutritionModel) Init() tea.Cmd {
	return m.loadDay
}

type nutritionLoadedMsg struct {
	day nutrition.DaySummary
	err error
}

func (m NutritionModel) loadDay() tea.Msg {
	day, err := m.svc.Day(time.Now())
	return nutritionLoadedMsg{day: day, err: err}
}

type nutritionSavedMsg struct{ err error }

// Update handles messages
func (m NutritionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case nutritionLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.day = msg.day
		if m.cursor >= len(m.day.Meals) {
			m.cursor = 0
		}

	case nutritionSavedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.editing = false
			m.form = formNone
			m.loading = true
			return m, m.loadDay
		}

	case tea.KeyMsg:
		if m.editing {
			return m.updateForm(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m NutritionModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.day.Meals)-1 {
			m.cursor++
		}
	case "m":
		m.startMealForm()
		return m, textinput.Blink
	case "g":
		m.startGoalsForm()
		return m, textinput.Blink
	case "w":
		return m, func() tea.Msg {
			if err := m.svc.LogWater(250); err != nil {
				return nutritionSavedMsg{err: err}
			}
			return nutritionSavedMsg{}
		}
	case "d":
		if len(m.day.Meals) == 0 {
			return m, nil
		}
		id := m.day.Meals[m.cursor].ID
		return m, func() tea.Msg {
			return nutritionSavedMsg{err: m.svc.DeleteMeal(id)}
		}
	case "r":
		m.loading = true
		return m, m.loadDay
	}
	return m, nil
}

func (m *NutritionModel) startMealForm() {
	labels := []struct {
		placeholder string
		width       int
	}{
		{"Meal name", 28},
		{"breakfast / lunch / dinner / snack", 34},
		{"Calories", 8},
		{"Protein g", 8},
		{"Carbs g", 8},
		{"Fat g", 8},
	}
	m.inputs = make([]textinput.Model, len(labels))
	for i, l := range labels {
		ti := textinput.New()
		ti.Placeholder = l.placeholder
		ti.Width = l.width
		m.inputs[i] = ti
	}
	m.inputs[0].Focus()
	m.focus = 0
	m.form = formMeal
	m.editing = true
	m.err = nil
}

func (m *NutritionModel) startGoalsForm() {
	goals := m.day.Goals
	values := []string{
		fmt.Sprintf("%.0f", goals.Calories),
		fmt.Sprintf("%.0f", goals.ProteinG),
		fmt.Sprintf("%.0f", goals.CarbsG),
		fmt.Sprintf("%.0f", goals.FatG),
		strconv.Itoa(goals.WaterMl),
	}
	m.inputs = make([]textinput.Model, len(values))
	for i, v := range values {
		ti := textinput.New()
		ti.SetValue(v)
		ti.Width = 8
		m.inputs[i] = ti
	}
	m.inputs[0].Focus()
	m.focus = 0
	m.form = formGoals
	m.editing = true
	m.err = nil
}

func (m NutritionModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.form = formNone
		m.err = nil
		return m, nil

	case "tab", "down":
		m.setFocus((m.focus + 1) % len(m.inputs))
		return m, textinput.Blink

	case "shift+tab", "up":
		m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs))
		return m, textinput.Blink

	case "enter":
		if m.focus < len(m.inputs)-1 {
			m.setFocus(m.focus + 1)
			return m, textinput.Blink
		}
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *NutritionModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[i].Focus()
}

func (m NutritionModel) submitForm() (tea.Model, tea.Cmd) {
	switch m.form {
	case formMeal:
		meal := store.Meal{
			Name:     m.inputs[0].Value(),
			MealType: m.inputs[1].Value(),
			Calories: parseFloat(m.inputs[2].Value()),
			ProteinG: parseFloat(m.inputs[3].Value()),
			CarbsG:   parseFloat(m.inputs[4].Value()),
			FatG:     parseFloat(m.inputs[5].Value()),
		}
		return m, func() tea.Msg {
			_, err := m.svc.LogMeal(meal)
			return nutritionSavedMsg{err: err}
		}
	case formGoals:
		goals := store.Goals{
			Calories: parseFloat(m.inputs[0].Value()),
			ProteinG: parseFloat(m.inputs[1].Value()),
			CarbsG:   parseFloat(m.inputs[2].Value()),
			FatG:     parseFloat(m.inputs[3].Value()),
			WaterMl:  int(parseFloat(m.inputs[4].Value())),
		}
		return m, func() tea.Msg {
			return nutritionSavedMsg{err: m.svc.SetGoals(goals)}
		}
	}
	return m, nil
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// View renders the nutrition screen
func (m NutritionModel) View() string {
	if m.loading {
		return "\n  Loading today's intake..."
	}

	if m.editing {
		return m.viewForm()
	}

	var sections []string
	sections = append(sections, m.renderTargets())
	sections = append(sections, m.renderMeals())

	if m.err != nil {
		sections = append(sections, errorStyle.Render(fmt.Sprintf("  Error: %v", m.err)))
	}
	sections = append(sections, statusStyle.Render("  m: log meal  w: +250ml water  g: edit goals  d: delete meal  r: refresh"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m NutritionModel) renderTargets() string {
	title := cardTitleStyle.Render("Today - " + m.day.Date.Format("Mon Jan 02"))

	goals := m.day.Goals
	lines := []string{
		m.renderTarget("Calories", m.day.Calories, goals.Calories, "kcal"),
		m.renderTarget("Protein", m.day.ProteinG, goals.ProteinG, "g"),
		m.renderTarget("Carbs", m.day.CarbsG, goals.CarbsG, "g"),
		m.renderTarget("Fat", m.day.FatG, goals.FatG, "g"),
		m.renderTarget("Water", float64(m.day.WaterMl), float64(goals.WaterMl), "ml"),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m NutritionModel) renderTarget(label string, value, goal float64, unit string) string {
	share := 0.0
	if goal > 0 {
		share = value / goal
	}
	return fmt.Sprintf("%s %s  %s",
		metricLabelStyle.Width(10).Render(label),
		RenderProgressBar(share, 20),
		metricValueStyle.Render(fmt.Sprintf("%.0f / %.0f %s", value, goal, unit)),
	)
}

func (m NutritionModel) renderMeals() string {
	title := cardTitleStyle.Render("Meals")

	if len(m.day.Meals) == 0 {
		return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, "Nothing logged yet. Press 'm' to add a meal."))
	}

	var rows []string
	for i, meal := range m.day.Meals {
		row := fmt.Sprintf("%-10s  %-24s  %5.0f kcal  P%3.0f C%3.0f F%3.0f",
			meal.MealType,
			truncateName(meal.Name, 24),
			meal.Calories,
			meal.ProteinG, meal.CarbsG, meal.FatG,
		)
		if i == m.cursor {
			rows = append(rows, tableSelectedStyle.Render("> "+row))
		} else {
			rows = append(rows, tableRowStyle.Render("  "+row))
		}
	}

	table := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, table))
}

func (m NutritionModel) viewForm() string {
	var labels []string
	var title string
	switch m.form {
	case formMeal:
		title = "Log a Meal"
		labels = []string{"Name", "Type", "Calories", "Protein g", "Carbs g", "Fat g"}
	case formGoals:
		title = "Daily Goals"
		labels = []string{"Calories", "Protein g", "Carbs g", "Fat g", "Water ml"}
	}

	var lines []string
	lines = append(lines, cardTitleStyle.Render(title))
	for i, input := range m.inputs {
		lines = append(lines, metricLabelStyle.Width(12).Render(labels[i])+input.View())
	}
	if m.err != nil {
		lines = append(lines, errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}
	lines = append(lines, "")
	lines = append(lines, statusStyle.Render("tab: next field  enter: save  esc: cancel"))

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
