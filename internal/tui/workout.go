package tui

import (
	"fmt"
	"time"

	"fitlog/internal/service"
	"fitlog/internal/store"
	"fitlog/internal/workout"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"
)

type workoutPhase int

const (
	workoutPick workoutPhase = iota
	workoutLive
	workoutDone
)

// WorkoutModel is the strength workout screen: pick a routine, check off
// sets, finish. Every mutation checkpoints the session so a crash mid-workout
// loses nothing.
type WorkoutModel struct {
	tracker *workout.Tracker
	query   *service.QueryService
	db      *store.Store

	phase          workoutPhase
	routines       []store.Routine
	cursor         int
	row            int
	confirmDiscard bool
	saved          *store.Workout
	loading        bool
	err            error
}

// setRef addresses one set within the flattened checklist.
type setRef struct {
	exercise int
	set      int
}

// NewWorkoutModel creates the workout screen, reattaching to a live workout
// if one exists.
func NewWorkoutModel(t *workout.Tracker, qs *service.QueryService, db *store.Store) WorkoutModel {
	m := WorkoutModel{tracker: t, query: qs, db: db, loading: true}
	if _, ok := t.Snapshot(); ok {
		m.phase = workoutLive
		m.loading = false
	}
	return m
}

// Init initializes the workout screen
func (m WorkoutModel) Init() tea.Cmd {
	if m.phase == workoutPick {
		return m.loadRoutines
	}
	return nil
}

type routinesLoadedMsg struct {
	routines []store.Routine
	err      error
}

func (m WorkoutModel) loadRoutines() tea.Msg {
	routines, err := m.query.Routines()
	return routinesLoadedMsg{routines: routines, err: err}
}

type workoutDoneMsg struct {
	workout *store.Workout
	err     error
}

// Update handles messages
func (m WorkoutModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case routinesLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.routines = msg.routines

	case workoutDoneMsg:
		m.err = msg.err
		if msg.err == nil {
			m.saved = msg.workout
			m.phase = workoutDone
		}

	case tea.KeyMsg:
		switch m.phase {
		case workoutPick:
			return m.updatePick(msg)
		case workoutLive:
			return m.updateLive(msg)
		case workoutDone:
			if msg.String() == "enter" {
				m.phase = workoutPick
				m.saved = nil
				m.cursor = 0
				m.row = 0
				m.loading = true
				return m, m.loadRoutines
			}
		}
	}
	return m, nil
}

func (m WorkoutModel) updatePick(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.routines)-1 {
			m.cursor++
		}
	case "enter":
		if len(m.routines) == 0 {
			return m, nil
		}
		if err := m.tracker.Start(m.routines[m.cursor]); err != nil {
			m.err = err
			return m, nil
		}
		m.phase = workoutLive
		m.row = 0
		m.checkpoint()
	}
	return m, nil
}

func (m WorkoutModel) updateLive(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap, ok := m.tracker.Snapshot()
	if !ok {
		m.phase = workoutPick
		m.loading = true
		return m, m.loadRoutines
	}
	refs := flattenSets(snap)

	key := msg.String()
	if m.confirmDiscard && key != "x" {
		m.confirmDiscard = false
	}

	switch key {
	case "up", "k":
		if m.row > 0 {
			m.row--
		}
	case "down", "j":
		if m.row < len(refs)-1 {
			m.row++
		}
	case " ":
		if ref, ok := currentRef(refs, m.row); ok {
			m.mutate(func() error { return m.tracker.ToggleSet(ref.exercise, ref.set) })
		}
	case "a":
		if ref, ok := currentRef(refs, m.row); ok {
			m.mutate(func() error { return m.tracker.AddSet(ref.exercise) })
		}
	case "+", "=":
		m.adjustSet(refs, snap, 1, 0)
	case "-":
		m.adjustSet(refs, snap, -1, 0)
	case "]":
		m.adjustSet(refs, snap, 0, 2.5)
	case "[":
		m.adjustSet(refs, snap, 0, -2.5)
	case "f", "enter":
		return m, m.finish
	case "x":
		if !m.confirmDiscard {
			m.confirmDiscard = true
			return m, nil
		}
		m.tracker.Discard()
		m.clearCheckpoint()
		m.confirmDiscard = false
		m.phase = workoutPick
		m.loading = true
		return m, m.loadRoutines
	}
	return m, nil
}

func (m WorkoutModel) finish() tea.Msg {
	w, err := m.tracker.Finish()
	if err != nil {
		return workoutDoneMsg{err: err}
	}
	if err := m.db.SaveWorkout(&w); err != nil {
		return workoutDoneMsg{err: fmt.Errorf("saving workout: %w", err)}
	}
	m.clearCheckpoint()
	return workoutDoneMsg{workout: &w}
}

// adjustSet bumps the reps or weight of the selected set.
func (m *WorkoutModel) adjustSet(refs []setRef, snap workout.Session, repsDelta int, weightDelta float64) {
	ref, ok := currentRef(refs, m.row)
	if !ok {
		return
	}
	s := snap.Exercises[ref.exercise].Sets[ref.set]

	reps := s.Reps
	if repsDelta != 0 {
		v := repsDelta
		if reps != nil {
			v = *reps + repsDelta
		}
		if v < 0 {
			v = 0
		}
		reps = &v
	}

	weight := s.Weight
	if weightDelta != 0 {
		v := weightDelta
		if weight != nil {
			v = *weight + weightDelta
		}
		if v < 0 {
			v = 0
		}
		weight = &v
	}

	m.mutate(func() error {
		return m.tracker.UpdateSet(ref.exercise, ref.set, reps, s.TimeSeconds, weight)
	})
}

func (m *WorkoutModel) mutate(fn func() error) {
	if err := fn(); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.checkpoint()
}

func (m *WorkoutModel) checkpoint() {
	snap, ok := m.tracker.Snapshot()
	if !ok {
		return
	}
	if err := m.db.SetState(store.StateKeyWorkoutCheckpoint, snap); err != nil {
		log.WithField("error", err).Warn("checkpointing workout")
	}
}

func (m *WorkoutModel) clearCheckpoint() {
	if err := m.db.ClearState(store.StateKeyWorkoutCheckpoint); err != nil {
		log.WithField("error", err).Warn("clearing workout checkpoint")
	}
}

func flattenSets(snap workout.Session) []setRef {
	var refs []setRef
	for i, ex := range snap.Exercises {
		for j := range ex.Sets {
			refs = append(refs, setRef{exercise: i, set: j})
		}
	}
	return refs
}

func currentRef(refs []setRef, row int) (setRef, bool) {
	if row < 0 || row >= len(refs) {
		return setRef{}, false
	}
	return refs[row], true
}

// View renders the workout screen
func (m WorkoutModel) View() string {
	switch m.phase {
	case workoutLive:
		return m.viewLive()
	case workoutDone:
		return m.viewDone()
	}
	return m.viewPick()
}

func (m WorkoutModel) viewPick() string {
	if m.loading {
		return "\n  Loading routines..."
	}

	var sections []string
	sections = append(sections, cardTitleStyle.Render("Choose a Routine"))

	if len(m.routines) == 0 {
		sections = append(sections, "  No routines yet.")
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	for i, r := range m.routines {
		label := fmt.Sprintf("%-24s %d exercises", truncateName(r.Name, 24), len(r.Exercises))
		if i == m.cursor {
			sections = append(sections, tableSelectedStyle.Render("> "+label))
		} else {
			sections = append(sections, tableRowStyle.Render("  "+label))
		}
	}

	if m.err != nil {
		sections = append(sections, errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err)))
	}

	sections = append(sections, statusStyle.Render("\n  j/k: choose  enter: start"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m WorkoutModel) viewLive() string {
	snap, ok := m.tracker.Snapshot()
	if !ok {
		return "\n  No active workout."
	}

	var sections []string
	elapsed := FormatDuration(time.Since(snap.StartedAt))
	sections = append(sections, cardTitleStyle.Render(fmt.Sprintf("%s  (%s)", snap.RoutineName, elapsed)))

	row := 0
	for _, ex := range snap.Exercises {
		name := ex.Name
		if ex.MuscleGroup != "" {
			name += "  " + statusStyle.Render(ex.MuscleGroup)
		}
		sections = append(sections, tableHeaderStyle.Render(name))

		for j, s := range ex.Sets {
			check := "[ ]"
			if s.Completed {
				check = successStyle.Render("[x]")
			}
			line := fmt.Sprintf("%s set %d  %s", check, j+1, formatSetTarget(s))
			if row == m.row {
				sections = append(sections, tableSelectedStyle.Render("> "+line))
			} else {
				sections = append(sections, tableRowStyle.Render("  "+line))
			}
			row++
		}
	}

	footer := statusStyle.Render("  space: toggle  +/-: reps  [/]: weight  a: add set  enter: finish  x: discard")
	if m.confirmDiscard {
		footer = warningStyle.Render("  Press 'x' again to discard this workout")
	}
	if m.err != nil {
		footer = errorStyle.Render(fmt.Sprintf("  Error: %v", m.err))
	}
	sections = append(sections, footer)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// formatSetTarget renders the reps/time/weight of one set.
func formatSetTarget(s store.ExerciseSet) string {
	out := ""
	if s.Reps != nil {
		out += fmt.Sprintf("%d reps", *s.Reps)
	}
	if s.TimeSeconds != nil {
		if out != "" {
			out += "  "
		}
		out += fmt.Sprintf("%ds", *s.TimeSeconds)
	}
	if s.Weight != nil {
		if out != "" {
			out += "  "
		}
		out += fmt.Sprintf("@ %.1f kg", *s.Weight)
	}
	if out == "" {
		out = "bodyweight"
	}
	return out
}

func (m WorkoutModel) viewDone() string {
	w := m.saved
	duration := w.CompletedAt.Sub(w.StartedAt)

	lines := []string{
		RenderMetric("Routine", w.RoutineName, ""),
		RenderMetric("Duration", FormatDuration(duration), ""),
		RenderMetric("Sets completed", fmt.Sprintf("%d", w.TotalSets), ""),
		RenderMetric("Total reps", fmt.Sprintf("%d", w.TotalReps), ""),
	}

	card := cardStyle.Width(44).Render(lipgloss.JoinVertical(lipgloss.Left,
		cardTitleStyle.Render("Workout saved"),
		successStyle.Render("Good session!"),
		"",
		lipgloss.JoinVertical(lipgloss.Left, lines...),
	))

	return lipgloss.JoinVertical(lipgloss.Left, card, statusStyle.Render("  enter: start another  5: records"))
}
