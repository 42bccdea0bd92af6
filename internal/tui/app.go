package tui

import (
	"fitlog/internal/backend"
	"fitlog/internal/config"
	"fitlog/internal/nutrition"
	"fitlog/internal/service"
	"fitlog/internal/store"
	"fitlog/internal/workout"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen identifiers
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenTrack
	ScreenWorkout
	ScreenHistory
	ScreenRecords
	ScreenBalance
	ScreenTrends
	ScreenNutrition
	ScreenSync
	ScreenHelp
)

// App is the root Bubble Tea model
type App struct {
	screen     Screen
	prevScreen Screen

	// Screen models
	dashboard  DashboardModel
	track      TrackModel
	workoutScr WorkoutModel
	history    HistoryModel
	records    RecordsModel
	balance    BalanceModel
	trends     TrendsModel
	food       NutritionModel
	syncScreen SyncModel
	help       HelpModel

	// Services
	activitySvc *service.ActivityService
	querySvc    *service.QueryService
	syncSvc     *service.SyncService
	workouts    *workout.Tracker
	meals       *nutrition.Service
	db          *store.Store
	units       Units

	// Window dimensions
	width  int
	height int
}

// NewApp creates a new App with all dependencies. syncSvc and client may be
// nil when no backend is configured.
func NewApp(db *store.Store, activitySvc *service.ActivityService, querySvc *service.QueryService, syncSvc *service.SyncService, client *backend.Client, workouts *workout.Tracker, meals *nutrition.Service, display config.DisplayConfig) *App {
	units := NewUnits(display)
	return &App{
		screen:      ScreenDashboard,
		activitySvc: activitySvc,
		querySvc:    querySvc,
		syncSvc:     syncSvc,
		workouts:    workouts,
		meals:       meals,
		db:          db,
		units:       units,
		dashboard:   NewDashboardModel(querySvc, units),
		track:       NewTrackModel(activitySvc, units),
		workoutScr:  NewWorkoutModel(workouts, querySvc, db),
		history:     NewHistoryModel(querySvc, units, 0, 0),
		records:     NewRecordsModel(querySvc, 0, 0),
		balance:     NewBalanceModel(querySvc),
		trends:      NewTrendsModel(querySvc),
		food:        NewNutritionModel(meals),
		syncScreen:  NewSyncModel(syncSvc, client),
		help:        NewHelpModel(),
	}
}

// Init initializes the app
func (a *App) Init() tea.Cmd {
	// A crash may have left a live session behind; reopen its screen so the
	// user lands back where they were.
	if _, ok := a.activitySvc.Snapshot(); ok {
		a.screen = ScreenTrack
		a.track = NewTrackModel(a.activitySvc, a.units)
		return a.track.Init()
	}
	if _, ok := a.workouts.Snapshot(); ok {
		a.screen = ScreenWorkout
		a.workoutScr = NewWorkoutModel(a.workouts, a.querySvc, a.db)
		return a.workoutScr.Init()
	}
	return a.dashboard.Init()
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Global keybindings, unless a screen is capturing text input.
		if !a.capturesInput() {
			switch msg.String() {
			case "q", "ctrl+c":
				return a, tea.Quit
			case "1":
				return a.switchTo(ScreenDashboard)
			case "2":
				return a.switchTo(ScreenTrack)
			case "3":
				return a.switchTo(ScreenWorkout)
			case "4":
				return a.switchTo(ScreenHistory)
			case "5":
				return a.switchTo(ScreenRecords)
			case "6":
				return a.switchTo(ScreenBalance)
			case "7":
				return a.switchTo(ScreenTrends)
			case "8":
				return a.switchTo(ScreenNutrition)
			case "9":
				if a.syncSvc != nil {
					return a.switchTo(ScreenSync)
				}
			case "?":
				if a.screen != ScreenHelp {
					a.prevScreen = a.screen
					a.screen = ScreenHelp
					return a, nil
				}
			case "esc":
				if a.screen == ScreenHelp {
					a.screen = a.prevScreen
					return a, nil
				}
			}
		} else if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case SyncCompleteMsg:
		// Refresh dashboard data so the synced state shows on return.
		a.dashboard = NewDashboardModel(a.querySvc, a.units)
		return a, a.dashboard.Init()
	}

	// Delegate to current screen
	var cmd tea.Cmd
	switch a.screen {
	case ScreenDashboard:
		var m tea.Model
		m, cmd = a.dashboard.Update(msg)
		a.dashboard = m.(DashboardModel)
	case ScreenTrack:
		var m tea.Model
		m, cmd = a.track.Update(msg)
		a.track = m.(TrackModel)
	case ScreenWorkout:
		var m tea.Model
		m, cmd = a.workoutScr.Update(msg)
		a.workoutScr = m.(WorkoutModel)
	case ScreenHistory:
		var m tea.Model
		m, cmd = a.history.Update(msg)
		a.history = m.(HistoryModel)
	case ScreenRecords:
		var m tea.Model
		m, cmd = a.records.Update(msg)
		a.records = m.(RecordsModel)
	case ScreenBalance:
		var m tea.Model
		m, cmd = a.balance.Update(msg)
		a.balance = m.(BalanceModel)
	case ScreenTrends:
		var m tea.Model
		m, cmd = a.trends.Update(msg)
		a.trends = m.(TrendsModel)
	case ScreenNutrition:
		var m tea.Model
		m, cmd = a.food.Update(msg)
		a.food = m.(NutritionModel)
	case ScreenSync:
		var m tea.Model
		m, cmd = a.syncScreen.Update(msg)
		a.syncScreen = m.(SyncModel)
	case ScreenHelp:
		var m tea.Model
		m, cmd = a.help.Update(msg)
		a.help = m.(HelpModel)
	}

	return a, cmd
}

// switchTo recreates the target screen so it reloads fresh data, matching a
// mobile app re-entering a tab.
func (a *App) switchTo(s Screen) (tea.Model, tea.Cmd) {
	a.screen = s
	switch s {
	case ScreenDashboard:
		a.dashboard = NewDashboardModel(a.querySvc, a.units)
		return a, a.dashboard.Init()
	case ScreenTrack:
		a.track = NewTrackModel(a.activitySvc, a.units)
		return a, a.track.Init()
	case ScreenWorkout:
		a.workoutScr = NewWorkoutModel(a.workouts, a.querySvc, a.db)
		return a, a.workoutScr.Init()
	case ScreenHistory:
		a.history = NewHistoryModel(a.querySvc, a.units, a.width, a.height)
		return a, a.history.Init()
	case ScreenRecords:
		a.records = NewRecordsModel(a.querySvc, a.width, a.height)
		return a, a.records.Init()
	case ScreenBalance:
		a.balance = NewBalanceModel(a.querySvc)
		return a, a.balance.Init()
	case ScreenTrends:
		a.trends = NewTrendsModel(a.querySvc)
		return a, a.trends.Init()
	case ScreenNutrition:
		a.food = NewNutritionModel(a.meals)
		return a, a.food.Init()
	case ScreenSync:
		a.syncScreen = NewSyncModel(a.syncSvc, a.syncScreen.client)
		return a, a.syncScreen.Init()
	}
	return a, nil
}

// capturesInput reports whether the active screen owns the keyboard, so
// digit navigation must stay out of the way.
func (a *App) capturesInput() bool {
	return a.screen == ScreenNutrition && a.food.editing
}

// View renders the app
func (a *App) View() string {
	header := a.renderHeader()
	nav := a.renderNav()

	var content string
	switch a.screen {
	case ScreenDashboard:
		content = a.dashboard.View()
	case ScreenTrack:
		content = a.track.View()
	case ScreenWorkout:
		content = a.workoutScr.View()
	case ScreenHistory:
		content = a.history.View()
	case ScreenRecords:
		content = a.records.View()
	case ScreenBalance:
		content = a.balance.View()
	case ScreenTrends:
		content = a.trends.View()
	case ScreenNutrition:
		content = a.food.View()
	case ScreenSync:
		content = a.syncScreen.View()
	case ScreenHelp:
		content = a.help.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, nav, content)
}

func (a *App) renderHeader() string {
	return headerStyle.Render("fitlog")
}

func (a *App) renderNav() string {
	items := []struct {
		key    string
		label  string
		screen Screen
	}{
		{"1", "Dashboard", ScreenDashboard},
		{"2", "Track", ScreenTrack},
		{"3", "Workout", ScreenWorkout},
		{"4", "History", ScreenHistory},
		{"5", "Records", ScreenRecords},
		{"6", "Balance", ScreenBalance},
		{"7", "Trends", ScreenTrends},
		{"8", "Food", ScreenNutrition},
	}

	var nav string
	for i, item := range items {
		if i > 0 {
			nav += "  "
		}

		label := "[" + item.key + "] " + item.label
		if a.screen == item.screen {
			nav += navActiveStyle.Render(label)
		} else {
			nav += navInactiveStyle.Render(label)
		}
	}

	if a.syncSvc != nil {
		label := "[9] Sync"
		if a.screen == ScreenSync {
			nav += "  " + navActiveStyle.Render(label)
		} else {
			nav += "  " + navInactiveStyle.Render(label)
		}
	}

	nav += "  " + navInactiveStyle.Render("[?] Help") + "  " + navInactiveStyle.Render("[q] Quit")

	return navStyle.Render(nav)
}

// SyncCompleteMsg is sent when a sync pass finishes
type SyncCompleteMsg struct{}
