package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"fitlog/internal/auth"
	"fitlog/internal/backend"
	"fitlog/internal/config"
	"fitlog/internal/nutrition"
	"fitlog/internal/sensor"
	"fitlog/internal/service"
	"fitlog/internal/store"
	"fitlog/internal/tui"
	"fitlog/internal/workout"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if errors.Is(err, config.ErrNoConfig) {
		fmt.Println("No config file found. Creating example config...")
		if err := config.CreateExample(); err != nil {
			return fmt.Errorf("creating example config: %w", err)
		}
		configDir, _ := config.GetConfigDir()
		fmt.Printf("\nPlease review the config file at:\n  %s/config.json\n\n", configDir)
		fmt.Println("Set your body weight for calorie estimates, and add backend")
		fmt.Println("credentials if you want to sync to a server.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		configDir, _ := config.GetConfigDir()
		fmt.Printf("Config validation failed: %v\n\n", err)
		fmt.Printf("Please edit the config file at:\n  %s/config.json\n", configDir)
		return nil
	}

	// The TUI owns the terminal, so logs go to a file.
	if err := setupLogging(); err != nil {
		return err
	}

	// Open database
	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := seedRoutines(db); err != nil {
		return fmt.Errorf("seeding starter routines: %w", err)
	}

	// Sensor sources: a recorded replay track when configured, otherwise
	// no-op sources (this build has no direct GPS or pedometer hardware).
	var location sensor.LocationSource = sensor.NopLocationSource{}
	var steps sensor.StepCounter = sensor.NopStepCounter{}
	if cfg.Replay.TrackPath != "" {
		replay, err := sensor.NewReplay(cfg.Replay.TrackPath)
		if err != nil {
			return fmt.Errorf("loading replay track: %w", err)
		}
		replay.Speedup = cfg.Replay.Speedup
		location = replay
	}

	// Create services
	activitySvc := service.NewActivityService(db, location, steps)
	querySvc := service.NewQueryService(db, cfg.Athlete)
	mealSvc := nutrition.New(db)
	workouts := workout.New()

	// Reattach to whatever a crash or quit left behind.
	if restored, err := activitySvc.RestoreCheckpoint(ctx); err != nil {
		log.WithField("error", err).Warn("restoring cardio checkpoint")
	} else if restored {
		log.Info("resumed live cardio session")
	}
	var workoutSession workout.Session
	if ok, err := db.GetState(store.StateKeyWorkoutCheckpoint, &workoutSession); err != nil {
		log.WithField("error", err).Warn("restoring workout checkpoint")
	} else if ok {
		if err := workouts.Restore(workoutSession); err != nil {
			log.WithField("error", err).Warn("restoring workout session")
		}
	}

	// Optional sync backend.
	var syncSvc *service.SyncService
	var client *backend.Client
	if cfg.SyncEnabled() {
		client, err = setupBackend(ctx, db, cfg)
		if err != nil {
			return fmt.Errorf("setting up sync backend: %w", err)
		}
		syncSvc = service.NewSyncService(client, db)
	}

	// Launch TUI
	app := tui.NewApp(db, activitySvc, querySvc, syncSvc, client, workouts, mealSvc, cfg.Display)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}

func setupLogging() error {
	configDir, err := config.GetConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(configDir, "fitlog.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	log.SetOutput(f)
	log.SetLevel(log.InfoLevel)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	return nil
}

// setupBackend builds the authenticated backend client, running the OAuth
// flow first if no token is stored yet.
func setupBackend(ctx context.Context, db *store.Store, cfg *config.Config) (*backend.Client, error) {
	oauthCfg := auth.NewOAuthConfig(auth.Config{
		BaseURL:      cfg.Backend.BaseURL,
		ClientID:     cfg.Backend.ClientID,
		ClientSecret: cfg.Backend.ClientSecret,
		RedirectURL:  fmt.Sprintf("http://localhost:%d/callback", auth.CallbackPort),
	})

	var token oauth2.Token
	ok, err := db.GetState(store.StateKeyBackendAuth, &token)
	if err != nil {
		return nil, fmt.Errorf("loading stored auth: %w", err)
	}
	if !ok {
		fmt.Println("No sync authentication found. Starting login flow...")
		result, err := auth.Authenticate(ctx, oauthCfg)
		if err != nil {
			return nil, err
		}
		token = *result.Token
		if err := db.SetState(store.StateKeyBackendAuth, token); err != nil {
			return nil, fmt.Errorf("saving auth: %w", err)
		}
		if userID := auth.ExtractUserID(result.Token); userID != "" {
			fmt.Printf("Signed in as %s\n", userID)
		}
	}

	tokenSource := auth.NewTokenSource(oauthCfg, &token, func(newToken *oauth2.Token) error {
		return db.SetState(store.StateKeyBackendAuth, newToken)
	})

	return backend.NewClient(cfg.Backend.BaseURL, tokenSource), nil
}

// seedRoutines installs two starter routines on first run so the workout
// screen is usable before the user builds their own plans.
func seedRoutines(db *store.Store) error {
	existing, err := db.ListRoutines()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	reps := func(n int) *int { return &n }
	secs := func(n int) *int { return &n }
	now := time.Now()

	starters := []store.Routine{
		{
			ID:        uuid.NewString(),
			CreatedAt: now,
			Name:      "Full Body Basics",
			Exercises: []store.RoutineExercise{
				{Name: "Squat", Sets: 3, TargetReps: reps(8)},
				{Name: "Bench Press", Sets: 3, TargetReps: reps(8)},
				{Name: "Barbell Row", Sets: 3, TargetReps: reps(8)},
				{Name: "Plank", MuscleGroup: "core", Sets: 3, TargetTime: secs(45)},
			},
		},
		{
			ID:        uuid.NewString(),
			CreatedAt: now,
			Name:      "Upper Body Push",
			Exercises: []store.RoutineExercise{
				{Name: "Overhead Press", Sets: 3, TargetReps: reps(8)},
				{Name: "Incline Dumbbell Press", Sets: 3, TargetReps: reps(10)},
				{Name: "Dips", Sets: 3, TargetReps: reps(12)},
				{Name: "Lateral Raise", Sets: 3, TargetReps: reps(15)},
			},
		},
	}

	for i := range starters {
		if err := db.SaveRoutine(&starters[i]); err != nil {
			return err
		}
	}
	log.Info("installed starter routines")
	return nil
}
