package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the application configuration
type Config struct {
	Athlete AthleteConfig `json:"athlete"`
	Display DisplayConfig `json:"display"`
	Backend BackendConfig `json:"backend"`
	Replay  ReplayConfig  `json:"replay"`
}

// AthleteConfig holds athlete-specific settings
type AthleteConfig struct {
	WeightKg float64 `json:"weight_kg"`
	HeightCm float64 `json:"height_cm"`
}

// DisplayConfig holds display preferences
type DisplayConfig struct {
	DistanceUnit string `json:"distance_unit"`
	PaceUnit     string `json:"pace_unit"`
}

// BackendConfig holds optional sync backend credentials. All fields empty
// means sync is disabled and the app runs fully offline.
type BackendConfig struct {
	BaseURL      string `json:"base_url"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// ReplayConfig points at a recorded GPS track to replay in place of live
// sensors, for demos and development machines without GPS hardware.
type ReplayConfig struct {
	TrackPath string  `json:"track_path"`
	Speedup   float64 `json:"speedup"`
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Athlete: AthleteConfig{
			WeightKg: 70,
			HeightCm: 175,
		},
		Display: DisplayConfig{
			DistanceUnit: "km",
			PaceUnit:     "min/km",
		},
	}
}

// Load reads the configuration from ~/.fitlog/config.json
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply defaults for missing values
	defaults := DefaultConfig()
	if cfg.Athlete.WeightKg == 0 {
		cfg.Athlete.WeightKg = defaults.Athlete.WeightKg
	}
	if cfg.Athlete.HeightCm == 0 {
		cfg.Athlete.HeightCm = defaults.Athlete.HeightCm
	}
	if cfg.Display.DistanceUnit == "" {
		cfg.Display.DistanceUnit = defaults.Display.DistanceUnit
	}
	if cfg.Display.PaceUnit == "" {
		cfg.Display.PaceUnit = defaults.Display.PaceUnit
	}

	return &cfg, nil
}

// Save writes the configuration to ~/.fitlog/config.json
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample creates an example config file if none exists
func CreateExample() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil {
		return nil // Config exists, don't overwrite
	}

	example := DefaultConfig()
	return Save(&example)
}

// Validate checks the config for inconsistent fields
func (c *Config) Validate() error {
	if c.Athlete.WeightKg < 0 {
		return fmt.Errorf("athlete.weight_kg must not be negative, got %v", c.Athlete.WeightKg)
	}
	if c.Athlete.HeightCm < 0 {
		return fmt.Errorf("athlete.height_cm must not be negative, got %v", c.Athlete.HeightCm)
	}

	if c.Display.DistanceUnit != "" && c.Display.DistanceUnit != "km" && c.Display.DistanceUnit != "mi" {
		return fmt.Errorf("display.distance_unit must be \"km\" or \"mi\", got %q", c.Display.DistanceUnit)
	}
	if c.Display.PaceUnit != "" && c.Display.PaceUnit != "min/km" && c.Display.PaceUnit != "min/mi" {
		return fmt.Errorf("display.pace_unit must be \"min/km\" or \"min/mi\", got %q", c.Display.PaceUnit)
	}

	// Backend credentials are all-or-nothing: a partially configured
	// backend is a misconfiguration, not a disabled one.
	if c.SyncEnabled() {
		if c.Backend.ClientID == "" || c.Backend.ClientSecret == "" {
			return errors.New("backend.client_id and backend.client_secret are required when backend.base_url is set")
		}
	} else if c.Backend.ClientID != "" || c.Backend.ClientSecret != "" {
		return errors.New("backend.base_url is required when backend credentials are set")
	}

	if c.Replay.Speedup < 0 {
		return fmt.Errorf("replay.speedup must not be negative, got %v", c.Replay.Speedup)
	}

	return nil
}

// SyncEnabled reports whether a sync backend is configured.
func (c *Config) SyncEnabled() bool {
	return c.Backend.BaseURL != ""
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".fitlog", "config.json"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".fitlog"), nil
}
