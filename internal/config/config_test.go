package config

import (
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Athlete.WeightKg != 70 {
		t.Errorf("Athlete.WeightKg = %v, want 70", cfg.Athlete.WeightKg)
	}
	if cfg.Athlete.HeightCm != 175 {
		t.Errorf("Athlete.HeightCm = %v, want 175", cfg.Athlete.HeightCm)
	}

	if cfg.Display.DistanceUnit != "km" {
		t.Errorf("Display.DistanceUnit = %q, want %q", cfg.Display.DistanceUnit, "km")
	}
	if cfg.Display.PaceUnit != "min/km" {
		t.Errorf("Display.PaceUnit = %q, want %q", cfg.Display.PaceUnit, "min/km")
	}

	// Backend is disabled by default
	if cfg.Backend.BaseURL != "" || cfg.SyncEnabled() {
		t.Error("sync should be disabled by default")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
		errContains string
	}{
		{
			name:        "empty config is valid",
			config:      Config{},
			expectError: false,
		},
		{
			name:        "defaults are valid",
			config:      DefaultConfig(),
			expectError: false,
		},
		{
			name: "full backend config is valid",
			config: Config{
				Backend: BackendConfig{
					BaseURL:      "https://sync.example.com",
					ClientID:     "12345",
					ClientSecret: "abc123secret",
				},
			},
			expectError: false,
		},
		{
			name: "backend url without credentials",
			config: Config{
				Backend: BackendConfig{BaseURL: "https://sync.example.com"},
			},
			expectError: true,
			errContains: "client_id",
		},
		{
			name: "backend credentials without url",
			config: Config{
				Backend: BackendConfig{ClientID: "12345", ClientSecret: "abc123secret"},
			},
			expectError: true,
			errContains: "base_url",
		},
		{
			name: "negative weight",
			config: Config{
				Athlete: AthleteConfig{WeightKg: -1},
			},
			expectError: true,
			errContains: "weight_kg",
		},
		{
			name: "bad distance unit",
			config: Config{
				Display: DisplayConfig{DistanceUnit: "furlongs"},
			},
			expectError: true,
			errContains: "distance_unit",
		},
		{
			name: "bad pace unit",
			config: Config{
				Display: DisplayConfig{PaceUnit: "min/furlong"},
			},
			expectError: true,
			errContains: "pace_unit",
		},
		{
			name: "negative replay speedup",
			config: Config{
				Replay: ReplayConfig{Speedup: -2},
			},
			expectError: true,
			errContains: "speedup",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.expectError {
				if err == nil {
					t.Error("expected error, got nil")
				} else if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		})
	}
}

func TestSyncEnabled(t *testing.T) {
	cfg := Config{}
	if cfg.SyncEnabled() {
		t.Error("empty backend should not enable sync")
	}
	cfg.Backend.BaseURL = "https://sync.example.com"
	if !cfg.SyncEnabled() {
		t.Error("base URL should enable sync")
	}
}
