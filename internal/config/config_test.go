package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("embedded defaults differ from DefaultConfig():\n%+v\n%+v", cfg, DefaultConfig())
	}
}

func TestDefaultDifficulties(t *testing.T) {
	tests := []struct {
		difficulty Difficulty
		cap        int
		interval   time.Duration
	}{
		{DifficultyEasy, 2, 4 * time.Second},
		{DifficultyHard, 5, 2 * time.Second},
	}

	cfg := DefaultConfig()
	for _, tc := range tests {
		t.Run(string(tc.difficulty), func(t *testing.T) {
			got := cfg.Difficulty.For(tc.difficulty)
			if got.HazardCap != tc.cap {
				t.Errorf("HazardCap = %d, expected %d", got.HazardCap, tc.cap)
			}
			if got.SpawnInterval != tc.interval {
				t.Errorf("SpawnInterval = %v, expected %v", got.SpawnInterval, tc.interval)
			}
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		input    string
		expected Difficulty
		wantErr  bool
	}{
		{"easy", DifficultyEasy, false},
		{"HARD", DifficultyHard, false},
		{" Hard ", DifficultyHard, false},
		{"", DifficultyEasy, false},
		{"nightmare", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseDifficulty(tc.input)
			if tc.wantErr {
				if !errors.Is(err, ErrUnknownDifficulty) {
					t.Errorf("ParseDifficulty(%q) error = %v, expected ErrUnknownDifficulty", tc.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDifficulty(%q) failed: %v", tc.input, err)
			}
			if got != tc.expected {
				t.Errorf("ParseDifficulty(%q) = %q, expected %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestParsePartialOverride(t *testing.T) {
	data := []byte(`
session:
  duration: 45s
difficulty:
  hard:
    hazard_cap: 7
hazard:
  order: evict_then_spawn
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if cfg.Session.Duration != 45*time.Second {
		t.Errorf("Session.Duration = %v, expected 45s", cfg.Session.Duration)
	}
	if cfg.Difficulty.Hard.HazardCap != 7 {
		t.Errorf("Hard.HazardCap = %d, expected 7", cfg.Difficulty.Hard.HazardCap)
	}
	if cfg.Difficulty.Hard.SpawnInterval != 2*time.Second {
		t.Errorf("Hard.SpawnInterval = %v, default should survive", cfg.Difficulty.Hard.SpawnInterval)
	}
	if cfg.Hazard.Order != EvictThenSpawn {
		t.Errorf("Hazard.Order = %q", cfg.Hazard.Order)
	}
	if cfg.Cadence.Frame != 30*time.Millisecond {
		t.Errorf("Cadence.Frame = %v, default should survive", cfg.Cadence.Frame)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero duration", func(c *Config) { c.Session.Duration = 0 }},
		{"zero frame cadence", func(c *Config) { c.Cadence.Frame = 0 }},
		{"negative countdown cadence", func(c *Config) { c.Cadence.Countdown = -time.Millisecond }},
		{"empty field", func(c *Config) { c.Field.Width = 0 }},
		{"empty hazard range", func(c *Config) { c.Hazard.SpawnMaxY = c.Hazard.SpawnMinY }},
		{"unknown order", func(c *Config) { c.Hazard.Order = "random" }},
		{"negative cap", func(c *Config) { c.Difficulty.Easy.HazardCap = -1 }},
		{"zero spawn interval", func(c *Config) { c.Difficulty.Hard.SpawnInterval = 0 }},
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, expected an error")
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kitchen.yaml")
	if err := os.WriteFile(path, []byte("session:\n  duration: 10s\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Session.Duration != 10*time.Second {
		t.Errorf("Session.Duration = %v, expected 10s", cfg.Session.Duration)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("session: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("cadence:\n  frame: 0s\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{filepath.Join(dir, "missing.yaml"), bad, invalid} {
		if _, err := Load(path); err == nil {
			t.Errorf("Load(%s) = nil error", filepath.Base(path))
		}
	}
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("Load(\"\") without files should return the defaults")
	}
}

func TestLoadPrefersUserFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	dir := filepath.Join(home, ".croissant")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, fileName), []byte("food:\n  speed: 10\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Food.Speed != 10 {
		t.Errorf("Food.Speed = %d, expected the user file's 10", cfg.Food.Speed)
	}
}
