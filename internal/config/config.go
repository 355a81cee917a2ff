// Package config provides YAML-based kitchen configuration loading and the
// difficulty presets for Croissant Rush.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/croissant-rush/internal/core"
)

// Config contains every tunable of a kitchen session.
type Config struct {
	Session    SessionConfig   `yaml:"session"`
	Cadence    CadenceConfig   `yaml:"cadence"`
	Field      FieldConfig     `yaml:"field"`
	Food       FoodConfig      `yaml:"food"`
	Oven       OvenConfig      `yaml:"oven"`
	Hazard     HazardConfig    `yaml:"hazard"`
	Stations   StationsConfig  `yaml:"stations"`
	Scoring    ScoringConfig   `yaml:"scoring"`
	Difficulty DifficultyTable `yaml:"difficulty"`
}

// SessionConfig defines the length of a round.
type SessionConfig struct {
	Duration time.Duration `yaml:"duration"`
}

// CadenceConfig defines how often each periodic activity runs.
type CadenceConfig struct {
	Frame     time.Duration `yaml:"frame"`     // movement, collisions, stations
	Countdown time.Duration `yaml:"countdown"` // countdown decrement
	Render    time.Duration `yaml:"render"`    // snapshot publication
}

// FieldConfig defines the play field in world units.
type FieldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// FoodConfig defines the croissant's box, speed and movement bounds.
type FoodConfig struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	Speed    int `yaml:"speed"`     // displacement per frame per held direction
	MaxX     int `yaml:"max_x"`     // movement clamp
	MaxY     int `yaml:"max_y"`     // movement clamp
	SpawnMax int `yaml:"spawn_max"` // spawn coordinates fall in [0, spawn_max)
}

// OvenConfig defines the oven trigger band and the burn grace period.
type OvenConfig struct {
	TriggerMaxY int           `yaml:"trigger_max_y"`
	Grace       time.Duration `yaml:"grace"` // PERFECT -> BURN delay
	HandoffX    int           `yaml:"handoff_x"`
	HandoffY    int           `yaml:"handoff_y"`
}

// EvictOrder selects how the hazard field enforces its cap.
type EvictOrder string

const (
	// SpawnThenEvict appends first and trims on the next frame, so the field
	// can be observed at cap+1 in between.
	SpawnThenEvict EvictOrder = "spawn_then_evict"
	// EvictThenSpawn trims before appending and never exceeds the cap.
	EvictThenSpawn EvictOrder = "evict_then_spawn"
)

// HazardConfig defines tomato hazard geometry and spawn bounds.
type HazardConfig struct {
	Width     int        `yaml:"width"`
	Height    int        `yaml:"height"`
	SpawnMaxX int        `yaml:"spawn_max_x"`
	SpawnMinY int        `yaml:"spawn_min_y"`
	SpawnMaxY int        `yaml:"spawn_max_y"`
	Order     EvictOrder `yaml:"order"`
}

// StationsConfig places the serving table and the trash can.
type StationsConfig struct {
	Serve core.Zone `yaml:"serve"`
	Trash core.Zone `yaml:"trash"`
}

// ScoringConfig defines the serve penalties. Rewards come from the food kind.
type ScoringConfig struct {
	BurnPenalty int `yaml:"burn_penalty"`
	RawPenalty  int `yaml:"raw_penalty"`
}

// DifficultyConfig is the per-difficulty hazard pressure.
type DifficultyConfig struct {
	HazardCap     int           `yaml:"hazard_cap"`
	SpawnInterval time.Duration `yaml:"spawn_interval"`
}

// DifficultyTable holds one DifficultyConfig per preset.
type DifficultyTable struct {
	Easy DifficultyConfig `yaml:"easy"`
	Hard DifficultyConfig `yaml:"hard"`
}

// Difficulty represents a named difficulty level.
type Difficulty string

const (
	DifficultyEasy Difficulty = "easy"
	DifficultyHard Difficulty = "hard"
)

// Difficulties lists the presets in menu order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyHard}

// ErrUnknownDifficulty is returned for names other than easy and hard.
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// ParseDifficulty maps a case-insensitive name to a preset.
// An empty name selects easy.
func ParseDifficulty(name string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", string(DifficultyEasy):
		return DifficultyEasy, nil
	case string(DifficultyHard):
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("config: %w %q (want easy or hard)", ErrUnknownDifficulty, name)
	}
}

// Title returns the display name of the difficulty.
func (d Difficulty) Title() string {
	switch d {
	case DifficultyEasy:
		return "Easy"
	case DifficultyHard:
		return "Hard"
	default:
		return string(d)
	}
}

// For returns the settings of the given preset. Unknown presets get easy.
func (t DifficultyTable) For(d Difficulty) DifficultyConfig {
	if d == DifficultyHard {
		return t.Hard
	}
	return t.Easy
}

// Validate reports the first setting that would make a session unplayable.
func (c Config) Validate() error {
	switch {
	case c.Session.Duration <= 0:
		return errors.New("config: session.duration must be positive")
	case c.Cadence.Frame <= 0, c.Cadence.Countdown <= 0, c.Cadence.Render <= 0:
		return errors.New("config: cadence intervals must be positive")
	case c.Field.Width <= 0 || c.Field.Height <= 0:
		return errors.New("config: field dimensions must be positive")
	case c.Food.Width <= 0 || c.Food.Height <= 0:
		return errors.New("config: food dimensions must be positive")
	case c.Food.SpawnMax <= 0:
		return errors.New("config: food.spawn_max must be positive")
	case c.Food.Speed < 0:
		return errors.New("config: food.speed must not be negative")
	case c.Oven.Grace < 0:
		return errors.New("config: oven.grace must not be negative")
	case c.Hazard.Width <= 0 || c.Hazard.Height <= 0:
		return errors.New("config: hazard dimensions must be positive")
	case c.Hazard.SpawnMaxX <= 0 || c.Hazard.SpawnMaxY <= c.Hazard.SpawnMinY:
		return errors.New("config: hazard spawn range is empty")
	case c.Hazard.Order != SpawnThenEvict && c.Hazard.Order != EvictThenSpawn:
		return fmt.Errorf("config: unknown hazard.order %q", c.Hazard.Order)
	}
	for _, d := range Difficulties {
		dc := c.Difficulty.For(d)
		if dc.HazardCap < 0 {
			return fmt.Errorf("config: difficulty.%s.hazard_cap must not be negative", d)
		}
		if dc.SpawnInterval <= 0 {
			return fmt.Errorf("config: difficulty.%s.spawn_interval must be positive", d)
		}
	}
	return nil
}
