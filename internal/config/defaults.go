package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/croissant-rush/internal/core"
)

//go:embed defaults/croissant.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in kitchen configuration.
func DefaultConfig() Config {
	return Config{
		Session: SessionConfig{
			Duration: 90 * time.Second,
		},
		Cadence: CadenceConfig{
			Frame:     30 * time.Millisecond,
			Countdown: 20 * time.Millisecond,
			Render:    100 * time.Millisecond,
		},
		Field: FieldConfig{
			Width:  440,
			Height: 440,
		},
		Food: FoodConfig{
			Width:    48,
			Height:   40,
			Speed:    20,
			MaxX:     392,
			MaxY:     400,
			SpawnMax: 392,
		},
		Oven: OvenConfig{
			TriggerMaxY: 40,
			Grace:       2 * time.Second,
			HandoffX:    180,
			HandoffY:    0,
		},
		Hazard: HazardConfig{
			Width:     40,
			Height:    40,
			SpawnMaxX: 400,
			SpawnMinY: 61,
			SpawnMaxY: 400,
			Order:     SpawnThenEvict,
		},
		Stations: StationsConfig{
			Serve: core.Zone{MinX: 39, MaxX: 340, MinY: 350, MaxY: 440},
			Trash: core.Zone{MinX: 350, MaxX: 440, MinY: 110, MaxY: 300},
		},
		Scoring: ScoringConfig{
			BurnPenalty: 150,
			RawPenalty:  100,
		},
		Difficulty: DifficultyTable{
			Easy: DifficultyConfig{HazardCap: 2, SpawnInterval: 4 * time.Second},
			Hard: DifficultyConfig{HazardCap: 5, SpawnInterval: 2 * time.Second},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
