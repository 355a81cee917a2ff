package core

// RuntimeConfig carries the terminal-facing settings of a run.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Input sampling rate of the front end, per second
	Seed     int64 // RNG seed for deterministic sessions; 0 picks one from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 33,
		Seed:     0,
	}
}
