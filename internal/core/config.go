package core

import "time"

// RuntimeConfig is handed to the game on Reset.
type RuntimeConfig struct {
	ScreenW int           // Screen width in characters
	ScreenH int           // Screen height in characters
	Tick    time.Duration // Interval between simulation ticks
	Seed    int64         // RNG seed; 0 lets the platform pick one
}

// DefaultTick is the render/poll cadence.
const DefaultTick = 40 * time.Millisecond

// DefaultConfig returns a RuntimeConfig sized for a classic 80x24 terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Tick:    DefaultTick,
	}
}
