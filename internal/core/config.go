package core

import "time"

// RuntimeConfig contains configuration passed to the engine and front ends.
type RuntimeConfig struct {
	ScreenW      int           // Screen width in characters
	ScreenH      int           // Screen height in characters
	GridSize     int           // Side of the square board in cells
	TickInterval time.Duration // Time between snake moves
	Seed         int64         // RNG seed for deterministic food placement
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:      80,
		ScreenH:      24,
		GridSize:     20,
		TickInterval: 150 * time.Millisecond,
		Seed:         0, // 0 means use current time in platform layer
	}
}
