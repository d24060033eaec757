package core

import "time"

// RuntimeConfig contains everything a game needs at Reset.
// Screen size comes from the terminal; the rest comes from the loaded config
// after CLI overrides.
type RuntimeConfig struct {
	ScreenW int // Screen width in characters
	ScreenH int // Screen height in characters

	GridW    int // Grid width in cells
	GridH    int // Grid height in cells
	CellSize int // Terminal columns per grid cell (rendering only)
	Hazards  int // Hazard count for variants that place hazards

	TickInterval  time.Duration // Time between simulation ticks
	Seed          int64         // RNG seed for deterministic rounds
	AvoidOverlap  bool          // Spawn avoids occupied cells when possible
	BlockReversal bool          // Ignore direct reversals into the neck
}

// DefaultConfig returns a RuntimeConfig matching the classic 20x20 board.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:      80,
		ScreenH:      24,
		GridW:        20,
		GridH:        20,
		CellSize:     2,
		Hazards:      8,
		TickInterval: 200 * time.Millisecond,
		Seed:         0, // 0 means use current time in platform layer
		AvoidOverlap: true,
	}
}

// GameState is the coarse status a game reports to the platform.
type GameState struct {
	Length   int  // Current snake length
	GameOver bool // Whether the round has ended
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
