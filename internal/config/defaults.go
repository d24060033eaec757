package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default snake configuration: the classic
// 20x20 board at five ticks per second.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: GridConfig{
			Width:    20,
			Height:   20,
			CellSize: 2,
		},
		Hazards: HazardsConfig{
			Count: 8,
		},
		Timing: TimingConfig{
			TickInterval: 200 * time.Millisecond,
		},
		Rules: RulesConfig{
			SpawnPolicy:   "avoid",
			BlockReversal: false,
		},
		Storage: StorageConfig{
			Path: "~/.snake/rounds.db",
		},
	}
}
