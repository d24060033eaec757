// Package config provides YAML-based configuration loading for the snake
// game: grid size, hazards, tick timing, spawn rules, and storage location.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// SnakeConfig contains all configuration for the snake game.
type SnakeConfig struct {
	Grid    GridConfig    `yaml:"grid"`
	Hazards HazardsConfig `yaml:"hazards"`
	Timing  TimingConfig  `yaml:"timing"`
	Rules   RulesConfig   `yaml:"rules"`
	Storage StorageConfig `yaml:"storage"`
}

// GridConfig defines the board dimensions.
type GridConfig struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	CellSize int `yaml:"cell_size"` // Terminal columns per cell
}

// HazardsConfig defines hazard placement.
type HazardsConfig struct {
	Count int `yaml:"count"`
}

// TimingConfig defines the simulation clock.
type TimingConfig struct {
	TickInterval time.Duration `yaml:"tick_interval"`
}

// RulesConfig defines optional rule switches.
type RulesConfig struct {
	SpawnPolicy   string `yaml:"spawn_policy"`
	BlockReversal bool   `yaml:"block_reversal"`
}

// StorageConfig defines where the round journal lives.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks that the config describes a playable round.
func (c SnakeConfig) Validate() error {
	switch {
	case c.Grid.Width <= 0 || c.Grid.Height <= 0:
		return fmt.Errorf("config: grid %dx%d must be positive: %w", c.Grid.Width, c.Grid.Height, ErrInvalid)
	case c.Grid.CellSize <= 0:
		return fmt.Errorf("config: cell_size %d must be positive: %w", c.Grid.CellSize, ErrInvalid)
	case c.Hazards.Count < 0 || c.Hazards.Count > c.Grid.Width*c.Grid.Height-1:
		return fmt.Errorf("config: %d hazards do not fit a %dx%d grid: %w",
			c.Hazards.Count, c.Grid.Width, c.Grid.Height, ErrInvalid)
	case c.Timing.TickInterval <= 0:
		return fmt.Errorf("config: tick_interval %s must be positive: %w", c.Timing.TickInterval, ErrInvalid)
	}

	if _, err := snake.ParseSpawnPolicy(c.Rules.SpawnPolicy); err != nil {
		return fmt.Errorf("config: %v: %w", err, ErrInvalid)
	}
	return nil
}

// Runtime converts the file config into the values a game needs at Reset.
// Screen size keeps the core defaults until the platform measures the terminal.
func (c SnakeConfig) Runtime(seed int64) core.RuntimeConfig {
	rc := core.DefaultConfig()
	rc.GridW = c.Grid.Width
	rc.GridH = c.Grid.Height
	rc.CellSize = c.Grid.CellSize
	rc.Hazards = c.Hazards.Count
	rc.TickInterval = c.Timing.TickInterval
	rc.Seed = seed
	rc.AvoidOverlap = c.Rules.SpawnPolicy != string(snake.PolicyUniform)
	rc.BlockReversal = c.Rules.BlockReversal
	return rc
}
