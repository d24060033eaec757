// snake is a terminal snake game with a round journal and replays.
//
// Usage:
//
//	snake play [variant]     - Play a variant (menu if omitted)
//	snake variants           - List available variants
//	snake serve              - Start SSH server for remote play
//	snake watch              - Serve autopilot rounds to WebSocket spectators
//	snake rounds             - Browse journaled rounds
//	snake replay <id>        - Re-simulate a journaled round
//	snake config             - Print the effective configuration
//
// Global flags:
//
//	--config <path>   - Config file (default: ~/.snake/config.yaml, ./configs/snake.yaml)
//	--db <path>       - Round journal path (default from config: ~/.snake/rounds.db)
//	--seed <value>    - RNG seed for reproducible rounds
//	--log-level <lvl> - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	// Global flags
	flagConfig        string
	flagDBPath        string
	flagLogLevel      string
	flagSeed          int64
	flagWidth         int
	flagHeight        int
	flagHazards       int
	flagTick          time.Duration
	flagSpawnPolicy   string
	flagBlockReversal bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - a tick-driven snake game for your terminal",
	Long: `Snake is a grid snake game for the terminal. Every finished round is
journaled with its seed and inputs so it can be replayed exactly.

Available commands:
  play      - Play a variant
  variants  - Show all variants
  serve     - Start SSH server for remote play
  watch     - Stream autopilot rounds over WebSocket
  rounds    - Browse journaled rounds
  replay    - Re-simulate a journaled round
  config    - Print the effective configuration

Examples:
  snake play
  snake play hazards --width 30 --height 15
  snake watch --addr :8080
  snake replay 3f2a9c1e`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to config YAML")
	pf.StringVar(&flagDBPath, "db", "", "Path to round journal (overrides config)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.IntVar(&flagWidth, "width", 0, "Grid width in cells (overrides config)")
	pf.IntVar(&flagHeight, "height", 0, "Grid height in cells (overrides config)")
	pf.IntVar(&flagHazards, "hazards", 0, "Hazard count for the hazards variant (overrides config)")
	pf.DurationVar(&flagTick, "tick", 0, "Time between ticks, e.g. 150ms (overrides config)")
	pf.StringVar(&flagSpawnPolicy, "spawn-policy", "", "Spawn policy: avoid or uniform (overrides config)")
	pf.BoolVar(&flagBlockReversal, "block-reversal", false, "Ignore direct reversals into the neck")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(variantsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(roundsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// loadSettings loads the config file and applies the flags the user set.
func loadSettings(cmd *cobra.Command) (config.SnakeConfig, string, error) {
	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		return cfg, source, err
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Grid.Width = flagWidth
	}
	if flags.Changed("height") {
		cfg.Grid.Height = flagHeight
	}
	if flags.Changed("hazards") {
		cfg.Hazards.Count = flagHazards
	}
	if flags.Changed("tick") {
		cfg.Timing.TickInterval = flagTick
	}
	if flags.Changed("spawn-policy") {
		cfg.Rules.SpawnPolicy = flagSpawnPolicy
	}
	if flags.Changed("block-reversal") {
		cfg.Rules.BlockReversal = flagBlockReversal
	}
	if flags.Changed("db") {
		cfg.Storage.Path = flagDBPath
	}

	if err := cfg.Validate(); err != nil {
		return cfg, source, err
	}
	return cfg, source, nil
}

// newLogger returns the stderr logger used by the long-running commands.
func newLogger(prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("--log-level: %w", err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// openJournal opens the round journal named by cfg.
func openJournal(cfg config.SnakeConfig) (*storage.Store, error) {
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("cannot open round journal: %w", err)
	}
	return store, nil
}
