package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

var flagLogFile string

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing snake. Without a variant a picker menu is shown.

Controls:
  Arrows/WASD - Steer
  P           - Pause
  R           - Restart (after game over)
  Esc/B       - Back to menu (paused or game over)
  Ctrl+S      - Save a screenshot
  Q/Ctrl+C    - Quit

Examples:
  snake play
  snake play classic
  snake play hazards --hazards 20
  snake play classic --seed 42 --tick 120ms`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (the screen is busy while playing)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	variant := ""
	if len(args) == 1 {
		variant = args[0]
		if _, ok := registry.Lookup(variant); !ok {
			return fmt.Errorf("unknown variant %q (run 'snake variants' to see them)", variant)
		}
	}

	cfg, _, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := playLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	runtime := cfg.Runtime(flagSeed)
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		runtime.ScreenW = w
		runtime.ScreenH = h
	}

	session := tui.SessionConfig{
		Runtime: runtime,
		Logger:  logger,
		Variant: variant,
	}

	store, err := openJournal(cfg)
	if err != nil {
		// Rounds still play, they just are not journaled.
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	} else {
		defer store.Close()
		session.Saver = store
	}

	return tui.Run(session)
}

// playLogger logs to --log-file when given and discards otherwise.
func playLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}, nil
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("--log-level: %w", err)
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "snake",
		Level:           level,
	})
	return logger, func() { f.Close() }, nil
}
