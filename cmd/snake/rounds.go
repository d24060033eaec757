package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagRoundsLimit int
	flagRoundsPlain bool
)

var roundsCmd = &cobra.Command{
	Use:   "rounds",
	Short: "Browse journaled rounds",
	Long: `Show the most recent journaled rounds.

In a terminal an interactive browser opens; press Enter on a round to
replay it. With --plain, or when stdout is not a terminal, a table is
printed instead.

Examples:
  snake rounds
  snake rounds --plain --limit 50`,
	Args: cobra.NoArgs,
	RunE: runRounds,
}

func init() {
	roundsCmd.Flags().IntVar(&flagRoundsLimit, "limit", 20, "Rounds to print with --plain")
	roundsCmd.Flags().BoolVar(&flagRoundsPlain, "plain", false, "Print a table instead of the browser")
}

func runRounds(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	store, err := openJournal(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	fd := int(os.Stdout.Fd())
	if flagRoundsPlain || !term.IsTerminal(fd) {
		return printRounds(store)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(fd); termErr == nil {
		width, height = w, h
	}

	id, err := tui.RunRounds(store, width, height)
	if err != nil || id == "" {
		return err
	}
	return replayRound(store, id)
}

func printRounds(store *storage.Store) error {
	rounds, err := store.RecentRecords(flagRoundsLimit)
	if err != nil {
		return err
	}
	if len(rounds) == 0 {
		fmt.Println("No rounds journaled yet.")
		fmt.Println()
		fmt.Println("Play 'snake play' and finish a round to journal it.")
		return nil
	}

	fmt.Printf("  %-8s  %-8s  %-7s  %6s  %-6s  %s\n", "Round", "Variant", "Grid", "Ticks", "Cause", "Started")
	fmt.Printf("  %-8s  %-8s  %-7s  %6s  %-6s  %s\n", "-----", "-------", "----", "-----", "-----", "-------")
	for _, r := range rounds {
		fmt.Printf("  %-8s  %-8s  %-7s  %6d  %-6s  %s\n",
			shortID(r.ID), r.Variant, fmt.Sprintf("%dx%d", r.Width, r.Height),
			r.Ticks, r.Cause, r.StartedAt.Local().Format("2006-01-02 15:04"))
	}

	counts, err := store.CauseCounts("")
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("All rounds: wall %d, self %d, hazard %d\n",
		counts[snake.CauseWall], counts[snake.CauseSelf], counts[snake.CauseHazard])
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
