package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-simulate a journaled round",
	Long: `Rebuild a journaled round from its seed and inputs and print the final
board. The id may be any unique prefix of the round ID shown by 'snake rounds'.

The replay fails if it does not end after the same number of ticks with the
same cause as the journal says.

Examples:
  snake replay 3f2a9c1e`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	store, err := openJournal(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	return replayRound(store, args[0])
}

func replayRound(store *storage.Store, id string) error {
	rec, err := store.RecordByID(id)
	if err != nil {
		return err
	}

	snap, err := snake.Replay(rec)
	if err != nil {
		return fmt.Errorf("round %s: %w", rec.ID, err)
	}

	fmt.Printf("Round %s (%s, seed %d, %d inputs)\n", rec.ID, rec.Variant, rec.Seed, len(rec.Inputs))
	fmt.Printf("Started %s, %s\n", rec.StartedAt.Local().Format("2006-01-02 15:04:05"), rec.Cause.Describe())
	fmt.Println()
	fmt.Println(snap.String())
	return nil
}
