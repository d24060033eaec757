package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/spectate"
)

var (
	flagWatchAddr    string
	flagWatchVariant string
	flagWatchPause   time.Duration
	flagWatchJournal bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream autopilot rounds to WebSocket spectators",
	Long: `Run autopilot rounds back to back and publish every tick as a JSON
snapshot to WebSocket clients connected at /ws.

Examples:
  snake watch
  snake watch --addr :9000 --variant classic
  snake watch --tick 80ms --journal`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&flagWatchAddr, "addr", ":8080", "HTTP listen address")
	watchCmd.Flags().StringVar(&flagWatchVariant, "variant", string(snake.VariantHazards), "Variant to play")
	watchCmd.Flags().DurationVar(&flagWatchPause, "pause", 2*time.Second, "Delay before the next round starts")
	watchCmd.Flags().BoolVar(&flagWatchJournal, "journal", false, "Journal autopilot rounds")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, source, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger("snake-watch")
	if err != nil {
		return err
	}
	logger.Debug("loaded config", "source", source)

	created, err := registry.Create(flagWatchVariant)
	if err != nil {
		return err
	}
	game, ok := created.(*snake.Game)
	if !ok {
		return fmt.Errorf("variant %q cannot be watched", flagWatchVariant)
	}

	runtime := cfg.Runtime(flagSeed)
	if runtime.Seed == 0 {
		runtime.Seed = time.Now().UnixNano()
	}

	hub := spectate.NewHub(logger)
	feedCfg := spectate.FeedConfig{
		Game:   game,
		Config: runtime,
		Pause:  flagWatchPause,
		Logger: logger.With("variant", flagWatchVariant),
	}
	if flagWatchJournal {
		store, err := openJournal(cfg)
		if err != nil {
			return err
		}
		defer store.Close()
		feedCfg.Saver = store
	}

	feed, err := spectate.NewFeed(hub, feedCfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	server := &http.Server{
		Addr:              flagWatchAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()
	feedErr := make(chan error, 1)
	go func() {
		feedErr <- feed.Run(ctx)
	}()

	logger.Info("serving spectators", "address", flagWatchAddr, "path", "/ws")

	feedDone := false
	select {
	case <-ctx.Done():
		logger.Info("shutting down...")
	case err = <-serveErr:
	case err = <-feedErr:
		feedDone = true
	}
	stop()

	// The feed may be journaling a round; let it finish before the store closes.
	if !feedDone {
		if ferr := <-feedErr; err == nil {
			err = ferr
		}
	}

	hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil && err == nil {
		err = shutdownErr
	}
	return err
}
