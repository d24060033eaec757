package spectate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/loop"
)

// Pilot picks the direction for the next tick.
type Pilot func(snake.Snapshot) core.Direction

// FeedConfig configures a Feed.
type FeedConfig struct {
	Game   *snake.Game
	Config core.RuntimeConfig
	Pilot  Pilot             // Defaults to the autopilot
	Saver  snake.RecordSaver // Optional journal for finished rounds
	Pause  time.Duration     // Delay before restarting a finished round
	Logger *log.Logger
}

// Feed plays rounds back to back and publishes every tick to a Hub.
type Feed struct {
	cfg    FeedConfig
	hub    *Hub
	runner *loop.Runner
	logger *log.Logger
}

// NewFeed creates a feed that ticks at cfg.Config.TickInterval.
func NewFeed(hub *Hub, cfg FeedConfig) (*Feed, error) {
	if cfg.Game == nil {
		return nil, errors.New("spectate: feed needs a game")
	}
	if cfg.Pilot == nil {
		cfg.Pilot = snake.NewAutopilot().Next
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	runner, err := loop.New(cfg.Config.TickInterval, logger)
	if err != nil {
		return nil, fmt.Errorf("spectate: %w", err)
	}

	return &Feed{cfg: cfg, hub: hub, runner: runner, logger: logger}, nil
}

// Run plays rounds until ctx is done. It returns nil on cancellation and
// an error only if a round cannot be started.
func (f *Feed) Run(ctx context.Context) error {
	g := f.cfg.Game
	if err := g.Reset(f.cfg.Config); err != nil {
		return fmt.Errorf("spectate: %w", err)
	}

	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)

	for {
		f.publish()

		_, err := f.runner.Run(ctx, g, f.input, func(core.StepResult) { f.publish() })
		if err != nil {
			return nil
		}
		f.finish()

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(f.cfg.Pause):
		}
		g.Step(restart)
		if err := g.Err(); err != nil {
			return fmt.Errorf("spectate: %w", err)
		}
	}
}

func (f *Feed) input() core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.ActionFor(f.cfg.Pilot(f.cfg.Game.Snapshot())))
	return in
}

func (f *Feed) publish() {
	rec := f.cfg.Game.Record()
	err := f.hub.Publish(Frame{
		Round:    rec.ID,
		Variant:  rec.Variant,
		Snapshot: f.cfg.Game.Snapshot(),
	})
	if err != nil {
		f.logger.Error("publish failed", "error", err)
	}
}

func (f *Feed) finish() {
	rec := f.cfg.Game.Record()
	f.logger.Info("round ended",
		"round", rec.ID,
		"cause", rec.Cause,
		"ticks", rec.Ticks,
		"length", f.cfg.Game.State().Length,
		"spectators", f.hub.Clients(),
	)

	if f.cfg.Saver == nil {
		return
	}
	if _, err := f.cfg.Saver.SaveRecord(rec); err != nil {
		f.logger.Warn("could not journal round", "round", rec.ID, "error", err)
	}
}
