// Package loop drives a game on a fixed interval without a terminal.
// The Runner is the only thing that schedules ticks; it stops itself once a
// step reports the round is over, and callers stop it early through ctx.
package loop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// ErrInvalidInterval is returned for a non-positive tick interval.
var ErrInvalidInterval = errors.New("tick interval must be positive")

// Stepper advances a round by one tick. registry.Game satisfies it.
type Stepper interface {
	Step(in core.InputFrame) core.StepResult
}

// InputFunc supplies the input frame for the next tick.
type InputFunc func() core.InputFrame

// ObserveFunc is called after every step.
type ObserveFunc func(core.StepResult)

// Runner steps a game every interval.
type Runner struct {
	interval time.Duration
	logger   *log.Logger
}

// New creates a runner. A nil logger discards log output.
func New(interval time.Duration, logger *log.Logger) (*Runner, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("loop: %s: %w", interval, ErrInvalidInterval)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{interval: interval, logger: logger}, nil
}

// Interval returns the time between ticks.
func (r *Runner) Interval() time.Duration {
	return r.interval
}

// Run steps g until a step reports GameOver or ctx is done. The next tick is
// armed only after the previous result has been checked, so no step runs
// after the round ends. It returns the last result and ctx.Err() on
// cancellation.
func (r *Runner) Run(ctx context.Context, g Stepper, input InputFunc, observe ObserveFunc) (core.StepResult, error) {
	var last core.StepResult
	steps := 0

	timer := time.NewTimer(r.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Debug("loop cancelled", "steps", steps)
			return last, ctx.Err()
		case <-timer.C:
		}

		in := core.NewInputFrame()
		if input != nil {
			in = input()
		}
		last = g.Step(in)
		steps++
		if observe != nil {
			observe(last)
		}

		if last.State.GameOver {
			r.logger.Debug("loop finished", "steps", steps, "length", last.State.Length)
			return last, nil
		}
		if err := ctx.Err(); err != nil {
			r.logger.Debug("loop cancelled", "steps", steps)
			return last, err
		}
		timer.Reset(r.interval)
	}
}
