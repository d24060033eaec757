// Package snake implements the grid snake game: a tick-driven engine that
// moves and grows the snake, detects collisions, and places food and hazards.
//
// The engine is pure. Scheduling, input translation, and drawing to a
// terminal live in the platform packages, which talk to the engine through
// SetDirection, Tick, and Snapshot.
package snake

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Origin is where the snake starts each round, clamped into small grids.
var Origin = core.Cell{X: 2, Y: 2}

var (
	// ErrInvalidGrid is returned for non-positive grid dimensions.
	ErrInvalidGrid = errors.New("grid dimensions must be positive")
	// ErrTooManyHazards is returned when hazards cannot fit beside the snake.
	ErrTooManyHazards = errors.New("hazard count exceeds free cells")
)

// freeSpawner is implemented by spawners that can place a cell outside
// excluded regardless of their overlap policy. Hazards use it when present.
type freeSpawner interface {
	SpawnFree(width, height int, excluded core.CellSet) core.Cell
}

// Option configures an Engine.
type Option func(*Engine)

// WithBlockReversal makes Tick ignore a pending direction that points
// straight back into the neck. Off by default.
func WithBlockReversal(block bool) Option {
	return func(e *Engine) {
		e.blockReversal = block
	}
}

// Engine owns the rules of a round. It keeps no per-round data, so one
// Engine can drive any number of independent States.
type Engine struct {
	spawner       Spawner
	blockReversal bool
}

// NewEngine creates an engine that places food and hazards with spawner.
func NewEngine(spawner Spawner, opts ...Option) *Engine {
	e := &Engine{spawner: spawner}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Initialize builds a fresh round: a one-cell snake at Origin heading right,
// hazardCount hazards, and one food cell.
func (e *Engine) Initialize(width, height, hazardCount int) (*State, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("snake: grid %dx%d: %w", width, height, ErrInvalidGrid)
	}
	if hazardCount < 0 || hazardCount > width*height-1 {
		return nil, fmt.Errorf("snake: %d hazards on %dx%d grid: %w", hazardCount, width, height, ErrTooManyHazards)
	}

	start := core.Cell{
		X: core.Clamp(Origin.X, 0, width-1),
		Y: core.Clamp(Origin.Y, 0, height-1),
	}
	s := &State{
		width:     width,
		height:    height,
		hazardN:   hazardCount,
		snake:     []core.Cell{start},
		direction: core.DirRight,
		pending:   core.DirRight,
		hazards:   make(core.CellSet, hazardCount),
	}

	// Hazards avoid the starting body and each other under every policy;
	// only food follows the overlap policy.
	excluded := core.NewCellSet(start)
	for range hazardCount {
		h := e.placeHazard(width, height, excluded)
		s.hazards.Add(h)
		excluded.Add(h)
	}

	s.food = e.spawner.Spawn(width, height, s.occupied())
	return s, nil
}

func (e *Engine) placeHazard(width, height int, excluded core.CellSet) core.Cell {
	if fs, ok := e.spawner.(freeSpawner); ok {
		return fs.SpawnFree(width, height, excluded)
	}
	return e.spawner.Spawn(width, height, excluded)
}

// Restart starts a new round with the same grid and hazard count as s.
// The returned state shares nothing with s.
func (e *Engine) Restart(s *State) (*State, error) {
	return e.Initialize(s.width, s.height, s.hazardN)
}

// SetDirection records d as the direction for the next tick. Reversal is
// allowed unless the engine was built WithBlockReversal.
func (e *Engine) SetDirection(s *State, d core.Direction) {
	if s.over {
		return
	}
	s.pending = d
}

// Tick advances the round by one step and returns s. Once the round is over
// Tick is a no-op.
func (e *Engine) Tick(s *State) *State {
	if s.over {
		return s
	}

	dir := s.pending
	if e.blockReversal && len(s.snake) > 1 && dir == s.direction.Opposite() {
		dir = s.direction
		s.pending = dir
	}
	s.direction = dir

	newHead := s.snake[0].Add(dir.Delta())

	if newHead == s.food {
		s.snake = append([]core.Cell{newHead}, s.snake...)
		s.food = e.spawner.Spawn(s.width, s.height, s.occupied())
	} else {
		copy(s.snake[1:], s.snake[:len(s.snake)-1])
		s.snake[0] = newHead
	}
	s.ticks++

	// Collisions are judged against the body after the move.
	switch {
	case !newHead.In(s.width, s.height):
		s.endRound(CauseWall)
	case s.bitesSelf():
		s.endRound(CauseSelf)
	case s.hazards.Has(newHead):
		s.endRound(CauseHazard)
	}

	return s
}

func (s *State) bitesSelf() bool {
	head := s.snake[0]
	for _, c := range s.snake[1:] {
		if c == head {
			return true
		}
	}
	return false
}

func (s *State) endRound(c Cause) {
	s.over = true
	s.cause = c
}
