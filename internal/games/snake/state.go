package snake

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Cause records why a round ended.
type Cause string

const (
	CauseNone   Cause = ""
	CauseWall   Cause = "wall"
	CauseSelf   Cause = "self"
	CauseHazard Cause = "hazard"
)

// Describe returns a short sentence for the game over overlay.
func (c Cause) Describe() string {
	switch c {
	case CauseWall:
		return "Hit the wall"
	case CauseSelf:
		return "Bit yourself"
	case CauseHazard:
		return "Hit a hazard"
	default:
		return ""
	}
}

// State is one round of the game. Only the Engine mutates it; everyone else
// reads it through Snapshot or the accessors.
type State struct {
	width   int
	height  int
	hazardN int // requested hazard count, kept for Restart

	snake     []core.Cell // Head at index 0
	direction core.Direction
	pending   core.Direction // Read at the start of the next tick
	food      core.Cell
	hazards   core.CellSet

	over  bool
	cause Cause
	ticks int
}

// Width returns the grid width in cells.
func (s *State) Width() int { return s.width }

// Height returns the grid height in cells.
func (s *State) Height() int { return s.height }

// Head returns the first body cell.
func (s *State) Head() core.Cell { return s.snake[0] }

// Len returns the body length.
func (s *State) Len() int { return len(s.snake) }

// Direction returns the direction used by the most recent tick.
func (s *State) Direction() core.Direction { return s.direction }

// Pending returns the direction the next tick will use.
func (s *State) Pending() core.Direction { return s.pending }

// Food returns the current food cell.
func (s *State) Food() core.Cell { return s.food }

// IsOver reports whether the round has reached GameOver.
func (s *State) IsOver() bool { return s.over }

// Cause returns why the round ended, or CauseNone while running.
func (s *State) Cause() Cause { return s.cause }

// Ticks returns how many ticks advanced this round.
func (s *State) Ticks() int { return s.ticks }

// occupied returns the body cells plus hazards.
func (s *State) occupied() core.CellSet {
	set := s.hazards.Clone()
	for _, c := range s.snake {
		set.Add(c)
	}
	return set
}

// Snapshot is a read-only copy of a State for renderers and spectators.
type Snapshot struct {
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	Snake     []core.Cell    `json:"snake"`
	Food      core.Cell      `json:"food"`
	Hazards   []core.Cell    `json:"hazards"`
	Direction core.Direction `json:"direction"`
	Over      bool           `json:"over"`
	Cause     Cause          `json:"cause,omitempty"`
	Ticks     int            `json:"ticks"`
}

// Snapshot copies the state. The result shares no memory with s.
func (s *State) Snapshot() Snapshot {
	body := make([]core.Cell, len(s.snake))
	copy(body, s.snake)
	return Snapshot{
		Width:     s.width,
		Height:    s.height,
		Snake:     body,
		Food:      s.food,
		Hazards:   s.hazards.Sorted(),
		Direction: s.direction,
		Over:      s.over,
		Cause:     s.cause,
		Ticks:     s.ticks,
	}
}

// Head returns the first body cell of the snapshot.
func (s Snapshot) Head() core.Cell {
	if len(s.Snake) == 0 {
		return core.Cell{}
	}
	return s.Snake[0]
}

// String draws the board as ASCII: O head, o body, * food, X hazard.
// Cells outside the grid (a head that left the board) are not drawn.
func (s Snapshot) String() string {
	grid := make([][]byte, s.Height)
	for y := range grid {
		grid[y] = []byte(strings.Repeat(".", s.Width))
	}
	put := func(c core.Cell, b byte) {
		if c.In(s.Width, s.Height) {
			grid[c.Y][c.X] = b
		}
	}

	for _, h := range s.Hazards {
		put(h, 'X')
	}
	put(s.Food, '*')
	for i := len(s.Snake) - 1; i >= 0; i-- {
		if i == 0 {
			put(s.Snake[i], 'O')
		} else {
			put(s.Snake[i], 'o')
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "tick=%d len=%d dir=%s over=%v", s.Ticks, len(s.Snake), s.Direction, s.Over)
	if s.Cause != CauseNone {
		fmt.Fprintf(&b, " cause=%s", s.Cause)
	}
	for _, row := range grid {
		b.WriteByte('\n')
		b.Write(row)
	}
	return b.String()
}
