package snake

import (
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func TestAutopilotAvoidsWall(t *testing.T) {
	snap := Snapshot{
		Width:     5,
		Height:    5,
		Snake:     []core.Cell{{X: 4, Y: 0}},
		Food:      core.Cell{X: 0, Y: 4},
		Direction: core.DirRight,
	}

	d := NewAutopilot().Next(snap)
	if d == core.DirRight || d == core.DirUp {
		t.Errorf("Next() = %s, steers into the wall", d)
	}
}

func TestAutopilotHeadsForFood(t *testing.T) {
	snap := Snapshot{
		Width:     10,
		Height:    10,
		Snake:     []core.Cell{{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 3, Y: 5}},
		Food:      core.Cell{X: 5, Y: 1},
		Direction: core.DirRight,
	}

	if d := NewAutopilot().Next(snap); d != core.DirUp {
		t.Errorf("Next() = %s, expected up toward food", d)
	}
}

func TestAutopilotAvoidsHazards(t *testing.T) {
	snap := Snapshot{
		Width:     10,
		Height:    10,
		Snake:     []core.Cell{{X: 5, Y: 5}},
		Food:      core.Cell{X: 9, Y: 5},
		Hazards:   []core.Cell{{X: 6, Y: 5}},
		Direction: core.DirRight,
	}

	if d := NewAutopilot().Next(snap); d == core.DirRight {
		t.Error("Next() steered into a hazard")
	}
}

func TestAutopilotMayFollowTail(t *testing.T) {
	// Boxed in on three sides; only the cell the tail vacates is open.
	snap := Snapshot{
		Width:  3,
		Height: 2,
		Snake: []core.Cell{
			{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 0},
		},
		Food:      core.Cell{X: 2, Y: 1},
		Direction: core.DirLeft,
	}

	if d := NewAutopilot().Next(snap); d != core.DirLeft {
		t.Errorf("Next() = %s, expected left into the vacating tail", d)
	}
}
