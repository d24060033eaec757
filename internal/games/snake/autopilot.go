package snake

import (
	"github.com/vovakirdan/tui-snake/internal/core"
)

// Autopilot is a simple input source that steers toward food.
// It stands in for a player in the spectator feed and in tests.
type Autopilot struct{}

// NewAutopilot creates an autopilot.
func NewAutopilot() *Autopilot {
	return &Autopilot{}
}

// Next picks a direction for the next tick. Moves that collide immediately
// are discarded; among the rest it prefers moves that leave enough room for
// the body, then the shortest distance to food, then the current heading.
func (a *Autopilot) Next(snap Snapshot) core.Direction {
	if len(snap.Snake) == 0 {
		return snap.Direction
	}

	hazards := core.NewCellSet(snap.Hazards...)
	best := snap.Direction
	bestScore := -1 << 31

	for _, d := range core.Directions {
		next := snap.Head().Add(d.Delta())
		if !a.safe(snap, hazards, next) {
			continue
		}

		score := 0
		if a.room(snap, hazards, next) >= len(snap.Snake) {
			score += 1 << 16
		}
		score -= next.Manhattan(snap.Food) * 2
		if d == snap.Direction {
			score++
		}

		if score > bestScore {
			best, bestScore = d, score
		}
	}
	return best
}

// safe reports whether moving the head to c survives one tick.
func (a *Autopilot) safe(snap Snapshot, hazards core.CellSet, c core.Cell) bool {
	if !c.In(snap.Width, snap.Height) || hazards.Has(c) {
		return false
	}

	// The tail moves away this tick unless the snake eats.
	body := snap.Snake
	if c != snap.Food {
		body = body[:len(body)-1]
	}
	for _, seg := range body {
		if seg == c {
			return false
		}
	}
	return true
}

// room counts cells reachable from c without crossing the body or hazards.
func (a *Autopilot) room(snap Snapshot, hazards core.CellSet, c core.Cell) int {
	blocked := hazards.Clone()
	for _, seg := range snap.Snake[:len(snap.Snake)-1] {
		blocked.Add(seg)
	}

	limit := len(snap.Snake)
	seen := core.NewCellSet(c)
	queue := []core.Cell{c}
	for len(queue) > 0 && len(seen) < limit {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range core.Directions {
			n := cur.Add(d.Delta())
			if !n.In(snap.Width, snap.Height) || blocked.Has(n) || seen.Has(n) {
				continue
			}
			seen.Add(n)
			queue = append(queue, n)
		}
	}
	return len(seen)
}
