package snake

import (
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func TestSpawnStaysInBounds(t *testing.T) {
	sizes := [][2]int{{1, 1}, {1, 7}, {7, 1}, {20, 20}, {3, 50}}

	for _, size := range sizes {
		sp := NewRandomSpawner(42, PolicyUniform)
		for range 2000 {
			c := sp.Spawn(size[0], size[1], nil)
			if !c.In(size[0], size[1]) {
				t.Fatalf("Spawn(%d, %d) = %v, out of bounds", size[0], size[1], c)
			}
		}
	}
}

func TestSpawnAvoidsExcluded(t *testing.T) {
	sp := NewRandomSpawner(99, PolicyAvoid)
	excluded := core.NewCellSet()
	for x := range 10 {
		excluded.Add(core.Cell{X: x, Y: 0})
		excluded.Add(core.Cell{X: x, Y: 1})
	}

	for range 500 {
		c := sp.Spawn(10, 10, excluded)
		if excluded.Has(c) {
			t.Fatalf("Spawn returned excluded cell %v", c)
		}
	}
}

func TestSpawnFindsLastFreeCell(t *testing.T) {
	excluded := core.NewCellSet()
	for y := range 10 {
		for x := range 10 {
			excluded.Add(core.Cell{X: x, Y: y})
		}
	}
	free := core.Cell{X: 7, Y: 3}
	delete(excluded, free)

	for seed := int64(1); seed <= 10; seed++ {
		sp := NewRandomSpawner(seed, PolicyAvoid)
		if c := sp.Spawn(10, 10, excluded); c != free {
			t.Errorf("seed %d: Spawn = %v, expected the only free cell %v", seed, c, free)
		}
	}
}

func TestSpawnFullGridFallsBack(t *testing.T) {
	excluded := core.NewCellSet(core.Cell{X: 0, Y: 0}, core.Cell{X: 1, Y: 0})

	sp := NewRandomSpawner(5, PolicyAvoid)
	c := sp.Spawn(2, 1, excluded)
	if !c.In(2, 1) {
		t.Errorf("full grid should still yield an in-bounds cell, got %v", c)
	}
}

func TestSpawnUniformAllowsOverlap(t *testing.T) {
	excluded := core.NewCellSet()
	for y := range 10 {
		for x := range 10 {
			excluded.Add(core.Cell{X: x, Y: y})
		}
	}
	delete(excluded, core.Cell{X: 0, Y: 0})

	sp := NewRandomSpawner(8, PolicyUniform)
	overlaps := 0
	for range 20 {
		if excluded.Has(sp.Spawn(10, 10, excluded)) {
			overlaps++
		}
	}
	if overlaps == 0 {
		t.Error("uniform policy should ignore exclusions")
	}
}

func TestSpawnDeterministic(t *testing.T) {
	a := NewRandomSpawner(1234, PolicyAvoid)
	b := NewRandomSpawner(1234, PolicyAvoid)
	excluded := core.NewCellSet(core.Cell{X: 2, Y: 2})

	for i := range 100 {
		ca, cb := a.Spawn(20, 20, excluded), b.Spawn(20, 20, excluded)
		if ca != cb {
			t.Fatalf("draw %d differs: %v vs %v", i, ca, cb)
		}
	}
}

func TestSpawnCoversGrid(t *testing.T) {
	sp := NewRandomSpawner(77, PolicyUniform)
	seen := core.NewCellSet()
	for range 5000 {
		seen.Add(sp.Spawn(5, 4, nil))
	}
	if len(seen) != 20 {
		t.Errorf("expected every cell of a 5x4 grid to be drawn, saw %d", len(seen))
	}
}

func TestParseSpawnPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    SpawnPolicy
		wantErr bool
	}{
		{"avoid", PolicyAvoid, false},
		{"uniform", PolicyUniform, false},
		{"", PolicyAvoid, false},
		{"never", "", true},
	}

	for _, tc := range tests {
		got, err := ParseSpawnPolicy(tc.in)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Errorf("ParseSpawnPolicy(%q) = %q, %v", tc.in, got, err)
		}
	}

	if NewRandomSpawner(1, "").Policy() != PolicyAvoid {
		t.Error("empty policy should default to avoid")
	}
}

func TestSpawnFreeIgnoresPolicy(t *testing.T) {
	excluded := core.NewCellSet()
	for y := range 10 {
		for x := range 10 {
			excluded.Add(core.Cell{X: x, Y: y})
		}
	}
	free := core.Cell{X: 7, Y: 3}
	delete(excluded, free)

	sp := NewRandomSpawner(8, PolicyUniform)
	for range 20 {
		if c := sp.SpawnFree(10, 10, excluded); c != free {
			t.Fatalf("SpawnFree() = %v, want %v", c, free)
		}
	}
}

func TestSpawnAvoidMatchesSpawnFree(t *testing.T) {
	a := NewRandomSpawner(99, PolicyAvoid)
	b := NewRandomSpawner(99, PolicyAvoid)
	excluded := core.NewCellSet(core.Cell{X: 1, Y: 1}, core.Cell{X: 2, Y: 1})

	for i := range 50 {
		if ca, cb := a.Spawn(6, 6, excluded), b.SpawnFree(6, 6, excluded); ca != cb {
			t.Fatalf("draw %d: Spawn() = %v, SpawnFree() = %v", i, ca, cb)
		}
	}
}
