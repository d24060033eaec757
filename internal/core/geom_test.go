package core

import "testing"

func TestCellIn(t *testing.T) {
	tests := []struct {
		name     string
		c        Cell
		expected bool
	}{
		{"origin", Cell{0, 0}, true},
		{"last cell", Cell{19, 19}, true},
		{"x at width", Cell{20, 5}, false},
		{"x at -1", Cell{-1, 5}, false},
		{"y at height", Cell{5, 20}, false},
		{"y at -1", Cell{5, -1}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.c.In(20, 20); got != tc.expected {
				t.Errorf("%v.In(20, 20) = %v, expected %v", tc.c, got, tc.expected)
			}
		})
	}
}

func TestDirectionDelta(t *testing.T) {
	tests := []struct {
		dir      Direction
		expected Cell
	}{
		{DirUp, Cell{0, -1}},
		{DirDown, Cell{0, 1}},
		{DirLeft, Cell{-1, 0}},
		{DirRight, Cell{1, 0}},
	}

	for _, tc := range tests {
		t.Run(tc.dir.String(), func(t *testing.T) {
			if got := tc.dir.Delta(); got != tc.expected {
				t.Errorf("Delta() = %v, expected %v", got, tc.expected)
			}
			back := Cell{5, 5}.Add(tc.dir.Delta()).Add(tc.dir.Opposite().Delta())
			if back != (Cell{5, 5}) {
				t.Errorf("moving %s then %s should return to start, got %v", tc.dir, tc.dir.Opposite(), back)
			}
		})
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range Directions {
		got, err := ParseDirection(d.String())
		if err != nil {
			t.Fatalf("ParseDirection(%q) failed: %v", d.String(), err)
		}
		if got != d {
			t.Errorf("ParseDirection(%q) = %v, expected %v", d.String(), got, d)
		}
	}

	if got, err := ParseDirection(" LEFT "); err != nil || got != DirLeft {
		t.Errorf("ParseDirection should be case-insensitive, got %v, %v", got, err)
	}

	if _, err := ParseDirection("sideways"); err == nil {
		t.Error("ParseDirection should reject unknown names")
	}
}

func TestCellSet(t *testing.T) {
	s := NewCellSet(Cell{3, 1}, Cell{1, 1}, Cell{0, 2})
	s.Add(Cell{1, 1})

	if len(s) != 3 {
		t.Errorf("set should deduplicate, got %d members", len(s))
	}
	if !s.Has(Cell{0, 2}) || s.Has(Cell{2, 2}) {
		t.Error("Has() returned wrong membership")
	}

	sorted := s.Sorted()
	expected := []Cell{{1, 1}, {3, 1}, {0, 2}}
	for i := range expected {
		if sorted[i] != expected[i] {
			t.Errorf("Sorted()[%d] = %v, expected %v", i, sorted[i], expected[i])
		}
	}

	clone := s.Clone()
	clone.Add(Cell{9, 9})
	if s.Has(Cell{9, 9}) {
		t.Error("Clone() should not share storage")
	}

	var empty CellSet
	if empty.Has(Cell{0, 0}) {
		t.Error("nil set should contain nothing")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.lo, tc.hi)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, result, tc.expected)
		}
	}
}

func TestManhattan(t *testing.T) {
	if d := (Cell{1, 2}).Manhattan(Cell{4, 0}); d != 5 {
		t.Errorf("Manhattan = %d, expected 5", d)
	}
}
