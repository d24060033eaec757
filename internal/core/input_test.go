package core

import "testing"

func TestInputFrameKeepsLatestDirection(t *testing.T) {
	f := NewInputFrame()

	if _, ok := f.Direction(); ok {
		t.Fatal("empty frame should carry no direction")
	}

	f.Set(ActionUp)
	f.Set(ActionPause)
	f.Set(ActionLeft)

	d, ok := f.Direction()
	if !ok || d != DirLeft {
		t.Errorf("Direction() = %v, %v; expected left", d, ok)
	}
	if !f.Has(ActionPause) || !f.Has(ActionUp) {
		t.Error("Has() should report every action set this frame")
	}

	f.Clear()
	if f.Has(ActionPause) {
		t.Error("Clear() should drop actions")
	}
	if _, ok := f.Direction(); ok {
		t.Error("Clear() should drop the pending direction")
	}
}

func TestZeroInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionQuit) {
		t.Error("zero frame should have no actions")
	}
	f.Set(ActionDown)
	if d, ok := f.Direction(); !ok || d != DirDown {
		t.Errorf("Set on zero frame should work, got %v, %v", d, ok)
	}
}

func TestActionDirection(t *testing.T) {
	tests := []struct {
		action Action
		dir    Direction
		ok     bool
	}{
		{ActionUp, DirUp, true},
		{ActionDown, DirDown, true},
		{ActionLeft, DirLeft, true},
		{ActionRight, DirRight, true},
		{ActionRestart, DirRight, false},
	}
	for _, tc := range tests {
		d, ok := tc.action.Direction()
		if ok != tc.ok || (ok && d != tc.dir) {
			t.Errorf("%s.Direction() = %v, %v; expected %v, %v", tc.action, d, ok, tc.dir, tc.ok)
		}
	}
}

func TestActionForRoundTrip(t *testing.T) {
	for _, d := range Directions {
		got, ok := ActionFor(d).Direction()
		if !ok || got != d {
			t.Errorf("ActionFor(%s).Direction() = %v, %v", d, got, ok)
		}
	}
}
