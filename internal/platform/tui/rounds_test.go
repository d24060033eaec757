package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

type fakeSource struct {
	records []snake.Record
	err     error
}

func (f fakeSource) RecentRecords(limit int) ([]snake.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.records) > limit {
		return f.records[:limit], nil
	}
	return f.records, nil
}

func (f fakeSource) CauseCounts(variant string) (map[snake.Cause]int, error) {
	counts := map[snake.Cause]int{}
	for _, r := range f.records {
		if variant == "" || r.Variant == variant {
			counts[r.Cause]++
		}
	}
	return counts, nil
}

func testRounds() fakeSource {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return fakeSource{records: []snake.Record{
		{ID: "aaaaaaaa-1", Variant: "hazards", Width: 20, Height: 20, Ticks: 40, Cause: snake.CauseHazard, StartedAt: at},
		{ID: "bbbbbbbb-2", Variant: "classic", Width: 20, Height: 20, Ticks: 90, Cause: snake.CauseSelf, StartedAt: at},
		{ID: "cccccccc-3", Variant: "classic", Width: 10, Height: 10, Ticks: 12, Cause: snake.CauseWall, StartedAt: at},
	}}
}

func updateRounds(t *testing.T, m RoundsModel, msg tea.Msg) RoundsModel {
	t.Helper()
	next, _ := m.Update(msg)
	rm, ok := next.(RoundsModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return rm
}

func TestRoundsModelFilters(t *testing.T) {
	m := NewRoundsModel(testRounds(), 100, 30)
	if got := len(m.table.Rows()); got != 3 {
		t.Fatalf("all variants shows %d rows, want 3", got)
	}

	// Filters follow registry order after "All variants": classic, hazards.
	m = updateRounds(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if got := len(m.table.Rows()); got != 2 {
		t.Errorf("classic shows %d rows, want 2", got)
	}
	if m.causes[snake.CauseWall] != 1 || m.causes[snake.CauseHazard] != 0 {
		t.Errorf("classic causes = %v", m.causes)
	}

	m = updateRounds(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = updateRounds(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if got := len(m.table.Rows()); got != 1 {
		t.Errorf("hazards shows %d rows, want 1", got)
	}
}

func TestRoundsModelSelect(t *testing.T) {
	m := NewRoundsModel(testRounds(), 100, 30)
	m = updateRounds(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = updateRounds(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.Selected() != "bbbbbbbb-2" {
		t.Errorf("Selected() = %q, want bbbbbbbb-2", m.Selected())
	}
	if m.IsQuitting() {
		t.Error("selecting is not quitting")
	}
}

func TestRoundsModelEmpty(t *testing.T) {
	m := NewRoundsModel(nil, 60, 20)
	m = updateRounds(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Selected() != "" {
		t.Error("nothing to select in an empty journal")
	}
	if !strings.Contains(m.View(), "No rounds journaled yet") {
		t.Error("empty journal should say so")
	}
}

func TestRoundsModelShowsSourceError(t *testing.T) {
	m := NewRoundsModel(fakeSource{err: errors.New("disk gone")}, 100, 30)
	if !strings.Contains(m.View(), "disk gone") {
		t.Error("View() should show the journal error")
	}
}

func TestRoundsModelBack(t *testing.T) {
	m := NewRoundsModel(testRounds(), 100, 30)
	m = updateRounds(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.IsQuitting() || m.Selected() != "" {
		t.Error("esc should leave without a selection")
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("0123456789abcdef"); got != "01234567" {
		t.Errorf("shortID() = %q", got)
	}
	if got := shortID("abc"); got != "abc" {
		t.Errorf("shortID() = %q", got)
	}
}
