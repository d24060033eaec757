package snake

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

func testConfig(seed int64) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.Seed = seed
	return cfg
}

// steer returns a frame carrying one direction.
func steer(d core.Direction) core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.ActionFor(d))
	return in
}

func TestDeterminism(t *testing.T) {
	// Two games with the same seed and inputs should produce identical rounds
	g1, g2 := NewHazards(), NewHazards()
	if err := g1.Reset(testConfig(12345)); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	if err := g2.Reset(testConfig(12345)); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}

	ap := NewAutopilot()
	for range 300 {
		in := steer(ap.Next(g1.Snapshot()))
		if g1.State().GameOver {
			in.Set(core.ActionRestart)
		}
		g1.Step(in)
		g2.Step(in)
	}

	if !reflect.DeepEqual(g1.Snapshot(), g2.Snapshot()) {
		t.Errorf("snapshots differ:\n%s\n---\n%s", g1.Snapshot(), g2.Snapshot())
	}
}

func TestGameIDs(t *testing.T) {
	if New().ID() != "classic" {
		t.Errorf("New().ID() = %q", New().ID())
	}
	if NewHazards().ID() != "hazards" {
		t.Errorf("NewHazards().ID() = %q", NewHazards().ID())
	}
	_, classic := registry.Lookup("classic")
	_, hazards := registry.Lookup("hazards")
	if !classic || !hazards {
		t.Error("variants should register themselves")
	}
}

func TestTitles(t *testing.T) {
	if New().Title() != "Snake" {
		t.Errorf("unexpected title %q", New().Title())
	}
	if NewHazards().Title() != "Snake (Hazards)" {
		t.Errorf("unexpected title %q", NewHazards().Title())
	}
}

func TestVariantHazardCounts(t *testing.T) {
	cfg := testConfig(3)
	cfg.Hazards = 5

	classic, hazards := New(), NewHazards()
	if err := classic.Reset(cfg); err != nil {
		t.Fatal(err)
	}
	if err := hazards.Reset(cfg); err != nil {
		t.Fatal(err)
	}

	if n := len(classic.Snapshot().Hazards); n != 0 {
		t.Errorf("classic board should have no hazards, got %d", n)
	}
	if n := len(hazards.Snapshot().Hazards); n != 5 {
		t.Errorf("hazards board should have 5 hazards, got %d", n)
	}
}

func TestResetRejectsBadGrid(t *testing.T) {
	g := New()
	if err := g.Reset(testConfig(1)); err != nil {
		t.Fatal(err)
	}
	before := g.Snapshot()

	cfg := testConfig(1)
	cfg.GridW = 0
	if err := g.Reset(cfg); !errors.Is(err, ErrInvalidGrid) {
		t.Fatalf("Reset() error = %v, expected ErrInvalidGrid", err)
	}
	if !reflect.DeepEqual(before, g.Snapshot()) {
		t.Error("failed Reset should leave the current round alone")
	}
}

func TestPauseStopsTicks(t *testing.T) {
	g := New()
	if err := g.Reset(testConfig(9)); err != nil {
		t.Fatal(err)
	}

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)

	g.Step(pause)
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}
	for range 5 {
		g.Step(core.NewInputFrame())
	}
	if g.Snapshot().Ticks != 0 {
		t.Errorf("paused game advanced to tick %d", g.Snapshot().Ticks)
	}

	g.Step(pause)
	if g.State().Paused || g.Snapshot().Ticks != 1 {
		t.Errorf("unpausing should resume ticking, got paused=%v ticks=%d", g.State().Paused, g.Snapshot().Ticks)
	}
}

// runIntoWall plays a 6x6 classic round that turns down once and ends at
// the bottom wall.
func runIntoWall(t *testing.T, g *Game) {
	t.Helper()
	cfg := testConfig(21)
	cfg.GridW, cfg.GridH = 6, 6
	if err := g.Reset(cfg); err != nil {
		t.Fatal(err)
	}

	g.Step(core.NewInputFrame())
	for i := 0; i < 10 && !g.State().GameOver; i++ {
		g.Step(steer(core.DirDown))
	}
	if !g.State().GameOver {
		t.Fatal("round should have ended at the wall")
	}
}

func TestRecordJournalsInputs(t *testing.T) {
	g := New()
	runIntoWall(t, g)

	rec := g.Record()
	if rec.Variant != "classic" || rec.Width != 6 || rec.Height != 6 || rec.Seed != 21 {
		t.Errorf("unexpected record header %+v", rec)
	}
	if len(rec.Inputs) != 1 || rec.Inputs[0] != (Input{Tick: 1, Direction: core.DirDown}) {
		t.Errorf("expected one down input at tick 1, got %+v", rec.Inputs)
	}
	if rec.Cause != CauseWall || !rec.Finished() {
		t.Errorf("record cause = %q", rec.Cause)
	}
	if rec.Ticks != g.Snapshot().Ticks {
		t.Errorf("record ticks = %d, state ticks = %d", rec.Ticks, g.Snapshot().Ticks)
	}
	if rec.EndedAt.Before(rec.StartedAt) {
		t.Error("EndedAt should not precede StartedAt")
	}
}

func TestRestartStartsNewRound(t *testing.T) {
	g := New()
	runIntoWall(t, g)
	first := g.Record()

	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)
	g.Step(restart)

	if g.State().GameOver || g.Snapshot().Ticks != 0 || g.Snapshot().Head() != Origin {
		t.Errorf("restart should begin a fresh round, got\n%s", g.Snapshot())
	}
	rec := g.Record()
	if rec.ID == first.ID || len(rec.Inputs) != 0 || rec.Finished() {
		t.Errorf("restart should begin a fresh record, got %+v", rec)
	}
}

func TestFailedRestartKeepsFinishedRound(t *testing.T) {
	g := New()
	runIntoWall(t, g)
	first := g.Record()

	// A grid that cannot be built makes the next round fail.
	g.cfg.GridW = 0
	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)
	g.Step(restart)

	if !errors.Is(g.Err(), ErrInvalidGrid) {
		t.Errorf("Err() = %v, want ErrInvalidGrid", g.Err())
	}
	if !g.State().GameOver || g.Record().ID != first.ID {
		t.Error("the finished round should stay in place")
	}

	g.cfg.GridW = 6
	g.Step(restart)
	if g.Err() != nil || g.State().GameOver {
		t.Errorf("restart should succeed once the grid is valid, err=%v", g.Err())
	}
}

func TestReplayMatchesPlayedRound(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		g := NewHazards()
		cfg := testConfig(seed)
		cfg.GridW, cfg.GridH, cfg.Hazards = 12, 12, 10
		if err := g.Reset(cfg); err != nil {
			t.Fatal(err)
		}

		ap := NewAutopilot()
		for i := 0; i < 400 && !g.State().GameOver; i++ {
			g.Step(steer(ap.Next(g.Snapshot())))
		}

		got, err := Replay(g.Record())
		if err != nil {
			t.Fatalf("seed %d: Replay() failed: %v", seed, err)
		}
		if !reflect.DeepEqual(got, g.Snapshot()) {
			t.Errorf("seed %d: replay differs:\n%s\n---\n%s", seed, got, g.Snapshot())
		}
	}
}

func TestReplayDetectsDivergence(t *testing.T) {
	g := New()
	runIntoWall(t, g)

	rec := g.Record()
	rec.Cause = CauseHazard
	if _, err := Replay(rec); !errors.Is(err, ErrReplayDiverged) {
		t.Errorf("wrong cause should diverge, got %v", err)
	}

	rec = g.Record()
	rec.Ticks += 3
	if _, err := Replay(rec); !errors.Is(err, ErrReplayDiverged) {
		t.Errorf("extra ticks should diverge, got %v", err)
	}

	rec = g.Record()
	rec.Policy = "sometimes"
	if _, err := Replay(rec); err == nil {
		t.Error("unknown policy should fail")
	}
}

func TestRender(t *testing.T) {
	g := New()
	if err := g.Reset(testConfig(4)); err != nil {
		t.Fatal(err)
	}
	g.Step(core.NewInputFrame())

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	hud := fmt.Sprintf("Length: %d  Ticks: 1", g.State().Length)
	if !strings.Contains(out, hud) {
		t.Errorf("HUD missing from render:\n%s", out)
	}
	if !strings.ContainsRune(out, '█') || !strings.ContainsRune(out, '●') {
		t.Errorf("snake head or food missing from render:\n%s", out)
	}

	// Head at (3,2): board origin x=19, one border column, two columns per cell.
	if got := screen.GetGlyph(19+1+3*2, 2+1+2); got.Rune != '█' || got.Color != core.ColorBrightGreen {
		t.Errorf("head glyph = %+v", got)
	}
}

func TestRenderGameOver(t *testing.T) {
	g := New()
	runIntoWall(t, g)

	screen := core.NewScreen(40, 12)
	g.Render(screen)
	if out := screen.String(); !strings.Contains(out, "Game Over") || !strings.Contains(out, "Hit the wall") {
		t.Errorf("game over overlay missing:\n%s", out)
	}
}

func TestWindowTooSmall(t *testing.T) {
	g := New()
	if err := g.Reset(testConfig(1)); err != nil {
		t.Fatal(err)
	}

	screen := core.NewScreen(30, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("expected too-small overlay:\n%s", screen.String())
	}
}
