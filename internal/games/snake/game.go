package snake

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// Variant selects the board a Game plays on.
type Variant string

const (
	VariantClassic Variant = "classic" // Empty board
	VariantHazards Variant = "hazards" // Board seeded with hazard cells
)

// Game adapts the engine to the platform's registry.Game interface.
// It owns one round at a time and journals the player's direction changes.
type Game struct {
	variant Variant
	cfg     core.RuntimeConfig
	seeds   *rand.Rand // Seeds for rounds after the first

	engine *Engine
	state  *State
	record Record
	paused bool
	err    error // Why the last restart failed
}

// New creates a classic game.
func New() *Game {
	return &Game{variant: VariantClassic}
}

// NewHazards creates a game whose board carries hazards.
func NewHazards() *Game {
	return &Game{variant: VariantHazards}
}

func init() {
	registry.Register(registry.Variant{
		ID:    string(VariantClassic),
		Title: New().Title(),
		Blurb: "Open board: avoid the walls and your own tail",
		New:   func() registry.Game { return New() },
	})
	registry.Register(registry.Variant{
		ID:    string(VariantHazards),
		Title: NewHazards().Title(),
		Blurb: "Fixed hazard cells are scattered over the board",
		New:   func() registry.Game { return NewHazards() },
	})
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return string(g.variant)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.variant == VariantHazards {
		return "Snake (Hazards)"
	}
	return "Snake"
}

// Reset starts a new round seeded with cfg.Seed. Later restarts draw their
// seeds from the same source, so a whole session is reproducible.
func (g *Game) Reset(cfg core.RuntimeConfig) error {
	prev := g.cfg
	g.cfg = cfg
	if err := g.newRound(cfg.Seed); err != nil {
		g.cfg = prev
		return err
	}
	g.seeds = rand.New(rand.NewSource(cfg.Seed))
	g.err = nil
	return nil
}

func (g *Game) newRound(seed int64) error {
	engine := NewEngine(NewRandomSpawner(seed, g.policy()), WithBlockReversal(g.cfg.BlockReversal))
	state, err := engine.Initialize(g.cfg.GridW, g.cfg.GridH, g.hazards())
	if err != nil {
		return err
	}

	g.engine = engine
	g.state = state
	g.paused = false
	g.record = Record{
		ID:            uuid.NewString(),
		Variant:       string(g.variant),
		Seed:          seed,
		Width:         g.cfg.GridW,
		Height:        g.cfg.GridH,
		Hazards:       g.hazards(),
		Policy:        g.policy(),
		BlockReversal: g.cfg.BlockReversal,
		StartedAt:     time.Now(),
	}
	return nil
}

func (g *Game) policy() SpawnPolicy {
	if g.cfg.AvoidOverlap {
		return PolicyAvoid
	}
	return PolicyUniform
}

func (g *Game) hazards() int {
	if g.variant == VariantHazards {
		return g.cfg.Hazards
	}
	return 0
}

// Step applies one frame of input and advances the round by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.state == nil {
		return core.StepResult{}
	}

	if in.Has(core.ActionRestart) && g.state.IsOver() {
		// On failure the finished round stays in place.
		g.err = g.newRound(g.seeds.Int63())
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.state.IsOver() {
		g.paused = !g.paused
	}
	if g.paused || g.state.IsOver() {
		return core.StepResult{State: g.State()}
	}

	if d, ok := in.Direction(); ok && d != g.state.Pending() {
		g.record.Inputs = append(g.record.Inputs, Input{Tick: g.state.Ticks(), Direction: d})
		g.engine.SetDirection(g.state, d)
	}

	g.engine.Tick(g.state)
	g.record.Ticks = g.state.Ticks()
	if g.state.IsOver() {
		g.record.Cause = g.state.Cause()
		g.record.EndedAt = time.Now()
	}

	return core.StepResult{State: g.State()}
}

// Err reports why the most recent restart failed, or nil.
func (g *Game) Err() error {
	return g.err
}

// State returns the coarse status for the platform.
func (g *Game) State() core.GameState {
	if g.state == nil {
		return core.GameState{}
	}
	return core.GameState{
		Length:   g.state.Len(),
		GameOver: g.state.IsOver(),
		Paused:   g.paused,
	}
}

// Snapshot returns a copy of the current round.
func (g *Game) Snapshot() Snapshot {
	if g.state == nil {
		return Snapshot{}
	}
	return g.state.Snapshot()
}

// Record returns the journal of the current round.
func (g *Game) Record() Record {
	rec := g.record
	rec.Inputs = append([]Input(nil), g.record.Inputs...)
	return rec
}
