// Package registry lists the snake variants the platform can start.
// Each variant registers itself from an init function.
package registry

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Game is what the platform drives for one variant: it resets rounds, steps
// them with a frame of input and draws them. Scheduling and terminal I/O stay
// in the platform.
type Game interface {
	ID() string
	Title() string

	// Reset starts a new round. It fails for configurations the engine
	// rejects (bad grid size, too many hazards) and leaves the game unchanged.
	Reset(cfg core.RuntimeConfig) error

	// Step applies the frame's input and advances the round by one tick.
	Step(in core.InputFrame) core.StepResult

	Render(dst *core.Screen)
	State() core.GameState
}

// Variant describes a registered board.
type Variant struct {
	ID    string      // Name used on the command line and in the journal
	Title string      // Display name
	Blurb string      // One-line description for menus
	New   func() Game // Returns a game that has not been Reset
}

// ErrUnknownVariant is returned by Create for IDs nobody registered.
var ErrUnknownVariant = errors.New("unknown variant")

var variants = map[string]Variant{}

// Register adds v. It is meant for init functions and panics on an empty
// ID, a missing constructor or a duplicate ID.
func Register(v Variant) {
	switch {
	case v.ID == "" || v.New == nil:
		panic(fmt.Sprintf("registry: incomplete variant %+v", v))
	case variants[v.ID].New != nil:
		panic(fmt.Sprintf("registry: variant %q already registered", v.ID))
	}
	variants[v.ID] = v
}

// Variants returns every registered variant sorted by ID.
func Variants() []Variant {
	out := make([]Variant, 0, len(variants))
	for _, v := range variants {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Lookup returns the variant registered under id.
func Lookup(id string) (Variant, bool) {
	v, ok := variants[id]
	return v, ok
}

// Create returns a new game for the variant id.
func Create(id string) (Game, error) {
	v, ok := variants[id]
	if !ok {
		return nil, fmt.Errorf("registry: %w %q", ErrUnknownVariant, id)
	}
	return v.New(), nil
}
