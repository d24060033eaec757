package registry

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string                          { return g.id }
func (g stubGame) Title() string                       { return strings.ToUpper(g.id) }
func (g stubGame) Reset(core.RuntimeConfig) error      { return nil }
func (g stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen)                 {}
func (g stubGame) State() core.GameState               { return core.GameState{} }

func stubVariant(id string) Variant {
	return Variant{
		ID:    id,
		Title: strings.ToUpper(id),
		New:   func() Game { return stubGame{id: id} },
	}
}

func TestRegisterAndCreate(t *testing.T) {
	Register(stubVariant("zz-test-b"))
	Register(stubVariant("zz-test-a"))

	if _, ok := Lookup("zz-test-a"); !ok {
		t.Error("Lookup() should find a registered variant")
	}
	if _, ok := Lookup("zz-missing"); ok {
		t.Error("Lookup() should not find an unregistered variant")
	}

	g, err := Create("zz-test-b")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "zz-test-b" {
		t.Errorf("Create() returned %q", g.ID())
	}

	if _, err := Create("zz-missing"); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("Create() error = %v, want ErrUnknownVariant", err)
	}

	var ids []string
	for _, v := range Variants() {
		if strings.HasPrefix(v.ID, "zz-test-") {
			ids = append(ids, v.ID+"="+v.Title)
		}
	}
	if strings.Join(ids, ",") != "zz-test-a=ZZ-TEST-A,zz-test-b=ZZ-TEST-B" {
		t.Errorf("Variants() should be sorted with titles, got %v", ids)
	}
}

func TestRegisterRejectsBadVariants(t *testing.T) {
	Register(stubVariant("zz-dup"))

	tests := []struct {
		name string
		v    Variant
	}{
		{"duplicate", stubVariant("zz-dup")},
		{"empty id", Variant{New: func() Game { return stubGame{} }}},
		{"no constructor", Variant{ID: "zz-nil"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("Register should panic")
				}
			}()
			Register(tt.v)
		})
	}
}
