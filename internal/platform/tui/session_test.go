package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func updateSession(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return sm, cmd
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	m, err := NewSessionModel(SessionConfig{Runtime: core.DefaultConfig()})
	if err != nil {
		t.Fatalf("NewSessionModel() failed: %v", err)
	}
	if m.InGame() {
		t.Fatal("session should start in the menu")
	}
	if !strings.Contains(m.View(), "Snake (Hazards)") {
		t.Error("menu should list the hazards variant")
	}

	m, cmd := updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.InGame() {
		t.Fatal("enter should start the selected variant")
	}
	if cmd == nil {
		t.Error("starting a game should arm its tick")
	}
	if m.gameModel.game.ID() != "classic" {
		t.Errorf("started %q, want classic", m.gameModel.game.ID())
	}

	// Pause, let the pause apply, then go back.
	m, _ = updateSession(t, m, runes("p"))
	m, _ = updateSession(t, m, TickMsg{Gen: m.gameModel.gen})
	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.InGame() {
		t.Error("back should return to the menu")
	}
}

func TestSessionStartsInVariant(t *testing.T) {
	m, err := NewSessionModel(SessionConfig{Runtime: core.DefaultConfig(), Variant: "hazards"})
	if err != nil {
		t.Fatalf("NewSessionModel() failed: %v", err)
	}
	if !m.InGame() {
		t.Fatal("session should start in the game")
	}
	if m.Init() == nil {
		t.Error("Init() should arm the first tick")
	}
}

func TestSessionUnknownVariant(t *testing.T) {
	if _, err := NewSessionModel(SessionConfig{Runtime: core.DefaultConfig(), Variant: "tron"}); err == nil {
		t.Error("unknown variant should fail")
	}
}

func TestSessionBadBoardShowsMenuError(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.GridW = 0
	m, err := NewSessionModel(SessionConfig{Runtime: cfg})
	if err != nil {
		t.Fatalf("NewSessionModel() failed: %v", err)
	}

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.InGame() {
		t.Fatal("a board that cannot be built should not start")
	}
	if m.menu.status == "" {
		t.Error("menu should show the error")
	}
}

func TestSessionQuitFromMenu(t *testing.T) {
	m, _ := NewSessionModel(SessionConfig{Runtime: core.DefaultConfig()})
	m, cmd := updateSession(t, m, runes("q"))
	if cmd == nil || m.View() != "" {
		t.Error("q should quit the session")
	}
}
