package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// SessionConfig configures a play session.
type SessionConfig struct {
	Runtime core.RuntimeConfig
	Saver   snake.RecordSaver // Optional round journal
	Logger  *log.Logger       // Optional
	Variant string            // Start in this variant instead of the menu
}

// SessionModel manages the full session flow: menu -> game -> menu.
// It is the top-level model for both local play and SSH sessions.
type SessionModel struct {
	cfg       SessionConfig
	menu      MenuModel
	gameModel *GameModel
	quitting  bool
}

// NewSessionModel creates a session. If cfg.Variant names a registered
// variant the session starts playing it right away.
func NewSessionModel(cfg SessionConfig) (SessionModel, error) {
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	m := SessionModel{
		cfg:  cfg,
		menu: NewMenuModel(cfg.Runtime),
	}

	if cfg.Variant != "" {
		gm, err := m.startGame(cfg.Variant)
		if err != nil {
			return m, err
		}
		m.gameModel = &gm
	}
	return m, nil
}

func (m SessionModel) startGame(variant string) (GameModel, error) {
	game, err := registry.Create(variant)
	if err != nil {
		return GameModel{}, err
	}
	return NewGameModel(game, m.cfg.Saver, m.cfg.Runtime, m.cfg.Logger.With("variant", variant))
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.gameModel != nil {
		return m.gameModel.Init()
	}
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.cfg.Runtime.ScreenW = wsm.Width
		m.cfg.Runtime.ScreenH = wsm.Height
	}

	if m.gameModel != nil {
		return m.updateGame(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if selected := m.menu.Selected(); selected != nil {
		m.menu.selected = nil
		gm, err := m.startGame(selected.ID)
		if err != nil {
			m.menu.status = err.Error()
			return m, nil
		}
		m.gameModel = &gm
		return m, m.gameModel.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.BackToMenu() {
		m.gameModel = nil
		m.menu = NewMenuModel(m.cfg.Runtime)
		return m, m.menu.Init()
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.gameModel != nil {
		return m.gameModel.View()
	}
	return m.menu.View()
}

// InGame reports whether a variant is being played.
func (m SessionModel) InGame() bool {
	return m.gameModel != nil
}

// Run starts a session in the current terminal.
func Run(cfg SessionConfig) error {
	model, err := NewSessionModel(cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	return err
}
