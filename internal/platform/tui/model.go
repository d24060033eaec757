package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// recorder is implemented by games that journal their rounds.
type recorder interface {
	Record() snake.Record
}

// restarter is implemented by games that can report a failed restart.
type restarter interface {
	Err() error
}

// GameModel is the Bubble Tea model for playing one variant.
//
// The model is the only scheduler of ticks. It arms the next tick only while
// running is set, clears running when a step reports GameOver, and sets it
// again on restart.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	saver      snake.RecordSaver
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	logger     *log.Logger
	inputFrame core.InputFrame
	gameState  core.GameState
	running    bool
	gen        uint64 // Tick chain this model accepts
	saved      bool   // Whether the finished round was journaled
	quitting   bool
	backToMenu bool
}

// NewGameModel resets game with cfg and wraps it in a model.
// saver and logger may be nil.
func NewGameModel(game registry.Game, saver snake.RecordSaver, cfg core.RuntimeConfig, logger *log.Logger) (GameModel, error) {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if err := game.Reset(cfg); err != nil {
		return GameModel{}, err
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH-1),
		saver:      saver,
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		logger:     logger,
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
		running:    true,
		gen:        tickGen.Add(1),
	}, nil
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickInterval, m.gen)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The round keeps going; Render shows an overlay if the board no longer fits.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height-1)
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Back) && (m.gameState.GameOver || m.gameState.Paused):
		m.backToMenu = true
		return m, nil
	}

	action := m.keys.MapKey(msg)
	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionRestart:
		if !m.gameState.GameOver {
			return m, nil
		}
		return m.restart()
	}

	m.inputFrame.Set(action)
	return m, nil
}

// restart starts a new round and re-arms the tick loop.
func (m GameModel) restart() (tea.Model, tea.Cmd) {
	frame := core.NewInputFrame()
	frame.Set(core.ActionRestart)
	m.gameState = m.game.Step(frame).State
	m.inputFrame.Clear()
	if m.gameState.GameOver {
		if r, ok := m.game.(restarter); ok && r.Err() != nil {
			m.logger.Error("could not start a new round", "error", r.Err())
		}
		return m, nil
	}
	m.saved = false

	if m.running {
		return m, nil
	}
	m.running = true
	return m, tickCmd(m.config.TickInterval, m.gen)
}

// handleTick processes simulation ticks.
// Ticks from another model's chain, or arriving after GameOver, are dropped.
func (m GameModel) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if !m.running || msg.Gen != m.gen {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if m.gameState.GameOver {
		m.running = false
		m.saveRound()
		return m, nil
	}

	return m, tickCmd(m.config.TickInterval, m.gen)
}

// saveRound journals the finished round once.
func (m *GameModel) saveRound() {
	if m.saved {
		return
	}
	m.saved = true

	rec, ok := m.game.(recorder)
	if !ok {
		return
	}
	r := rec.Record()
	m.logger.Info("round ended", "variant", r.Variant, "cause", r.Cause, "ticks", r.Ticks, "length", m.gameState.Length)

	if m.saver == nil {
		return
	}
	if _, err := m.saver.SaveRecord(r); err != nil {
		m.logger.Warn("could not journal round", "round", r.ID, "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".snake", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the board with a help line underneath.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Running reports whether a tick is armed.
func (m GameModel) Running() bool {
	return m.running
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}
