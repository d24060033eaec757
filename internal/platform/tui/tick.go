// Package tui provides the Bubble Tea integration for the snake game.
// It handles the terminal UI loop, input mapping, and round orchestration.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg struct {
	Time time.Time
	Gen  uint64 // Identifies the model that armed the tick
}

// tickGen hands each GameModel its own tick chain.
var tickGen atomic.Uint64

// tickCmd returns a Bubble Tea command that sends one tick message after interval.
// The model re-arms it after each tick while the round is running.
func tickCmd(interval time.Duration, gen uint64) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Gen: gen}
	})
}
