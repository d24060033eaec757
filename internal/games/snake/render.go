package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

const hudHeight = 2 // Status line plus separator

// Render draws the board, HUD, and any overlay into dst.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.state == nil {
		return
	}

	cell := max(g.cfg.CellSize, 1)
	boardW := g.state.Width()*cell + 2
	boardH := g.state.Height() + 2

	g.renderHUD(dst)

	if dst.Width() < boardW || dst.Height() < boardH+hudHeight {
		g.renderOverlay(dst, "Window too small",
			fmt.Sprintf("Need %dx%d", boardW, boardH+hudHeight))
		return
	}

	ox := (dst.Width() - boardW) / 2
	oy := hudHeight
	dst.DrawBox(core.NewRect(ox, oy, boardW, boardH), core.ColorGray)

	plot := func(c core.Cell, r rune, color core.Color) {
		if !c.In(g.state.Width(), g.state.Height()) {
			return
		}
		for i := range cell {
			dst.SetColored(ox+1+c.X*cell+i, oy+1+c.Y, r, color)
		}
	}

	snap := g.state.Snapshot()
	for _, h := range snap.Hazards {
		plot(h, '▓', core.ColorMagenta)
	}
	plot(snap.Food, '●', core.ColorRed)
	for i := len(snap.Snake) - 1; i >= 0; i-- {
		if i == 0 {
			plot(snap.Snake[i], '█', core.ColorBrightGreen)
		} else {
			plot(snap.Snake[i], '▒', core.ColorGreen)
		}
	}

	switch {
	case snap.Over:
		g.renderOverlay(dst, "Game Over", snap.Cause.Describe()+" - press R to restart")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" %s  Length: %d  Ticks: %d", g.Title(), g.state.Len(), g.state.Ticks())
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len([]rune(line1)), len([]rune(line2))) + 4
	boxH := 5
	r := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(r, ' ')
	dst.DrawBox(r, core.ColorYellow)
	dst.DrawTextCentered(r.Y+1, line1)
	dst.DrawTextCentered(r.Y+3, line2)
}
