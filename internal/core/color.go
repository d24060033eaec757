package core

// Color represents a foreground color for a screen glyph.
type Color uint8

// Colors used by the snake renderer. The platform maps them to terminal styles.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorMagenta
	ColorBrightRed
	ColorBrightGreen
	ColorGray
)
