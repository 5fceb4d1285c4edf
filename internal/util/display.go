package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Terminal control sequences
const (
	ClearScreen          = "\033[2J"     // Clear entire screen
	ClearLine            = "\033[2K"     // Clear entire line
	ClearToEndOfScreen   = "\033[0J"     // Clear from cursor to end of screen
	ClearScrollback      = "\033[3J"     // Clear scrollback buffer
	MoveCursorHome       = "\033[H"      // Move cursor to home position
	HideCursor           = "\033[?25l"   // Hide cursor
	ShowCursor           = "\033[?25h"   // Show cursor
	EnterAlternateScreen = "\033[?1049h" // Switch to alternate screen buffer
	ExitAlternateScreen  = "\033[?1049l" // Return to normal screen buffer
	Bell                 = "\a"
)

// GetDisplayWidth calculates the actual display width of a string
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// PadRight pads text with spaces up to width display cells, truncating if longer
func PadRight(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) > width {
		return runewidth.Truncate(text, width, "…")
	}
	return runewidth.FillRight(text, width)
}

// CenterText centers text within the given width
func CenterText(text string, width int) string {
	textWidth := runewidth.StringWidth(text)
	if textWidth >= width {
		return runewidth.Truncate(text, width, "")
	}
	padding := (width - textWidth) / 2
	return strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-padding-textWidth)
}

// Separator returns a horizontal rule of the given width
func Separator(width int) string {
	if width <= 0 {
		return ""
	}
	return strings.Repeat("─", width)
}
