package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Terminal control sequences
const (
	ClearScreen    = "\033[2J" // Clear entire screen
	MoveCursorHome = "\033[H"  // Move cursor to home position
	HideCursor     = "\033[?25l"
	ShowCursor     = "\033[?25h"
)

// GetDisplayWidth calculates the display width of a string, accounting for
// wide runes.
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// CenterText centers text within the given width
func CenterText(text string, width int) string {
	textWidth := GetDisplayWidth(text)
	if textWidth >= width {
		return text
	}
	padding := (width - textWidth) / 2
	return strings.Repeat(" ", padding) + text
}

// SectionSeparator builds a horizontal separator line of the given width.
func SectionSeparator(width int) string {
	if width <= 0 {
		width = 80
	}
	return strings.Repeat("─", width)
}
