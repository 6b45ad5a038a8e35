package ui

import "fmt"

// ANSI256 color codes for CLI output.
const (
	colorName  = 110 // board and asset names
	colorMuted = 245 // timestamps, ids
	colorTag   = 150 // tag lists
)

var noColor bool

// RenderName returns s styled as a board or asset name.
func RenderName(s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorName, s)
}

// RenderMuted returns s in the muted (gray) color.
func RenderMuted(s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorMuted, s)
}

// RenderTag returns s styled as a tag.
func RenderTag(s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorTag, s)
}

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}
