package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

var (
	colorOnce sync.Once
	colorOK   bool
)

// ColorTerminal reports whether stderr is an interactive terminal that
// should receive styled output. Returns false when output is piped or
// redirected, when TERM is "dumb", or when the user set NO_COLOR.
func ColorTerminal() bool {
	colorOnce.Do(func() {
		if termenv.EnvNoColor() {
			return
		}
		if os.Getenv("TERM") == "dumb" {
			return
		}
		colorOK = term.IsTerminal(int(os.Stderr.Fd()))
	})
	return colorOK
}

// DisableColor forces plain output regardless of terminal detection.
// Used by the -no-color flag and by tests that assert on exact text.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// init keeps styled output away from pipes: lipgloss renders plain
// text when stderr is not a color-capable terminal.
func init() {
	if !ColorTerminal() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}
