package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Color palette
// - Default (white/black): Primary text
// - Accent (soft purple #A78BFA): Paths
// - Bold: Generated prefixes
// - Muted (gray): Hints and secondary info
// - No colored success/error/warning - use unicode symbols only

var (
	// Accent style for file paths
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA"))

	// Muted style for secondary info and hints
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)
)

// ConfigureColor enables styling only when w is a terminal and NO_COLOR is
// unset.
func ConfigureColor(w io.Writer) {
	if ColorEnabled(w) {
		lipgloss.SetColorProfile(termenv.NewOutput(w.(*os.File)).EnvColorProfile())
		return
	}
	lipgloss.SetColorProfile(termenv.Ascii)
}

// ColorEnabled reports whether w is a color-capable terminal.
func ColorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
