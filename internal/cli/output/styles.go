package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles used by text output.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Code    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style

	StatusSuccess lipgloss.Style
	StatusFailed  lipgloss.Style
	StatusSkipped lipgloss.Style
}

// newStyles builds styles bound to w. Colors are only emitted when color is
// true and the environment supports them.
func newStyles(w io.Writer, color bool) *Styles {
	lr := lipgloss.NewRenderer(w)
	if color {
		lr.SetColorProfile(termenv.EnvColorProfile())
	} else {
		lr.SetColorProfile(termenv.Ascii)
	}

	green := lipgloss.AdaptiveColor{Light: "#1a7f37", Dark: "#3fb950"}
	yellow := lipgloss.AdaptiveColor{Light: "#9a6700", Dark: "#d29922"}
	red := lipgloss.AdaptiveColor{Light: "#cf222e", Dark: "#f85149"}
	blue := lipgloss.AdaptiveColor{Light: "#0969da", Dark: "#58a6ff"}
	gray := lipgloss.AdaptiveColor{Light: "#6e7781", Dark: "#8b949e"}

	return &Styles{
		Header1: lr.NewStyle().Bold(true).Foreground(blue),
		Header2: lr.NewStyle().Bold(true).Underline(true),
		Bold:    lr.NewStyle().Bold(true),
		Muted:   lr.NewStyle().Foreground(gray),
		Code:    lr.NewStyle().Foreground(blue),
		Success: lr.NewStyle().Foreground(green),
		Warning: lr.NewStyle().Foreground(yellow),
		Error:   lr.NewStyle().Foreground(red).Bold(true),
		Info:    lr.NewStyle().Foreground(blue),

		StatusSuccess: lr.NewStyle().Foreground(green).SetString("✓"),
		StatusFailed:  lr.NewStyle().Foreground(red).SetString("✗"),
		StatusSkipped: lr.NewStyle().Foreground(gray).SetString("-"),
	}
}
