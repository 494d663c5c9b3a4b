package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	barFull  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	barMid   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	barEmpty = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
	subtle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// ProgressBar renders a fixed-width gauge for a ratio in [0,1].
func ProgressBar(ratio float64, width int) string {
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	switch {
	case ratio > 0.8:
		return barFull.Render(bar)
	case ratio > 0.3:
		return barMid.Render(bar)
	default:
		return barEmpty.Render(bar)
	}
}

// Separator renders a dim horizontal rule.
func Separator(width int) string {
	return subtle.Render(strings.Repeat("─", width))
}

// OnOff renders a boolean actuator state.
func OnOff(on bool) string {
	if on {
		return barFull.Render("ON")
	}
	return subtle.Render("off")
}
