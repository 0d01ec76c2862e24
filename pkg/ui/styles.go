package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/relgate/relgate/pkg/finding"
)

// Color palette matching common security tooling conventions.
var (
	// Severity colors
	criticalColor = lipgloss.Color("#FF0000")
	highColor     = lipgloss.Color("#FF6B6B")
	mediumColor   = lipgloss.Color("#FFD93D")
	lowColor      = lipgloss.Color("#6BCB77")
	infoColor     = lipgloss.Color("#4D96FF")

	// Status colors
	successColor = lipgloss.Color("#00D26A")
	warnColor    = lipgloss.Color("#FFB800")
	errColor     = lipgloss.Color("#FF3838")
	mutedColor   = lipgloss.Color("#6B7280")
)

// Pre-configured styles
var (
	PassStyle = lipgloss.NewStyle().Foreground(successColor).Bold(true)
	FailStyle = lipgloss.NewStyle().Foreground(errColor).Bold(true)
	WarnStyle = lipgloss.NewStyle().Foreground(warnColor).Bold(true)
	MutedStyle = lipgloss.NewStyle().Foreground(mutedColor)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA"))
)

// SeverityStyle returns the style for a severity level.
func SeverityStyle(s finding.Severity) lipgloss.Style {
	switch s {
	case finding.Critical:
		return lipgloss.NewStyle().Foreground(criticalColor).Bold(true)
	case finding.High:
		return lipgloss.NewStyle().Foreground(highColor).Bold(true)
	case finding.Medium:
		return lipgloss.NewStyle().Foreground(mediumColor)
	case finding.Low:
		return lipgloss.NewStyle().Foreground(lowColor)
	case finding.Info:
		return lipgloss.NewStyle().Foreground(infoColor)
	default:
		return MutedStyle
	}
}

// SeverityBadge renders a severity as a colored lowercase badge,
// nuclei-style: [high].
func SeverityBadge(s finding.Severity) string {
	return MutedStyle.Render("[") +
		SeverityStyle(s).Render(strings.ToLower(s.String())) +
		MutedStyle.Render("]")
}
