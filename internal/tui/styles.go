package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorGreen  = lipgloss.Color("#10b981")
	colorYellow = lipgloss.Color("#f59e0b")
	colorRed    = lipgloss.Color("#ef4444")
	colorGray   = lipgloss.Color("#6b7280")
	colorCyan   = lipgloss.Color("#06b6d4")
	colorWhite  = lipgloss.Color("#f8fafc")
	colorDark   = lipgloss.Color("#1e293b")
)

// Status styles, used for the cluster health indicator.
var (
	StyleStatusGreen   = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	StyleStatusYellow  = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	StyleStatusRed     = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	StyleStatusUnknown = lipgloss.NewStyle().Foreground(colorGray)
)

// StyleHeader is the full-width dark header bar.
var StyleHeader = lipgloss.NewStyle().
	Background(colorDark).
	Foreground(colorWhite).
	Padding(0, 1)

// Report styles.
var (
	StyleTableHeader = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorGray)

	StyleActiveMaster = lipgloss.NewStyle().
				Foreground(colorCyan)

	StyleStale = lipgloss.NewStyle().
			Faint(true).
			Italic(true)
)

var (
	StyleError  = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	StyleDim    = lipgloss.NewStyle().Foreground(colorGray)
	StyleYellow = lipgloss.NewStyle().Foreground(colorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(colorRed)
)

// StatusStyle returns the style for a cluster health string.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case "green":
		return StyleStatusGreen
	case "yellow":
		return StyleStatusYellow
	case "red":
		return StyleStatusRed
	default:
		return StyleStatusUnknown
	}
}
