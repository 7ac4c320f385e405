package style

import "github.com/charmbracelet/lipgloss"

// Colors of the playlist view and the dependency box. They assume a dark terminal.
var (
	Base = lipgloss.Color("#1e1e2e")
	Text = lipgloss.Color("#cdd6f4")

	AccentColor = lipgloss.Color("#cba6f7")
	ErrorColor  = lipgloss.Color("#f38ba8")
)
