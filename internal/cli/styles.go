package cli

import "github.com/charmbracelet/lipgloss"

// Gruvbox-inspired color palette.
var (
	colorGreen  = lipgloss.Color("#8ec07c")
	colorYellow = lipgloss.Color("#fabd2f")
	colorDim    = lipgloss.Color("#928374")
	colorFg     = lipgloss.Color("#ebdbb2")
	colorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	styleGreen  = lipgloss.NewStyle().Foreground(colorGreen)
	styleYellow = lipgloss.NewStyle().Foreground(colorYellow)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
	styleHeader = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
	styleBold   = lipgloss.NewStyle().Foreground(colorFg).Bold(true)
)
