package ui

import "github.com/charmbracelet/lipgloss"

// Color palette. One warm accent for references, muted grays for
// everything else so verse text stays readable.
const (
	ColorGold     = "178" // Primary accent - references, headers
	ColorGoldDim  = "136" // Dimmed accent - ranks, translation tags
	ColorWhite    = "255"
	ColorGray     = "245" // Scores, secondary labels
	ColorDarkGray = "238" // Separators
	ColorRed      = "196" // Errors
	ColorYellow   = "220" // Warnings
)

// Styles holds the render styles for terminal output.
type Styles struct {
	Reference   lipgloss.Style
	Text        lipgloss.Style
	Rank        lipgloss.Style
	Score       lipgloss.Style
	Translation lipgloss.Style
	Header      lipgloss.Style
	Error       lipgloss.Style
	Warning     lipgloss.Style
	Dim         lipgloss.Style
}

// DefaultStyles returns the colored styles.
func DefaultStyles() Styles {
	return Styles{
		Reference:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorGold)),
		Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWhite)),
		Rank:        lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGoldDim)),
		Score:       lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Translation: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGoldDim)),
		Header:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorGold)),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed)),
		Warning:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorYellow)),
		Dim:         lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
	}
}

// NoColorStyles returns unstyled output for plain mode.
func NoColorStyles() Styles {
	return Styles{
		Reference:   lipgloss.NewStyle(),
		Text:        lipgloss.NewStyle(),
		Rank:        lipgloss.NewStyle(),
		Score:       lipgloss.NewStyle(),
		Translation: lipgloss.NewStyle(),
		Header:      lipgloss.NewStyle(),
		Error:       lipgloss.NewStyle(),
		Warning:     lipgloss.NewStyle(),
		Dim:         lipgloss.NewStyle(),
	}
}

// GetStyles returns the styles for the color preference.
func GetStyles(noColor bool) Styles {
	if noColor {
		return NoColorStyles()
	}
	return DefaultStyles()
}
