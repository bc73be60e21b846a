package ui

import (
	"github.com/charmbracelet/lipgloss"

	"xplr/internal/config"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#4F4FB7")).
			Padding(0, 1)

	focusedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#4F4FB7"))

	selectedMarkStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#00FF00"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#959595"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D0D070"))

	helpStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#626262")).
			Padding(0, 1)
)

// styleFor converts a configured style into a lipgloss style.
func styleFor(s config.Style) lipgloss.Style {
	style := lipgloss.NewStyle()
	if s.Fg != "" {
		style = style.Foreground(lipgloss.Color(s.Fg))
	}
	if s.Bg != "" {
		style = style.Background(lipgloss.Color(s.Bg))
	}
	for _, m := range s.AddModifiers {
		switch m {
		case "bold":
			style = style.Bold(true)
		case "italic":
			style = style.Italic(true)
		case "underline", "underlined":
			style = style.Underline(true)
		case "dim":
			style = style.Faint(true)
		case "reversed":
			style = style.Reverse(true)
		case "crossed_out":
			style = style.Strikethrough(true)
		}
	}
	return style
}
