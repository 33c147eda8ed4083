package report

import "github.com/charmbracelet/lipgloss"

var (
	rose     = lipgloss.Color("#f38ba8")
	teal     = lipgloss.Color("#94e2d5")
	amber    = lipgloss.Color("#f9e2af")
	mauve    = lipgloss.Color("#cba6f7")
	text     = lipgloss.Color("#cdd6f4")
	subtext  = lipgloss.Color("#a6adc8")
	surface  = lipgloss.Color("#45475a")
	sapphire = lipgloss.Color("#74c7ec")

	pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(surface).
		Foreground(text).
		Padding(0, 1)

	title = lipgloss.NewStyle().Foreground(sapphire).Bold(true)
	muted = lipgloss.NewStyle().Foreground(subtext)
	value = lipgloss.NewStyle().Foreground(text).Bold(true)
)

var phaseColors = map[string]lipgloss.Color{
	"menstrual":  rose,
	"follicular": teal,
	"ovulatory":  amber,
	"luteal":     mauve,
}

func phaseStyle(phase string) lipgloss.Style {
	color, ok := phaseColors[phase]
	if !ok {
		color = subtext
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true)
}

func scoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 70:
		return value.Foreground(teal)
	case score < 40:
		return value.Foreground(rose)
	default:
		return value.Foreground(amber)
	}
}
