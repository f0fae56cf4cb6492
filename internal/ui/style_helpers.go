package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// bar renders segments onto a solid background. lipgloss resets between
// styled segments leave unpainted gaps, so every space is painted explicitly.
// See https://github.com/charmbracelet/lipgloss/discussions/78
type bar struct {
	bg    lipgloss.Color
	space string
}

func newBar(bgColor string) bar {
	bg := lipgloss.Color(bgColor)
	return bar{
		bg:    bg,
		space: lipgloss.NewStyle().Background(bg).Render(" "),
	}
}

// segment renders text with style on the bar background, spaces included.
func (b bar) segment(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	styled := style.Background(b.bg)
	if !strings.Contains(text, " ") {
		return styled.Render(text)
	}
	words := strings.Split(text, " ")
	for i, w := range words {
		if w != "" {
			words[i] = styled.Render(w)
		}
	}
	return strings.Join(words, b.space)
}

// join joins rendered segments with a painted separator.
func (b bar) join(parts []string, sep string) string {
	return strings.Join(parts, lipgloss.NewStyle().Background(b.bg).Render(sep))
}

// fill pads content to width with the bar background.
func (b bar) fill(content string, width int) string {
	return lipgloss.NewStyle().Background(b.bg).Width(width).Render(content)
}
