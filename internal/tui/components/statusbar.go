package components

import (
	"fmt"

	"github.com/larderhq/larder/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, records int64, excluded int, asOf string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width)

	left := " [?]help  [r]efresh  [q]uit"
	right := fmt.Sprintf("%d records", records)
	if excluded > 0 {
		right += fmt.Sprintf(" (%d excluded)", excluded)
	}
	if asOf != "" {
		right += "  " + asOf
	}
	right += " "

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	bar := left
	for i := 0; i < padding; i++ {
		bar += " "
	}
	bar += right

	return style.Render(bar)
}
