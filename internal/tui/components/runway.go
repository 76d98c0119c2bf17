package components

import (
	"fmt"

	"github.com/larderhq/larder/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForRunway returns red/orange/green based on how the runway compares
// to the alert thresholds.
func ColorForRunway(days float64, warnDays, urgentDays int) string {
	t := theme.Active
	switch {
	case days < float64(urgentDays):
		return string(t.Red)
	case days < float64(warnDays):
		return string(t.Orange)
	default:
		return string(t.Green)
	}
}

// RunwayBar renders a labeled bar showing how much runway an item has left.
// The bar fills toward twice the warn threshold, so anything comfortably
// stocked reads as full.
func RunwayBar(label string, days float64, warnDays, urgentDays, labelW, barWidth int) string {
	t := theme.Active

	scale := float64(2 * warnDays)
	if scale <= 0 {
		scale = 14
	}
	pct := days / scale
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}

	color := ColorForRunway(days, warnDays, urgentDays)

	bar := progress.New(
		progress.WithSolidFill(color),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	daysStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(pct) +
		spaceStyle.Render(" ") +
		daysStyle.Render(fmt.Sprintf("%5.1fd", days))
}
