package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/larderhq/larder/internal/cli"
	"github.com/larderhq/larder/internal/model"
	"github.com/larderhq/larder/internal/report"
	"github.com/larderhq/larder/internal/tui/components"
	"github.com/larderhq/larder/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderItemsTab(cw, contentH int) string {
	t := theme.Active

	if len(a.reports) == 0 {
		dim := lipgloss.NewStyle().Foreground(t.TextMuted)
		return "\n  " + dim.Render("No items yet. Press [a] to add a record.")
	}

	if cw < splitWidth {
		return a.renderItemList(cw, contentH)
	}

	listW := cw * 2 / 5
	detailW := cw - listW

	list := a.renderItemList(listW, contentH)
	detail := a.renderItemDetail(detailW)

	list = padHeight(truncateHeight(list, contentH), contentH)
	detail = padHeight(truncateHeight(detail, contentH), contentH)

	return lipgloss.JoinHorizontal(lipgloss.Top, list, detail)
}

func (a App) renderItemList(w, contentH int) string {
	t := theme.Active

	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Width(w)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true).Width(w)

	nameW := w - 14
	if nameW < 8 {
		nameW = 8
	}

	// Keep the cursor visible when the list outgrows the pane
	visible := contentH - 1
	if visible < 3 {
		visible = 3
	}
	offset := 0
	if a.itemCursor >= visible {
		offset = a.itemCursor - visible + 1
	}

	var b strings.Builder
	for i := offset; i < len(a.reports) && i-offset < visible; i++ {
		r := a.reports[i]

		dot := alertDot(r)
		line := fmt.Sprintf(" %s %-*s %6s",
			dot, nameW, truncStr(r.Item, nameW), cli.FormatOptDays(r.Stats.RunwayDays))

		if i == a.itemCursor {
			b.WriteString(selStyle.Render(line))
		} else {
			b.WriteString(rowStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func alertDot(r report.ItemReport) string {
	t := theme.Active
	switch r.Alert {
	case report.AlertUrgent:
		return lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Render("●")
	case report.AlertWarn:
		return lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).Render("●")
	case report.AlertOK:
		return lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).Render("●")
	default:
		return lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("○")
	}
}

func (a App) renderItemDetail(w int) string {
	t := theme.Active

	if a.itemCursor >= len(a.reports) {
		return ""
	}
	r := a.reports[a.itemCursor]
	s := r.Stats

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	noteStyle := lipgloss.NewStyle().Foreground(t.Yellow)

	stock := cli.FormatOptQty(s.CurrentStock)
	if s.CurrentStock != nil && r.Unit != "" {
		stock = cli.FormatQtyUnit(*s.CurrentStock, r.Unit)
	}

	line := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-15s", label)) + valueStyle.Render(value)
	}

	rows := []string{
		line("Stock", stock),
		line("Usage/day", cli.FormatQty(s.AvgDailyUsage)),
		line("Runway", cli.FormatOptDays(s.RunwayDays)),
		line("Out on", cli.FormatDate(r.StockoutOn)),
		line("Suggested buy", cli.FormatQty(s.SuggestedQty)),
		"",
		line("Last reading", cli.FormatDate(s.LastRemainingDate)),
		line("Last purchase", cli.FormatDate(s.LastBuyDate)),
		line("Buy interval", cli.FormatOptDays(s.AvgBuyGapDays)),
		line("Total spend", cli.FormatMoney(a.currency, s.TotalSpend)),
	}

	if spark := a.detailSparkline(r.Item); spark != "" {
		rows = append(rows, "", labelStyle.Render("Remaining")+" "+spark)
	}

	for _, note := range s.DataNotes {
		rows = append(rows, "", noteStyle.Render(truncStr(note, components.CardInnerWidth(w))))
	}

	title := r.Item
	if r.Category != "" {
		title += "  ·  " + r.Category
	}
	return components.ContentCard(title, strings.Join(rows, "\n"), w)
}

// detailSparkline charts the item's remaining readings in date order.
func (a App) detailSparkline(item string) string {
	records := a.byItem[item]

	ordered := make([]model.Record, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].Date.Before(ordered[j].Date)
		}
		return ordered[i].Seq < ordered[j].Seq
	})

	var values []float64
	for _, rec := range ordered {
		if rec.Status == model.StatusRemaining {
			values = append(values, rec.Quantity)
		}
	}
	if len(values) < 2 {
		return ""
	}
	return components.Sparkline(values, theme.Active.Cyan)
}
