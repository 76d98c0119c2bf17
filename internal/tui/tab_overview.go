package tui

import (
	"fmt"
	"strings"

	"github.com/larderhq/larder/internal/cli"
	"github.com/larderhq/larder/internal/tui/components"
	"github.com/larderhq/larder/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// maxRestockRows caps the restock list on the overview tab.
const maxRestockRows = 8

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active

	if a.loadErr != nil {
		errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
		return "\n  " + errStyle.Render(fmt.Sprintf("ledger error: %s", a.loadErr))
	}
	if len(a.reports) == 0 {
		dim := lipgloss.NewStyle().Foreground(t.TextMuted)
		return "\n  " + dim.Render("The ledger is empty.") +
			"\n  " + dim.Render("Press [a] to record your first purchase.")
	}

	var b strings.Builder

	b.WriteString(components.MetricCardRow([]struct{ Label, Value, Note string }{
		{"Items", cli.FormatNumber(int64(a.kpis.Items)), ""},
		{"Spend", cli.FormatMoney(a.currency, a.kpis.TotalSpend), "all time"},
		{"Due soon", cli.FormatNumber(int64(a.kpis.DueWithinWarn)), fmt.Sprintf("< %dd runway", a.th.WarnDays)},
		{"In use", cli.FormatNumber(int64(a.kpis.ActiveItems)), "with usage data"},
	}, cw))
	b.WriteString("\n")

	b.WriteString(a.renderRestockCard(cw))

	return b.String()
}

// renderRestockCard lists the items nearest to running out, soonest first.
func (a App) renderRestockCard(cw int) string {
	t := theme.Active
	inner := components.CardInnerWidth(cw)

	labelW := 16
	barW := inner - labelW - 10
	if barW > 40 {
		barW = 40
	}
	if barW < 8 {
		barW = 8
	}

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	sugStyle := lipgloss.NewStyle().Foreground(t.Yellow).Background(t.Surface)

	var rows []string
	for _, r := range a.reports {
		if r.Stats.RunwayDays == nil {
			continue
		}
		line := components.RunwayBar(truncStr(r.Item, labelW), *r.Stats.RunwayDays,
			a.th.WarnDays, a.th.UrgentDays, labelW, barW)
		if r.Stats.SuggestedQty > 0 {
			line += sugStyle.Render(fmt.Sprintf("  buy %s",
				cli.FormatQtyUnit(r.Stats.SuggestedQty, r.Unit)))
		}
		rows = append(rows, line)
		if len(rows) >= maxRestockRows {
			break
		}
	}

	if len(rows) == 0 {
		rows = append(rows, dimStyle.Render("No items with usage data yet."))
	}

	return components.ContentCard("Restock next", strings.Join(rows, "\n"), cw)
}
