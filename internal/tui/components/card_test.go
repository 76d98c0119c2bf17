package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/larderhq/larder/internal/tui/theme"
	"github.com/muesli/termenv"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	cases := []struct {
		total, n int
	}{
		{120, 4},
		{121, 4},
		{123, 4},
		{80, 3},
		{7, 2},
	}
	for _, c := range cases {
		widths := LayoutRow(c.total, c.n)
		if len(widths) != c.n {
			t.Fatalf("LayoutRow(%d, %d) returned %d widths", c.total, c.n, len(widths))
		}
		sum := 0
		for _, w := range widths {
			sum += w
			if w < c.total/c.n || w > c.total/c.n+1 {
				t.Errorf("LayoutRow(%d, %d): uneven width %d", c.total, c.n, w)
			}
		}
		if sum != c.total {
			t.Errorf("LayoutRow(%d, %d) sums to %d", c.total, c.n, sum)
		}
	}
}

func TestLayoutRowZeroCards(t *testing.T) {
	if got := LayoutRow(100, 0); got != nil {
		t.Errorf("LayoutRow(100, 0) = %v, want nil", got)
	}
}

func TestContentCardKeepsWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")

	card := ContentCard("Title", "body line", 30)
	for i, line := range strings.Split(card, "\n") {
		if w := lipgloss.Width(line); w != 30 {
			t.Errorf("line %d: width %d, want 30", i, w)
		}
	}
}

func TestMetricCardRowHeightsAlign(t *testing.T) {
	theme.SetActive("flexoki-dark")

	row := MetricCardRow([]struct{ Label, Value, Note string }{
		{"Items", "12", ""},
		{"Spend", "$84.00", "all time"},
	}, 60)

	lines := strings.Split(row, "\n")
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 60 {
			t.Errorf("line %d: width %d, want 60", i, w)
		}
	}
}

func TestSparklinePeaksAtFullBlock(t *testing.T) {
	theme.SetActive("flexoki-dark")

	out := Sparkline([]float64{0, 5, 10}, theme.Active.Cyan)
	if !strings.ContainsRune(out, '█') {
		t.Errorf("sparkline %q missing full block for the peak", out)
	}
	if !strings.ContainsRune(out, '▁') {
		t.Errorf("sparkline %q missing minimum block for zero", out)
	}
}
