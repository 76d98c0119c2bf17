package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/larderhq/larder/internal/ledger"
	"github.com/larderhq/larder/internal/model"
	"github.com/larderhq/larder/internal/store"
	"github.com/larderhq/larder/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// addValues backs the entry form fields. Numeric fields stay as text until
// submit so the form can validate them in place.
type addValues struct {
	item     string
	status   string
	qty      string
	unit     string
	price    string
	category string
	date     string
	notes    string
}

func newAddForm(v *addValues, suggestions []string) *huh.Form {
	*v = addValues{
		status: string(model.StatusBuy),
		date:   time.Now().Format("2006-01-02"),
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Item").
				Placeholder("rice").
				Suggestions(suggestions).
				Value(&v.item).
				Validate(requireText("item name")),
			huh.NewSelect[string]().
				Title("Status").
				Options(
					huh.NewOption("buy", string(model.StatusBuy)),
					huh.NewOption("remaining", string(model.StatusRemaining)),
				).
				Value(&v.status),
			huh.NewInput().
				Title("Quantity").
				Placeholder("1.5").
				Value(&v.qty).
				Validate(requirePositiveNumber),
			huh.NewInput().
				Title("Unit").
				Placeholder("kg").
				Value(&v.unit),
			huh.NewInput().
				Title("Unit price").
				Description("For buy records, leave blank otherwise").
				Value(&v.price).
				Validate(optionalNumber),
			huh.NewInput().
				Title("Category").
				Placeholder("staples").
				Value(&v.category),
			huh.NewInput().
				Title("Date").
				Value(&v.date).
				Validate(requireDate),
			huh.NewInput().
				Title("Notes").
				Value(&v.notes),
		),
	).WithShowHelp(true)
}

func requireText(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", what)
		}
		return nil
	}
}

func requirePositiveNumber(s string) error {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("not a number")
	}
	if n <= 0 {
		return fmt.Errorf("must be positive")
	}
	return nil
}

func optionalNumber(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("not a number")
	}
	if n < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func requireDate(s string) error {
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

// saveRecordCmd validates the form values and appends the record.
func saveRecordCmd(dbPath string, v addValues) tea.Cmd {
	return func() tea.Msg {
		qty, _ := strconv.ParseFloat(strings.TrimSpace(v.qty), 64)
		price := 0.0
		if p := strings.TrimSpace(v.price); p != "" {
			price, _ = strconv.ParseFloat(p, 64)
		}
		date, err := time.Parse("2006-01-02", strings.TrimSpace(v.date))
		if err != nil {
			return RecordSavedMsg{Err: err}
		}

		rec := model.Record{
			Date:      model.Day(date),
			Item:      strings.TrimSpace(v.item),
			Category:  strings.TrimSpace(v.category),
			Status:    model.Status(v.status),
			Quantity:  qty,
			Unit:      strings.TrimSpace(v.unit),
			UnitPrice: price,
			Notes:     strings.TrimSpace(v.notes),
		}
		if rec.Status == model.StatusBuy {
			rec.TotalCost = rec.Quantity * rec.UnitPrice
		}

		if err := ledger.ValidateNew(rec); err != nil {
			return RecordSavedMsg{Err: err}
		}

		l, err := store.Open(dbPath)
		if err != nil {
			return RecordSavedMsg{Err: err}
		}
		defer func() { _ = l.Close() }()

		seq, err := l.Append(rec)
		if err != nil {
			return RecordSavedMsg{Err: err}
		}
		return RecordSavedMsg{Record: rec, Seq: seq}
	}
}

func (a App) renderAddTab(cw int) string {
	t := theme.Active

	var b strings.Builder
	b.WriteString("\n")
	if a.addForm != nil {
		b.WriteString(a.addForm.View())
	}

	if a.savedMsg != "" {
		style := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
		if strings.HasPrefix(a.savedMsg, "could not save") {
			style = style.Foreground(t.Red)
		}
		b.WriteString("\n  ")
		b.WriteString(style.Render(a.savedMsg))
	}
	return b.String()
}
