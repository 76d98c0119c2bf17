// Package tui provides the interactive Bubble Tea dashboard for larder.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/larderhq/larder/internal/ledger"
	"github.com/larderhq/larder/internal/model"
	"github.com/larderhq/larder/internal/report"
	"github.com/larderhq/larder/internal/store"
	"github.com/larderhq/larder/internal/tui/components"
	"github.com/larderhq/larder/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Tab indexes, matching components.Tabs order.
const (
	tabOverview = iota
	tabItems
	tabAdd
)

// DataLoadedMsg is sent when the ledger read and rollup finish.
type DataLoadedMsg struct {
	Reports  []report.ItemReport
	KPIs     report.KPIs
	ByItem   map[string][]model.Record
	Records  int64
	Excluded int
	Err      error
	LoadTime time.Duration
}

// RecordSavedMsg is sent when the entry form's record hits the ledger.
type RecordSavedMsg struct {
	Record model.Record
	Seq    int64
	Err    error
}

// App is the root Bubble Tea model.
type App struct {
	// Wiring
	dbPath   string
	window   int
	th       report.Thresholds
	currency string
	asOf     time.Time

	// Data
	reports  []report.ItemReport
	kpis     report.KPIs
	byItem   map[string][]model.Record
	records  int64
	excluded int
	loaded   bool
	loadErr  error
	loadTime time.Duration

	// UI state
	width      int
	height     int
	activeTab  int
	showHelp   bool
	itemCursor int

	// Entry form (huh)
	addForm  *huh.Form
	addVals  addValues
	savedMsg string

	spinner spinner.Model
}

const (
	minTerminalWidth = 70
	splitWidth       = 100 // items tab switches to side-by-side panes
	maxContentWidth  = 160

	minContentHeight = 5
)

// NewApp creates a new TUI app model.
func NewApp(dbPath string, windowDays int, th report.Thresholds, currency string) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	a := App{
		dbPath:   dbPath,
		window:   windowDays,
		th:       th,
		currency: currency,
		asOf:     model.Day(time.Now()),
		spinner:  sp,
	}
	a.addForm = newAddForm(&a.addVals, nil)
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.dbPath, a.asOf, a.window, a.th),
		a.spinner.Tick,
	)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.addForm != nil {
			a.addForm = a.addForm.WithWidth(a.contentWidth() - 4)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if a.activeTab == tabItems && a.itemCursor > 0 {
				a.itemCursor--
			}
			return a, nil
		case tea.MouseButtonWheelDown:
			if a.activeTab == tabItems && a.itemCursor < len(a.reports)-1 {
				a.itemCursor++
			}
			return a, nil
		case tea.MouseButtonLeft:
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
			return a, nil
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKeys(msg)

	case DataLoadedMsg:
		a.loaded = true
		a.loadErr = msg.Err
		a.loadTime = msg.LoadTime
		if msg.Err == nil {
			a.reports = msg.Reports
			a.kpis = msg.KPIs
			a.byItem = msg.ByItem
			a.records = msg.Records
			a.excluded = msg.Excluded
		}
		if a.itemCursor >= len(a.reports) {
			a.itemCursor = len(a.reports) - 1
		}
		if a.itemCursor < 0 {
			a.itemCursor = 0
		}
		// Rebuild the form so item suggestions reflect the fresh ledger
		a.addForm = newAddForm(&a.addVals, itemNames(a.reports))
		if a.width > 0 {
			a.addForm = a.addForm.WithWidth(a.contentWidth() - 4)
		}
		if a.activeTab == tabAdd {
			return a, a.addForm.Init()
		}
		return a, nil

	case RecordSavedMsg:
		if msg.Err != nil {
			a.savedMsg = fmt.Sprintf("could not save: %s", msg.Err)
			return a, nil
		}
		a.savedMsg = fmt.Sprintf("recorded %s %s on %s (row %d)",
			msg.Record.Status, msg.Record.Item,
			msg.Record.Date.Format("2006-01-02"), msg.Seq)
		return a, loadDataCmd(a.dbPath, a.asOf, a.window, a.th)

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to the entry form (cursor blinks, etc.)
	if a.activeTab == tabAdd && a.addForm != nil {
		return a.updateAddForm(msg)
	}

	return a, nil
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}

	if !a.loaded {
		return a, nil
	}

	// The entry form owns the keyboard while its tab is active
	if a.activeTab == tabAdd && a.addForm != nil {
		if key == "esc" {
			a.addForm = newAddForm(&a.addVals, itemNames(a.reports))
			a.savedMsg = ""
			a.activeTab = tabOverview
			return a, nil
		}
		return a.updateAddForm(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	if a.activeTab == tabItems {
		switch key {
		case "j", "down":
			if a.itemCursor < len(a.reports)-1 {
				a.itemCursor++
			}
			return a, nil
		case "k", "up":
			if a.itemCursor > 0 {
				a.itemCursor--
			}
			return a, nil
		case "g":
			a.itemCursor = 0
			return a, nil
		case "G":
			if len(a.reports) > 0 {
				a.itemCursor = len(a.reports) - 1
			}
			return a, nil
		}
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "r":
		return a, loadDataCmd(a.dbPath, a.asOf, a.window, a.th)
	case "o":
		a.activeTab = tabOverview
	case "i":
		a.activeTab = tabItems
	case "a":
		a.activeTab = tabAdd
		a.savedMsg = ""
		return a, a.addForm.Init()
	case "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case "right":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	}
	if a.activeTab == tabAdd {
		return a, a.addForm.Init()
	}
	return a, nil
}

func (a App) updateAddForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.addForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.addForm = f
	}

	if a.addForm.State == huh.StateCompleted {
		vals := a.addVals
		a.addForm = newAddForm(&a.addVals, itemNames(a.reports))
		return a, tea.Batch(a.addForm.Init(), saveRecordCmd(a.dbPath, vals))
	}

	if a.addForm.State == huh.StateAborted {
		a.addForm = newAddForm(&a.addVals, itemNames(a.reports))
		a.activeTab = tabOverview
		return a, nil
	}

	return a, cmd
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  larder needs at least %d columns.\n",
		a.width, minTerminalWidth)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ larder"))
	b.WriteString(subtitleStyle.Render(" · Pantry Runway"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Render(a.spinner.View()))
	b.WriteString(subtitleStyle.Render(" Reading the ledger..."))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	bindings := []struct{ key, desc string }{
		{"o i a", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Navigate items"},
		{"g G", "First / Last item"},
		{"r", "Reload the ledger"},
		{"Esc", "Leave the entry form"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range bindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	pillStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)
	pillAccent := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	pill := pillStyle.Render(" ") + pillAccent.Render(fmt.Sprintf("%dd window", a.window)) +
		pillStyle.Render(" │ ") + pillAccent.Render(a.asOf.Format("Jan 2"))

	pillRow := lipgloss.NewStyle().Background(t.Surface).Width(w).Render(pill)

	header := components.RenderTabBar(a.activeTab, w) + "\n" + pillRow

	statusBar := components.RenderStatusBar(w, a.records, a.excluded, a.asOf.Format("2006-01-02"))

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabItems:
		content = a.renderItemsTab(cw, contentH)
	case tabAdd:
		content = a.renderAddTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 1 // leading space
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW
		if i < len(components.Tabs)-1 {
			pos++ // separator column
		}
	}
	return -1
}

// loadDataCmd reads the whole ledger and computes the rollup.
func loadDataCmd(dbPath string, asOf time.Time, window int, th report.Thresholds) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()

		l, err := store.Open(dbPath)
		if err != nil {
			return DataLoadedMsg{Err: err, LoadTime: time.Since(start)}
		}
		defer func() { _ = l.Close() }()

		rows, err := l.ReadEverything()
		if err != nil {
			return DataLoadedMsg{Err: err, LoadTime: time.Since(start)}
		}
		count, err := l.Count()
		if err != nil {
			return DataLoadedMsg{Err: err, LoadTime: time.Since(start)}
		}

		records, warnings := ledger.Normalize(rows)
		reports, err := report.Build(records, asOf, window, th)
		if err != nil {
			return DataLoadedMsg{Err: err, LoadTime: time.Since(start)}
		}

		return DataLoadedMsg{
			Reports:  reports,
			KPIs:     report.Summarize(reports),
			ByItem:   ledger.GroupByItem(records),
			Records:  count,
			Excluded: len(warnings),
			LoadTime: time.Since(start),
		}
	}
}

func itemNames(reports []report.ItemReport) []string {
	names := make([]string, 0, len(reports))
	for _, r := range reports {
		names = append(names, r.Item)
	}
	return names
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color so
// gaps between cards and empty lines keep the app background.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}
