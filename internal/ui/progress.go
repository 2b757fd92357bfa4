package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"sealscan/internal/driver"
)

// DefaultMaxRows bounds the file list; the rest is summarised in one line.
const DefaultMaxRows = 12

// rowState is where a file stands in the scan. The order follows the pipeline.
type rowState uint8

const (
	rowQueued rowState = iota
	rowLoading
	rowParsing
	rowResolving
	rowSealing
	rowDone
	rowCached
	rowFailed
)

func (s rowState) label() string {
	switch s {
	case rowLoading:
		return "loading"
	case rowParsing:
		return "parsing"
	case rowResolving:
		return "resolving"
	case rowSealing:
		return "sealing"
	case rowDone:
		return "done"
	case rowCached:
		return "cached"
	case rowFailed:
		return "failed"
	default:
		return "queued"
	}
}

func (s rowState) final() bool {
	return s >= rowDone
}

// weight is the share of a file's work finished once it is in s.
func (s rowState) weight() float64 {
	switch {
	case s.final():
		return 1
	case s == rowSealing:
		return 0.75
	case s == rowResolving:
		return 0.5
	case s == rowParsing:
		return 0.25
	default:
		return 0
	}
}

func (s rowState) style() lipgloss.Style {
	switch s {
	case rowDone:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case rowCached:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	case rowFailed:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case rowQueued:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	}
}

func stateFor(ev driver.Event) (rowState, bool) {
	switch ev.Status {
	case driver.StatusQueued:
		return rowQueued, true
	case driver.StatusDone:
		return rowDone, true
	case driver.StatusCached:
		return rowCached, true
	case driver.StatusError:
		return rowFailed, true
	case driver.StatusWorking:
		switch ev.Stage {
		case driver.StageLoad:
			return rowLoading, true
		case driver.StageParse:
			return rowParsing, true
		case driver.StageResolve:
			return rowResolving, true
		case driver.StageSealed:
			return rowSealing, true
		}
	}
	return rowQueued, false
}

type fileRow struct {
	path       string
	state      rowState
	sealed     int
	inheritors int
	reason     string
}

func (r fileRow) detail() string {
	switch r.state {
	case rowFailed:
		return r.reason
	case rowDone, rowCached:
		if r.sealed == 0 {
			return ""
		}
		return fmt.Sprintf("%d sealed, %d inheritors", r.sealed, r.inheritors)
	default:
		return ""
	}
}

type scanModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	rows    []fileRow
	index   map[string]int
	width   int
	maxRows int
	done    bool
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that follows a scan through
// its events until the channel is closed. files may be empty; unknown files
// are added as their first event arrives.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 76

	m := &scanModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		index:   make(map[string]int, len(files)),
		width:   80,
		maxRows: DefaultMaxRows,
	}
	for _, f := range files {
		m.row(f)
	}
	return m
}

func (m *scanModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *scanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(driver.Event(msg)), m.next())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
		if msg.Height > 10 {
			m.maxRows = msg.Height - 8
		}
		return m, nil
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *scanModel) next() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *scanModel) row(path string) *fileRow {
	idx, ok := m.index[path]
	if !ok {
		idx = len(m.rows)
		m.rows = append(m.rows, fileRow{path: path})
		m.index[path] = idx
	}
	return &m.rows[idx]
}

func (m *scanModel) apply(ev driver.Event) tea.Cmd {
	if ev.File == "" {
		return nil
	}
	state, ok := stateFor(ev)
	r := m.row(ev.File)
	if !ok || (r.state.final() && !state.final()) {
		return nil
	}
	r.state = state
	if state.final() {
		r.sealed, r.inheritors = ev.Sealed, ev.Inheritors
		if ev.Err != nil {
			r.reason = ev.Err.Error()
		}
	}
	return m.bar.SetPercent(m.percent())
}

func (m *scanModel) percent() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	total := 0.0
	for _, r := range m.rows {
		total += r.state.weight()
	}
	return total / float64(len(m.rows))
}

// reached counts files that have at least entered s.
func (m *scanModel) reached(s rowState) int {
	n := 0
	for _, r := range m.rows {
		if r.state >= s {
			n++
		}
	}
	return n
}

type totals struct {
	sealed, inheritors, failed, cached int
}

func (m *scanModel) totals() totals {
	var t totals
	for _, r := range m.rows {
		t.sealed += r.sealed
		t.inheritors += r.inheritors
		switch r.state {
		case rowFailed:
			t.failed++
		case rowCached:
			t.cached++
		}
	}
	return t
}

// visible picks the rows to draw: failures and in-flight files first, then
// finished ones, in scan order within each group.
func (m *scanModel) visible() (rows []fileRow, hidden int) {
	var busy, finished []fileRow
	for _, r := range m.rows {
		if r.state == rowFailed || !r.state.final() {
			busy = append(busy, r)
		} else {
			finished = append(finished, r)
		}
	}
	rows = append(busy, finished...)
	if m.maxRows > 0 && len(rows) > m.maxRows {
		return rows[:m.maxRows], len(rows) - m.maxRows
	}
	return rows, 0
}

func (m *scanModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	n := len(m.rows)
	header := fmt.Sprintf("%s  parsed %d/%d  resolved %d/%d  sealed %d/%d",
		m.title, m.reached(rowResolving), n, m.reached(rowSealing), n, m.reached(rowDone), n)
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(header))
	b.WriteString("\n\n")

	const stateWidth = 10
	nameWidth := max(m.width/2, 20)
	detailWidth := max(m.width-stateWidth-nameWidth-6, 10)
	rows, hidden := m.visible()
	for _, r := range rows {
		state := r.state.style().Render(fmt.Sprintf("%*s", stateWidth, r.state.label()))
		line := fmt.Sprintf("  %s %s", state, runewidth.FillRight(truncate(r.path, nameWidth), nameWidth))
		if d := r.detail(); d != "" {
			line += " " + truncate(d, detailWidth)
		}
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteString("\n")
	}
	if hidden > 0 {
		fmt.Fprintf(&b, "  %*s %d more files\n", stateWidth, "+", hidden)
	}

	t := m.totals()
	summary := fmt.Sprintf("%d sealed classes, %d inheritors", t.sealed, t.inheritors)
	if t.cached > 0 {
		summary += fmt.Sprintf(", %d cached", t.cached)
	}
	if t.failed > 0 {
		summary += fmt.Sprintf(", %d failed", t.failed)
	}
	b.WriteString("\n  " + summary + "\n")
	if m.done {
		b.WriteString(m.bar.ViewAs(1.0))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	return b.String()
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
