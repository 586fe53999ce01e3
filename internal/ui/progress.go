package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"reform/internal/driver"
)

// statusWidth fits the longest label, "laying out".
const statusWidth = 11

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	prog    progress.Model
	items   []fileItem
	index   map[string]int
	width   int
	height  int
	done    bool
}

type fileItem struct {
	path    string
	status  string
	phase   driver.Phase
	elapsed time.Duration
	err     error
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that shows formatting
// progress per file. It quits once events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   make([]fileItem, len(files)),
		index:   make(map[string]int, len(files)),
		width:   80,
	}
	for i, file := range files {
		m.items[i] = fileItem{path: file, status: "queued"}
		m.index[file] = i
	}
	return m
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.applyEvent(driver.Event(msg)), m.listenForEvent())
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
			m.prog.Width = msg.Width - 4
		}
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		// форматирование не прерываем, только перестаём рисовать
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	idx, ok := m.index[ev.File]
	if !ok {
		return nil
	}
	item := &m.items[idx]
	if label := statusLabel(ev.Phase, ev.Status, ev.Changed); label != "" {
		item.status = label
	}
	item.phase = ev.Phase
	if ev.Status == driver.StatusDone || ev.Status == driver.StatusError {
		item.elapsed = ev.Elapsed
		item.err = ev.Err
	}
	return m.prog.SetPercent(m.fraction())
}

func (m *progressModel) fraction() float64 {
	if len(m.items) == 0 {
		return 0
	}
	total := 0.0
	for _, item := range m.items {
		if finished(item.status) {
			total++
			continue
		}
		total += progressFromPhase(item.phase)
	}
	return total / float64(len(m.items))
}

func finished(status string) bool {
	return status == "formatted" || status == "unchanged" || status == "error"
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	nameWidth := max(m.width-statusWidth-14, 20)
	first, last := m.window()
	if first > 0 {
		fmt.Fprintf(&b, "  %s\n", dim.Render(fmt.Sprintf("… %d more above", first)))
	}
	for _, item := range m.items[first:last] {
		status := styleStatus(item.status).Render(fmt.Sprintf("%*s", statusWidth, item.status))
		fmt.Fprintf(&b, "  %s %s", status, truncate(item.path, nameWidth))
		if finished(item.status) && item.elapsed > 0 {
			b.WriteString(dim.Render(fmt.Sprintf("  %.1fms", float64(item.elapsed.Microseconds())/1000)))
		}
		b.WriteString("\n")
		if item.err != nil {
			fmt.Fprintf(&b, "  %*s %s\n", statusWidth, "", styleStatus("error").Render(truncate(item.err.Error(), nameWidth)))
		}
	}
	if rest := len(m.items) - last; rest > 0 {
		fmt.Fprintf(&b, "  %s\n", dim.Render(fmt.Sprintf("… %d more below", rest)))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	b.WriteString(m.summary())
	b.WriteString("\n")
	return b.String()
}

// window picks the rows that fit the terminal, keeping the first file that
// is still in progress visible.
func (m *progressModel) window() (first, last int) {
	rows := len(m.items)
	if m.height <= 0 || rows <= m.height-8 {
		return 0, rows
	}
	room := max(m.height-8, 3)
	focus := 0
	for i, item := range m.items {
		if !finished(item.status) {
			focus = i
			break
		}
		focus = i
	}
	first = max(min(focus-room/2, rows-room), 0)
	return first, min(first+room, rows)
}

func (m *progressModel) summary() string {
	var formatted, unchanged, failed int
	for _, item := range m.items {
		switch item.status {
		case "formatted":
			formatted++
		case "unchanged":
			unchanged++
		case "error":
			failed++
		}
	}
	parts := []string{
		styleStatus("formatted").Render(fmt.Sprintf("%d formatted", formatted)),
		styleStatus("unchanged").Render(fmt.Sprintf("%d unchanged", unchanged)),
	}
	if failed > 0 {
		parts = append(parts, styleStatus("error").Render(fmt.Sprintf("%d failed", failed)))
	}
	return strings.Join(parts, dim.Render(", "))
}

var dim = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

func progressFromPhase(phase driver.Phase) float64 {
	switch phase {
	case driver.PhaseLex:
		return 0.1
	case driver.PhaseStructure:
		return 0.3
	case driver.PhaseLayout:
		return 0.5
	case driver.PhaseAlign:
		return 0.8
	case driver.PhaseWrite:
		return 0.9
	default:
		return 0.0
	}
}

func statusLabel(phase driver.Phase, status driver.Status, changed bool) string {
	switch status {
	case driver.StatusQueued:
		return "queued"
	case driver.StatusDone:
		if changed {
			return "formatted"
		}
		return "unchanged"
	case driver.StatusError:
		return "error"
	case driver.StatusWorking:
		return phaseLabel(phase)
	default:
		return ""
	}
}

func phaseLabel(phase driver.Phase) string {
	switch phase {
	case driver.PhaseLex:
		return "lexing"
	case driver.PhaseStructure:
		return "parsing"
	case driver.PhaseLayout:
		return "laying out"
	case driver.PhaseAlign:
		return "aligning"
	case driver.PhaseWrite:
		return "writing"
	default:
		return ""
	}
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case "formatted":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	case "unchanged":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case "error":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case "lexing", "parsing", "laying out", "aligning", "writing":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
