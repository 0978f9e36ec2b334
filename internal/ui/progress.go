package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"basgen/internal/assemble"
)

type progressModel struct {
	title       string
	events      <-chan assemble.Event
	spinner     spinner.Model
	prog        progress.Model
	items       []sectionItem
	index       map[string]int
	stageLabel  string
	streamStage assemble.Stage
	streamPct   float64
	width       int
	done        bool
}

type sectionItem struct {
	name   string
	status string
}

type eventMsg assemble.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders pipeline
// progress: one line per generated section, then a single bar for the
// streaming stages.
func NewProgressModel(title string, sections []string, events <-chan assemble.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76 // Default width

	items := make([]sectionItem, 0, len(sections))
	index := make(map[string]int, len(sections))
	for i, name := range sections {
		items = append(items, sectionItem{name: name, status: "queued"})
		index[name] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(assemble.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
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
		return m, nil
	case progress.FrameMsg:
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.stageLabel != "" {
		header = fmt.Sprintf("%s (%s)", header, m.stageLabel)
	}
	if m.done {
		header = fmt.Sprintf("done: %s", header)
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 12
	nameWidth := m.width - statusWidth - 4
	if nameWidth < 20 {
		nameWidth = 20
	}

	for _, item := range m.items {
		name := truncate(item.name, nameWidth)
		statusStyled := styleStatus(item.status).Render(fmt.Sprintf("%12s", item.status))
		b.WriteString(fmt.Sprintf("  %s %s", statusStyled, name))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")

	return b.String()
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

func (m *progressModel) applyEvent(ev assemble.Event) tea.Cmd {
	if ev.Section == "" {
		// Pipeline-level event: streaming stages carry an exact percent.
		if label := stageLabel(ev.Stage); label != "" {
			m.stageLabel = label
		}
		if ev.Stage != assemble.StageGenerate && ev.Stage != assemble.StageMerge {
			if ev.Stage != m.streamStage {
				m.streamStage = ev.Stage
				m.streamPct = 0
			}
			pct := ev.Percent
			if ev.Status == assemble.StatusDone {
				pct = 1.0
			}
			if pct > m.streamPct {
				m.streamPct = pct
			}
			return m.prog.SetPercent(m.streamPct)
		}
		return nil
	}

	idx, ok := m.index[ev.Section]
	if !ok {
		return nil
	}
	if label := statusLabel(ev.Status); label != "" {
		m.items[idx].status = label
	}

	settled := 0.0
	for _, item := range m.items {
		switch item.status {
		case "done", "error":
			settled += 1.0
		case "working":
			settled += 0.5
		}
	}
	return m.prog.SetPercent(settled / float64(len(m.items)))
}

func statusLabel(status assemble.Status) string {
	switch status {
	case assemble.StatusQueued:
		return "queued"
	case assemble.StatusWorking:
		return "working"
	case assemble.StatusDone:
		return "done"
	case assemble.StatusError:
		return "error"
	default:
		return ""
	}
}

func stageLabel(stage assemble.Stage) string {
	switch stage {
	case assemble.StageGenerate:
		return "generating"
	case assemble.StageMerge:
		return "merging"
	case assemble.StageSerialize:
		return "writing"
	case assemble.StagePad:
		return "padding"
	case assemble.StageValidate:
		return "validating"
	default:
		return ""
	}
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case "done":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case "error":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case "working":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
