package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/refptr/ptr"
	"github.com/wippyai/refptr/script"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	strongStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	weakStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	expiredStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	eventStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const maxEventLines = 8

// eventLog collects formatted lifecycle events as they happen.
type eventLog struct {
	lines []string
}

func (l *eventLog) OnPointerEvent(e ptr.Event) {
	l.lines = append(l.lines, fmt.Sprintf("%s  block=%s shared=%d weak=%d",
		e.Type, shortID(e.Block.String()), e.Shared, e.Weak))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

type interactiveModel struct {
	runner *script.Runner
	events *eventLog
	input  textinput.Model
	errMsg string
	step   int
}

func newInteractiveModel() *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "new a hello"
	ti.Prompt = "> "
	ti.Width = 60
	ti.Focus()

	events := &eventLog{}
	ptr.Subscribe(events)

	return &interactiveModel{
		runner: script.NewRunner(),
		events: events,
		input:  ti,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, m.quit()

		case "enter":
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if line == "" {
				return m, nil
			}
			if line == "quit" || line == "exit" {
				return m, m.quit()
			}
			m.errMsg = ""
			m.step++
			st, err := parseCommand(line)
			if err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			if err := m.runner.Exec("interactive", m.step, st); err != nil {
				m.errMsg = err.Error()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *interactiveModel) quit() tea.Cmd {
	m.runner.Close()
	ptr.Unsubscribe(m.events)
	return tea.Quit
}

// parseCommand turns a command line into a scenario step.
//
//	new <ptr> [value...]       weak <ptr> [value...]
//	clone <ptr> <from>         move <ptr> <from>
//	assign <ptr> <from>        move-assign <ptr> <from>
//	downgrade <ptr> <from>     lock <ptr> <from>
//	reset <ptr> [value...]     release <ptr>
func parseCommand(line string) (*script.Step, error) {
	fields := strings.Fields(line)
	op := fields[0]
	args := fields[1:]

	st := &script.Step{Op: op}
	switch op {
	case "new", "weak", "reset":
		if len(args) < 1 {
			return nil, fmt.Errorf("%s needs a pointer name", op)
		}
		st.Ptr = args[0]
		if len(args) > 1 {
			v := strings.Join(args[1:], " ")
			st.Value = &v
		}
	case "clone", "move", "assign", "move-assign", "downgrade", "lock":
		if len(args) != 2 {
			return nil, fmt.Errorf("%s needs <ptr> <from>", op)
		}
		st.Ptr, st.From = args[0], args[1]
	case "release":
		if len(args) != 1 {
			return nil, fmt.Errorf("release needs a pointer name")
		}
		st.Ptr = args[0]
	default:
		return nil, fmt.Errorf("unknown command %q", op)
	}
	return st, nil
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("ptrlab"))
	b.WriteString(" strong/weak pointer playground\n\n")

	states := m.runner.States()
	if len(states) == 0 {
		b.WriteString(helpStyle.Render("no pointers yet"))
		b.WriteString("\n")
	}
	for _, st := range states {
		b.WriteString("  ")
		b.WriteString(m.formatState(st))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if lines := m.events.lines; len(lines) > 0 {
		start := 0
		if len(lines) > maxEventLines {
			start = len(lines) - maxEventLines
		}
		for _, line := range lines[start:] {
			b.WriteString(eventStyle.Render("  " + line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render("  " + m.errMsg))
		b.WriteString("\n\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("new/clone/move/assign/move-assign/downgrade/lock/reset/release • quit"))

	return b.String()
}

func (m *interactiveModel) formatState(st script.State) string {
	label := strongStyle.Render(st.Name)
	if st.Kind == "weak" {
		label = weakStyle.Render(st.Name)
	}
	switch {
	case st.Empty:
		return fmt.Sprintf("%s (%s) empty", label, st.Kind)
	case st.Kind == "weak" && st.Expired:
		return fmt.Sprintf("%s (weak) %s  shared=%d weak=%d",
			label, expiredStyle.Render("expired"), st.Shared, st.Weak)
	default:
		return fmt.Sprintf("%s (%s) %q  shared=%d weak=%d",
			label, st.Kind, st.Value, st.Shared, st.Weak)
	}
}

func runInteractive() error {
	p := tea.NewProgram(newInteractiveModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
