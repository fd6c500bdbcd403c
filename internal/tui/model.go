// Package tui is a bubbletea front end over the dispatcher: pick a tool,
// answer its prompts, read the result.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/roach88/cfakit/internal/dispatch"
)

type state int

const (
	stateMenu state = iota
	stateInput
	stateResult
)

// Model is the root bubbletea model.
type Model struct {
	d        *dispatch.Dispatcher
	handlers []dispatch.Handler

	state   state
	cursor  int
	current dispatch.Handler
	answers []string
	input   textinput.Model

	result string
	failed bool
}

// NewModel creates the TUI model.
func NewModel(d *dispatch.Dispatcher) Model {
	ti := textinput.New()
	ti.Prompt = "> "

	return Model{
		d:        d,
		handlers: dispatch.Handlers(),
		input:    ti,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if ok && key.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.state {
	case stateMenu:
		if ok {
			return m.updateMenu(key)
		}
	case stateInput:
		return m.updateInput(msg)
	case stateResult:
		if ok {
			m.state = stateMenu
		}
	}
	return m, nil
}

func (m Model) updateMenu(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.handlers)-1 {
			m.cursor++
		}
	case "enter":
		return m.start(m.handlers[m.cursor])
	default:
		for i, h := range m.handlers {
			if h.Key == key.String() {
				m.cursor = i
				return m.start(h)
			}
		}
	}
	return m, nil
}

func (m Model) start(h dispatch.Handler) (tea.Model, tea.Cmd) {
	m.current = h
	m.answers = nil
	m.state = stateInput
	m.resetInput()
	cmd := m.input.Focus()
	return m, cmd
}

func (m *Model) resetInput() {
	m.input.Reset()
	m.input.Placeholder = strings.TrimSuffix(strings.TrimSpace(m.current.Prompts[len(m.answers)].Text), ":")
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc:
			m.input.Blur()
			m.state = stateMenu
			return m, nil
		case tea.KeyEnter:
			m.answers = append(m.answers, m.input.Value())
			if len(m.answers) < len(m.current.Prompts) {
				m.resetInput()
				return m, nil
			}
			m.input.Blur()
			m.evaluate()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) evaluate() {
	m.state = stateResult
	res, err := m.d.Evaluate(m.current.Op, m.answers)
	if err != nil {
		m.result = dispatch.Describe(m.current.Op, err)
		m.failed = true
		return
	}
	m.result = res.String()
	m.failed = false
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	switch m.state {
	case stateMenu:
		b.WriteString(titleStyle.Render("Quantitative Methods"))
		b.WriteString("\n")
		for i, h := range m.handlers {
			line := fmt.Sprintf("%s. %s", h.Key, h.Title)
			if i == m.cursor {
				b.WriteString(cursorStyle.Render("› " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString(helpStyle.Render("↑/↓ move • enter select • q quit"))

	case stateInput:
		b.WriteString(titleStyle.Render(m.current.Title))
		b.WriteString("\n")
		for i, a := range m.answers {
			b.WriteString(answeredStyle.Render(fmt.Sprintf("%s%s", m.current.Prompts[i].Text, a)))
			b.WriteString("\n")
		}
		b.WriteString(m.current.Prompts[len(m.answers)].Text)
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter submit • esc back"))

	case stateResult:
		b.WriteString(titleStyle.Render(m.current.Title))
		b.WriteString("\n")
		if m.failed {
			b.WriteString(errorStyle.Render(m.result))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("press any key to continue"))
	}

	b.WriteString("\n")
	return b.String()
}
