// Package tui renders the lead form controller as a Bubble Tea program.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wolfman30/lead-capture/internal/leadform"
)

type submitDoneMsg struct{ err error }

type formField struct {
	field leadform.Field
	label string
	input textinput.Model
}

// Model is the Bubble Tea model for the lead form.
type Model struct {
	ctx     context.Context
	ctrl    *leadform.Controller
	fields  []formField
	focus   int
	pending bool
	spinner spinner.Model
}

// New builds a form bound to ctrl. ctx bounds every submission.
func New(ctx context.Context, ctrl *leadform.Controller) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	m := Model{
		ctx:  ctx,
		ctrl: ctrl,
		fields: []formField{
			newField(leadform.FieldName, "Full name", "Jane Doe", 120),
			newField(leadform.FieldMobile, "Mobile", "5551234567", 32),
			newField(leadform.FieldEmail, "Email", "jane@example.com", 254),
		},
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	m.fields[0].input.Focus()
	return m
}

func newField(field leadform.Field, label, placeholder string, limit int) formField {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	return formField{field: field, label: label, input: ti}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case submitDoneMsg:
		m.pending = false
		if m.ctrl.State() == leadform.StateSubmitted {
			for i := range m.fields {
				m.fields[i].input.SetValue("")
				m.fields[i].input.Blur()
			}
		}
		return m, nil
	case spinner.TickMsg:
		if !m.pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	}
	if m.pending {
		return m, nil
	}

	if m.ctrl.State() == leadform.StateSubmitted {
		switch msg.String() {
		case "r", "enter", "ctrl+r":
			m.ctrl.Reset()
			return m, m.setFocus(0)
		case "q":
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "tab", "down":
		return m, m.setFocus((m.focus + 1) % len(m.fields))
	case "shift+tab", "up":
		return m, m.setFocus((m.focus + len(m.fields) - 1) % len(m.fields))
	case "enter":
		if m.focus < len(m.fields)-1 {
			return m, m.setFocus(m.focus + 1)
		}
		m.pending = true
		return m, tea.Batch(m.spinner.Tick, m.submit())
	}

	var cmd tea.Cmd
	f := &m.fields[m.focus]
	f.input, cmd = f.input.Update(msg)
	m.ctrl.SetField(f.field, f.input.Value())
	return m, cmd
}

func (m *Model) setFocus(i int) tea.Cmd {
	m.focus = i
	var cmd tea.Cmd
	for j := range m.fields {
		if j == i {
			cmd = m.fields[j].input.Focus()
		} else {
			m.fields[j].input.Blur()
		}
	}
	return cmd
}

func (m Model) submit() tea.Cmd {
	for _, f := range m.fields {
		m.ctrl.SetField(f.field, f.input.Value())
	}
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return submitDoneMsg{err: ctrl.Submit(ctx)}
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Start your journey"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Get personalized guidance from our team"))
	b.WriteString("\n\n")

	if m.ctrl.State() == leadform.StateSubmitted {
		b.WriteString(successStyle.Render("✔ " + m.ctrl.Notice().Message))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("r submit another request • q quit"))
		return panelStyle.Render(b.String())
	}

	fieldErrs := m.ctrl.FieldErrors()
	for i, f := range m.fields {
		label := labelStyle.Render(f.label)
		if i == m.focus {
			label = focusedStyle.Render(f.label)
		}
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(f.input.View())
		b.WriteString("\n")
		if msg, ok := fieldErrs[string(f.field)]; ok {
			b.WriteString(fieldErrStyle.Render(msg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	switch {
	case m.pending:
		b.WriteString(m.spinner.View() + " Submitting...")
	case m.ctrl.Notice().Kind == leadform.NoticeError:
		b.WriteString(errorStyle.Render("✖ " + m.ctrl.Notice().Message))
	default:
		b.WriteString(helpStyle.Render("tab next • enter submit • esc quit"))
	}
	return panelStyle.Render(b.String())
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, ctrl *leadform.Controller) error {
	_, err := tea.NewProgram(New(ctx, ctrl), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
