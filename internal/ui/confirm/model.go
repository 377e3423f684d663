package confirm

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/careerlog/careerlog/internal/theme"
	"github.com/careerlog/careerlog/internal/ui"
)

// ResultMsg reports the user's answer. Subject echoes what was asked about.
type ResultMsg struct {
	Subject   string
	Confirmed bool
}

// Model asks a single yes/no question before a destructive action.
type Model struct {
	form    *huh.Form
	answer  *bool
	subject string
	width   int
	height  int
}

// New creates an idle confirmation model.
func New(width, height int) Model {
	return Model{answer: new(bool), width: width, height: height}
}

// Ask starts a new question about subject.
func (m *Model) Ask(subject, title, description string) tea.Cmd {
	m.subject = subject
	*m.answer = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes, delete").
				Negative("Cancel").
				Value(m.answer),
		),
	).WithKeyMap(ui.FormKeyMap()).WithWidth(min(max(m.width-4, 40), 100))
	return m.form.Init()
}

// Update handles messages for the confirmation.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	subject := m.subject
	switch m.form.State {
	case huh.StateCompleted:
		confirmed := *m.answer
		m.form = nil
		return m, func() tea.Msg { return ResultMsg{Subject: subject, Confirmed: confirmed} }
	case huh.StateAborted:
		m.form = nil
		return m, func() tea.Msg { return ResultMsg{Subject: subject} }
	}
	return m, cmd
}

// View renders the confirmation.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(
		theme.TitleStyle.Render("Confirm") + "\n" + m.form.View())
}

// SetSize updates the dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
