package projectdetail

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/careerlog/careerlog/internal/keys"
	"github.com/careerlog/careerlog/internal/model"
	"github.com/careerlog/careerlog/internal/theme"
)

// BackMsg signals the parent to navigate back to the list view.
type BackMsg struct{}

// EditMsg asks the parent to open the edit form for the project.
type EditMsg struct {
	ProjectID string
}

// DeleteMsg asks the parent to confirm and delete the project.
type DeleteMsg struct {
	ProjectID string
}

// Model is the read-only project detail view.
type Model struct {
	project  *model.Project
	now      time.Time
	viewport viewport.Model
	keys     *keys.KeyMap
	width    int
	height   int
}

// New creates a new detail view model.
func New(keys *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport: vp,
		keys:     keys,
		width:    width,
		height:   height,
	}
}

// SetProject shows p, measuring ongoing durations against now.
func (m *Model) SetProject(p model.Project, now time.Time) {
	m.project = &p
	m.now = now
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoTop()
}

// ProjectID returns the ID of the shown project, or "".
func (m Model) ProjectID() string {
	if m.project == nil {
		return ""
	}
	return m.project.ID
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return BackMsg{} }

		case key.Matches(msg, m.keys.Edit):
			if m.project != nil {
				id := m.project.ID
				return m, func() tea.Msg { return EditMsg{ProjectID: id} }
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if m.project != nil {
				id := m.project.ID
				return m, func() tea.Msg { return DeleteMsg{ProjectID: id} }
			}
			return m, nil
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the detail view.
func (m Model) View() string {
	if m.project == nil {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("Project not found.")
	}
	return theme.DetailPanelStyle.
		Width(max(m.width-2, 0)).
		Render(m.viewport.View())
}

func (m Model) renderContent() string {
	p := m.project
	var b strings.Builder

	b.WriteString(theme.TitleStyle.Render(p.Name))
	b.WriteString("\n")

	end := theme.OngoingStyle.Render("ongoing")
	if !p.IsOngoing && p.EndDate != nil {
		end = p.EndDate.Format("2006.01.02")
	}
	writeField(&b, "Period", fmt.Sprintf("%s - %s (%d months)",
		p.StartDate.Format("2006.01.02"), end, p.DurationInMonthsAt(m.now)))
	writeField(&b, "Industry", orDash(string(p.Industry)))
	writeField(&b, "Role", orDash(string(p.Role)))
	writeField(&b, "Team size", orDash(string(p.TeamSize)))

	b.WriteString("\n")
	b.WriteString(theme.SectionStyle.Render("Technologies"))
	b.WriteString("\n")
	if len(p.Technologies) == 0 {
		b.WriteString(theme.DimmedStyle.Render("  none"))
		b.WriteString("\n")
	}
	months := p.DurationInMonthsAt(m.now)
	for _, name := range p.TechnologyNames() {
		fmt.Fprintf(&b, "  %s %s\n",
			theme.BadgeStyle.Render(name),
			theme.DimmedStyle.Render(fmt.Sprintf("+%d months", months)))
	}

	b.WriteString("\n")
	b.WriteString(theme.SectionStyle.Render("Development processes"))
	b.WriteString("\n")
	if len(p.Processes) == 0 {
		b.WriteString(theme.DimmedStyle.Render("  none"))
		b.WriteString("\n")
	}
	for _, name := range p.ProcessNamesByOrder() {
		fmt.Fprintf(&b, "  ✓ %s\n", name)
	}

	writeText(&b, "Overview", p.Overview)
	writeText(&b, "Responsibilities", p.Responsibilities)
	writeText(&b, "Achievements", p.Achievements)

	b.WriteString("\n")
	b.WriteString(theme.DimmedStyle.Render(fmt.Sprintf("created %s · updated %s",
		p.CreatedAt.Local().Format("2006-01-02 15:04"),
		p.UpdatedAt.Local().Format("2006-01-02 15:04"))))

	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%s %s\n",
		lipgloss.NewStyle().Foreground(theme.ColorGray).Width(12).Render(label),
		value)
}

func writeText(b *strings.Builder, label, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	b.WriteString("\n")
	b.WriteString(theme.SectionStyle.Render(label))
	b.WriteString("\n")
	b.WriteString(text)
	b.WriteString("\n")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = max(width-6, 0)
	m.viewport.Height = max(height-4, 0)
	if m.project != nil {
		m.viewport.SetContent(m.renderContent())
	}
}
