package home

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/careerlog/careerlog/internal/model"
	"github.com/careerlog/careerlog/internal/query"
	"github.com/careerlog/careerlog/internal/theme"
)

// Model is the dashboard: summary counts and the most recent projects.
type Model struct {
	summary     query.Summary
	recent      []model.Project
	recentCount int
	now         time.Time
	width       int
	height      int
}

// New creates a dashboard listing recentCount projects.
func New(recentCount, width, height int) Model {
	return Model{
		recentCount: recentCount,
		width:       width,
		height:      height,
	}
}

// SetData recomputes the dashboard from freshly loaded records.
func (m *Model) SetData(projects []model.Project, certs []model.Certification, now time.Time) {
	m.now = now
	m.summary = query.Summarize(projects, certs, now)
	m.recent = query.Recent(projects, m.recentCount)
}

// Summary returns the counts currently shown.
func (m Model) Summary() query.Summary {
	return m.summary
}

// Update handles messages for the dashboard. It has no interactive state.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	cards := lipgloss.JoinHorizontal(
		lipgloss.Top,
		card("Projects", fmt.Sprint(m.summary.ProjectCount), theme.ColorBlue),
		card("Technologies", fmt.Sprint(m.summary.TechnologyCount), theme.ColorMagenta),
		card("Certifications", fmt.Sprint(m.summary.CertificationCount), theme.ColorGreen),
		card("Renewal due", fmt.Sprint(m.summary.ExpiringCount), expiringColor(m.summary)),
	)

	var b strings.Builder
	b.WriteString(theme.TitleStyle.Render("Career summary"))
	b.WriteString("\n")
	b.WriteString(cards)
	b.WriteString("\n\n")
	b.WriteString(theme.SectionStyle.Render("Recent projects"))
	b.WriteString("\n")

	if len(m.recent) == 0 {
		b.WriteString(theme.HelpStyle.Render("No projects yet. Open the Projects tab and press 'n'."))
	}
	for _, p := range m.recent {
		b.WriteString(m.renderRecent(p))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Render(b.String())
}

func (m Model) renderRecent(p model.Project) string {
	period := p.StartDate.Format("2006.01") + " - "
	if p.IsOngoing || p.EndDate == nil {
		period += theme.OngoingStyle.Render("ongoing")
	} else {
		period += p.EndDate.Format("2006.01")
	}

	line := fmt.Sprintf("%s  %s  %s",
		lipgloss.NewStyle().Bold(true).Render(p.Name),
		theme.DimmedStyle.Render(period),
		theme.DimmedStyle.Render(fmt.Sprintf("(%d months)", p.DurationInMonthsAt(m.now))),
	)
	if names := p.TechnologyNames(); len(names) > 0 {
		line += "\n    " + theme.BadgeStyle.Render(strings.Join(names, " · "))
	}
	return theme.ListItemStyle.Render(line)
}

func card(label, value string, color lipgloss.TerminalColor) string {
	return theme.CardStyle.Render(lipgloss.JoinVertical(
		lipgloss.Center,
		lipgloss.NewStyle().Bold(true).Foreground(color).Render(value),
		theme.DimmedStyle.Render(label),
	))
}

func expiringColor(s query.Summary) lipgloss.TerminalColor {
	switch {
	case s.ExpiredCount > 0:
		return theme.ColorRed
	case s.ExpiringCount > 0:
		return theme.ColorOrange
	default:
		return theme.ColorGray
	}
}

// SetSize updates the dashboard dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
