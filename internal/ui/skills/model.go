package skills

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/careerlog/careerlog/internal/keys"
	"github.com/careerlog/careerlog/internal/model"
	"github.com/careerlog/careerlog/internal/query"
	"github.com/careerlog/careerlog/internal/theme"
)

type sortMode int

const (
	sortByExperience sortMode = iota
	sortByName
)

func (s sortMode) label() string {
	if s == sortByName {
		return "name"
	}
	return "experience"
}

// Model is the skill sheet: accumulated months and level per technology.
type Model struct {
	table  table.Model
	keys   *keys.KeyMap
	exps   []query.TechnologyExperience
	sort   sortMode
	width  int
	height int
}

// New creates a new skill sheet model.
func New(k *keys.KeyMap, width, height int) Model {
	t := table.New(
		table.WithColumns(columns(width)),
		table.WithFocused(true),
		table.WithHeight(max(height-4, 3)),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.ColorBorder).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(theme.ColorBlue).
		Bold(true)
	t.SetStyles(styles)

	return Model{
		table:  t,
		keys:   k,
		width:  width,
		height: height,
	}
}

func columns(width int) []table.Column {
	name := max(width-58, 16)
	return []table.Column{
		{Title: "Technology", Width: name},
		{Title: "Category", Width: 18},
		{Title: "Months", Width: 8},
		{Title: "Level", Width: 10},
		{Title: "Projects", Width: 8},
	}
}

// SetProjects recomputes experience from the loaded projects.
func (m *Model) SetProjects(projects []model.Project, now time.Time) {
	m.exps = query.TechnologyExperiences(projects, now)
	m.refresh()
}

// Experiences returns the rows in their current display order.
func (m Model) Experiences() []query.TechnologyExperience {
	if m.sort == sortByExperience {
		return query.ByExperience(m.exps)
	}
	return m.exps
}

func (m *Model) refresh() {
	exps := m.Experiences()
	rows := make([]table.Row, len(exps))
	for i, e := range exps {
		rows[i] = table.Row{
			e.Technology.Name,
			e.Technology.Category.DisplayName(),
			fmt.Sprint(e.Months),
			fmt.Sprintf("Lv.%d", e.Level),
			fmt.Sprint(e.Projects),
		}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

// Update handles messages for the skill sheet.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.CycleSort) {
		if m.sort == sortByExperience {
			m.sort = sortByName
		} else {
			m.sort = sortByExperience
		}
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the skill sheet.
func (m Model) View() string {
	title := theme.TitleStyle.Render(
		fmt.Sprintf("Skills · %d technologies · sorted by %s", len(m.exps), m.sort.label()))

	if len(m.exps) == 0 {
		return lipgloss.NewStyle().Padding(1, 2).Render(
			title + "\n" + theme.HelpStyle.Render("Technologies appear here once a project uses them."))
	}

	body := m.table.View()
	if exps := m.Experiences(); m.table.Cursor() < len(exps) {
		e := exps[m.table.Cursor()]
		body += "\n\n" + fmt.Sprintf("%s  %s  %s",
			lipgloss.NewStyle().Bold(true).Render(e.Technology.Name),
			theme.LevelBar(e.Level),
			theme.DimmedStyle.Render(fmt.Sprintf("%d months across %d projects", e.Months, e.Projects)))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(title + "\n" + body)
}

// SetSize updates the skill sheet dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetColumns(columns(width - 4))
	m.table.SetHeight(max(height-8, 3))
}
