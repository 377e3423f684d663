package projectlist

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/careerlog/careerlog/internal/keys"
	"github.com/careerlog/careerlog/internal/model"
	"github.com/careerlog/careerlog/internal/query"
	"github.com/careerlog/careerlog/internal/theme"
)

// SelectedProjectMsg is sent when a user opens a project's detail view.
type SelectedProjectMsg struct {
	ProjectID string
}

// Model is the searchable, filterable project list.
type Model struct {
	list        list.Model
	keys        *keys.KeyMap
	projects    []model.Project
	criteria    query.Criteria
	counts      map[query.StatusFilter]int
	now         time.Time
	searchMode  bool
	searchInput textinput.Model
	width       int
	height      int
}

// New creates a new project list model.
func New(k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height-2)
	l.Title = "Projects"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "name, technology, industry, role..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:        l,
		keys:        k,
		searchInput: si,
		now:         time.Now(),
		width:       width,
		height:      height,
	}
}

// SetProjects replaces the loaded projects and reapplies the current
// search and status filter.
func (m *Model) SetProjects(projects []model.Project, now time.Time) tea.Cmd {
	m.projects = projects
	m.now = now
	m.counts = query.CountByStatus(projects, now)
	return m.apply()
}

// apply recomputes the visible items from the loaded projects.
func (m *Model) apply() tea.Cmd {
	visible := query.SortByStartDesc(query.Filter(m.projects, m.criteria, m.now))
	items := make([]list.Item, len(visible))
	for i, p := range visible {
		items[i] = ProjectItem{Project: p, Now: m.now}
	}
	m.list.Title = fmt.Sprintf("Projects · %s", m.criteria.Status.Label())
	return m.list.SetItems(items)
}

// Criteria returns the active search and status filter.
func (m Model) Criteria() query.Criteria {
	return m.criteria
}

// Searching reports whether the search input has focus.
func (m Model) Searching() bool {
	return m.searchMode
}

// SelectedProject returns the highlighted project, if any.
func (m Model) SelectedProject() (model.Project, bool) {
	item, ok := m.list.SelectedItem().(ProjectItem)
	if !ok {
		return model.Project{}, false
	}
	return item.Project, true
}

// VisibleCount returns the number of projects passing the filters.
func (m Model) VisibleCount() int {
	return len(m.list.Items())
}

// FilterSummary describes the active filters for the status bar, or "" when
// none are set.
func (m Model) FilterSummary() string {
	var parts []string
	if m.criteria.Status != query.StatusAll {
		parts = append(parts, fmt.Sprintf("filter: %s (%d)",
			m.criteria.Status.Label(), m.counts[m.criteria.Status]))
	}
	if q := strings.TrimSpace(m.criteria.Query); q != "" {
		parts = append(parts, fmt.Sprintf("search: %q", q))
	}
	return strings.Join(parts, " | ")
}

// Update handles messages for the project list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys filters as the user types; enter keeps the query, esc
// clears it.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.searchInput.Blur()
		return m, nil

	case "esc":
		m.searchMode = false
		m.searchInput.Blur()
		m.searchInput.Reset()
		m.criteria.Query = ""
		return m, m.apply()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() != m.criteria.Query {
		m.criteria.Query = m.searchInput.Value()
		return m, tea.Batch(cmd, m.apply())
	}
	return m, cmd
}

// handleNormalKeys processes key input in normal (non-search) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		p, ok := m.SelectedProject()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return SelectedProjectMsg{ProjectID: p.ID}
		}

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.SetValue(m.criteria.Query)
		m.searchInput.CursorEnd()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.CycleFilter):
		m.criteria.Status = m.criteria.Status.Next()
		return m, m.apply()

	case key.Matches(msg, m.keys.Back):
		if m.criteria != (query.Criteria{}) {
			m.criteria = query.Criteria{}
			m.searchInput.Reset()
			return m, m.apply()
		}
		return m, nil
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the project list view.
func (m Model) View() string {
	filterBar := m.renderFilterBar()

	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, searchBar, filterBar, m.list.View())
	}

	if len(m.list.Items()) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, filterBar, m.renderEmptyState())
	}

	return lipgloss.JoinVertical(lipgloss.Left, filterBar, m.list.View())
}

// renderFilterBar shows every status filter with the number of projects it
// would keep.
func (m Model) renderFilterBar() string {
	parts := make([]string, len(query.StatusFilters))
	for i, f := range query.StatusFilters {
		label := fmt.Sprintf("%s %d", f.Label(), m.counts[f])
		if f == m.criteria.Status {
			parts[i] = theme.ActiveTabStyle.Render(label)
		} else {
			parts[i] = theme.TabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// renderEmptyState shows guidance text when no projects are visible.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.criteria != (query.Criteria{}) {
		return style.Render("No matching projects.\nPress esc to clear the search and filter.")
	}
	return style.Render("No projects yet.\n\nPress 'n' to record your first project.")
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.searchInput.Width = width - 4
}
