package projectlist

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/careerlog/careerlog/internal/model"
	"github.com/careerlog/careerlog/internal/theme"
)

// maxBadges caps how many technology names a row shows.
const maxBadges = 3

// ProjectItem wraps a model.Project so it can be used in a bubbles/list.
type ProjectItem struct {
	Project model.Project
	Now     time.Time
}

// FilterValue returns the string used for fuzzy filtering.
func (i ProjectItem) FilterValue() string { return i.Project.Name }

// Title returns the project name for the list.
func (i ProjectItem) Title() string { return i.Project.Name }

// Description returns a short summary line for the list.
func (i ProjectItem) Description() string {
	return strings.Join([]string{
		period(i.Project),
		string(i.Project.Role),
		string(i.Project.Industry),
	}, " | ")
}

// ItemDelegate implements list.ItemDelegate for rendering project rows.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 2 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a project as a name line and a details line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	pi, ok := item.(ProjectItem)
	if !ok {
		return
	}
	p := pi.Project
	isSelected := index == m.Index()

	status := ""
	if p.IsOngoing {
		status = theme.OngoingStyle.Render(" ongoing")
	}
	months := theme.DimmedStyle.Render(
		fmt.Sprintf(" %dmo", p.DurationInMonthsAt(pi.Now)))

	first := p.Name + status + months

	var meta []string
	meta = append(meta, period(p))
	if p.Role != "" {
		meta = append(meta, string(p.Role))
	}
	if p.Industry != "" {
		meta = append(meta, string(p.Industry))
	}
	second := theme.DimmedStyle.Render(strings.Join(meta, " · "))

	if names := p.TechnologyNames(); len(names) > 0 {
		if len(names) > maxBadges {
			names = append(names[:maxBadges], "…")
		}
		second += "  " + theme.BadgeStyle.Render(strings.Join(names, ","))
	}

	line := lipgloss.JoinVertical(lipgloss.Left, first, "  "+second)
	if isSelected {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// period formats the project's date range as "2024.01 - 2024.07" or
// "2024.01 - now".
func period(p model.Project) string {
	end := "now"
	if !p.IsOngoing && p.EndDate != nil {
		end = p.EndDate.Format("2006.01")
	}
	return p.StartDate.Format("2006.01") + " - " + end
}
