package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/careerlog/careerlog/internal/keys"
	"github.com/careerlog/careerlog/internal/model"
	"github.com/careerlog/careerlog/internal/theme"
)

// levelRanges describes the month range of each experience level.
var levelRanges = []struct {
	level int
	label string
}{
	{1, "0-5 months"},
	{2, "6-11 months"},
	{3, "12-23 months"},
	{4, "24-35 months"},
	{5, "36+ months"},
}

// Model is the help overlay: key bindings plus a legend for the
// experience levels and certification states shown elsewhere.
type Model struct {
	keys   *keys.KeyMap
	help   help.Model
	width  int
	height int
}

// New creates a new help view model.
func New(keys *keys.KeyMap, width, height int) Model {
	h := help.New()
	h.Width = width
	return Model{
		keys:   keys,
		help:   h,
		width:  width,
		height: height,
	}
}

// Update handles messages for the help view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the help overlay.
func (m Model) View() string {
	m.help.Width = m.width - 4
	m.help.ShowAll = true

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		theme.TitleStyle.Render("Keyboard Shortcuts"),
		m.help.View(m.keys),
		"",
		theme.SectionStyle.Render("Experience levels"),
		m.levelLegend(),
		"",
		theme.SectionStyle.Render("Certification status"),
		m.statusLegend(),
	)

	return theme.DetailPanelStyle.
		Width(max(m.width-4, 0)).
		Height(max(m.height-4, 0)).
		Render(content)
}

func (m Model) levelLegend() string {
	var b strings.Builder
	for _, r := range levelRanges {
		fmt.Fprintf(&b, "%s  Lv.%d  %s\n",
			theme.LevelBar(r.level), r.level, theme.DimmedStyle.Render(r.label))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) statusLegend() string {
	rows := []struct {
		status model.CertificationStatus
		desc   string
	}{
		{model.CertificationValid, "no expiry, or more than 3 months left"},
		{model.CertificationExpiring, fmt.Sprintf("expires within %d months", model.ExpiryWindowMonths)},
		{model.CertificationExpired, "expiration date has passed"},
	}

	var b strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&b, "%s %s\n",
			theme.CertificationStatusStyle(r.status).Render(string(r.status)),
			theme.DimmedStyle.Render(r.desc))
	}
	return strings.TrimRight(b.String(), "\n")
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
}
