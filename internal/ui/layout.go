package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/careerlog/careerlog/internal/theme"
)

// Layout manages the terminal frame: header, tab bar, content, status bar.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	TabBarHeight    int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
// Header, tab bar, and status bar take one line each.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		TabBarHeight:    1,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height left for the active view.
func (l Layout) ContentHeight() int {
	h := l.Height - l.HeaderHeight - l.TabBarHeight - l.StatusBarHeight
	if h < 0 {
		return 0
	}
	return h
}

// RenderHeader renders the top bar with a title on the left and a short
// note on the right.
func (l Layout) RenderHeader(title string, note string) string {
	titleRendered := theme.HeaderStyle.Render(title)

	noteRendered := theme.HeaderStyle.
		Align(lipgloss.Right).
		Render(note)

	gap := l.Width -
		lipgloss.Width(titleRendered) -
		lipgloss.Width(noteRendered)
	if gap < 0 {
		gap = 0
	}

	filler := lipgloss.NewStyle().
		Width(gap).
		Background(theme.HeaderStyle.GetBackground()).
		Render("")

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleRendered,
		filler,
		noteRendered,
	)
}

// RenderTabs renders the tab bar with the active tab highlighted.
func (l Layout) RenderTabs(labels []string, active int) string {
	rendered := make([]string, len(labels))
	for i, label := range labels {
		if i == active {
			rendered[i] = theme.ActiveTabStyle.Render(label)
		} else {
			rendered[i] = theme.TabStyle.Render(label)
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	return lipgloss.NewStyle().MaxWidth(l.Width).Render(bar)
}

// RenderStatusBar renders the bottom bar. A failure message switches the
// bar to the error style.
func (l Layout) RenderStatusBar(text string, failed bool) string {
	style := theme.StatusBarStyle
	if failed {
		style = theme.ErrorBarStyle
	}
	rendered := style.Render(strings.ReplaceAll(text, "\n", " "))

	gap := l.Width - lipgloss.Width(rendered)
	if gap < 0 {
		gap = 0
	}

	filler := lipgloss.NewStyle().
		Width(gap).
		Background(style.GetBackground()).
		Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered, filler)
}

// RenderWithFrame composes a full terminal view by vertically joining
// the header, tab bar, content area, and status bar. The content is padded
// or clipped to ContentHeight so the status bar stays at the bottom.
func (l Layout) RenderWithFrame(
	header string,
	tabs string,
	content string,
	statusBar string,
) string {
	body := lipgloss.NewStyle().
		Height(l.ContentHeight()).
		MaxHeight(l.ContentHeight()).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		tabs,
		body,
		statusBar,
	)
}
