package projectlist

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerlog/careerlog/internal/keys"
	"github.com/careerlog/careerlog/internal/model"
	"github.com/careerlog/careerlog/internal/query"
)

var now = time.Date(2024, time.August, 15, 12, 0, 0, 0, time.UTC)

func projects() []model.Project {
	end := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	return []model.Project{
		{ID: "done", Name: "Core banking API", StartDate: time.Date(2022, time.March, 1, 0, 0, 0, 0, time.UTC), EndDate: &end},
		{ID: "live", Name: "Line monitoring", StartDate: time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), IsOngoing: true},
		{ID: "old", Name: "Legacy migration", StartDate: time.Date(2021, time.June, 1, 0, 0, 0, 0, time.UTC), IsOngoing: true},
	}
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestSetProjectsSortsNewestFirst(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 80, 24)
	m.SetProjects(projects(), now)

	assert.Equal(t, 3, m.VisibleCount())
	p, ok := m.SelectedProject()
	require.True(t, ok)
	assert.Equal(t, "live", p.ID)
	assert.Empty(t, m.FilterSummary())
}

func TestCycleFilter(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 80, 24)
	m.SetProjects(projects(), now)

	m, _ = m.Update(runeKey('f'))
	assert.Equal(t, query.StatusOngoing, m.Criteria().Status)
	assert.Equal(t, 2, m.VisibleCount())

	m, _ = m.Update(runeKey('f'))
	assert.Equal(t, query.StatusCompleted, m.Criteria().Status)
	assert.Equal(t, 1, m.VisibleCount())

	m, _ = m.Update(runeKey('f'))
	assert.Equal(t, query.StatusRecent, m.Criteria().Status)
	assert.Equal(t, 1, m.VisibleCount())
	assert.Equal(t, "filter: 最近 (1)", m.FilterSummary())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, query.Criteria{}, m.Criteria())
	assert.Equal(t, 3, m.VisibleCount())
}

func TestSearchFiltersWhileTyping(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 80, 24)
	m.SetProjects(projects(), now)

	m, _ = m.Update(runeKey('/'))
	require.True(t, m.Searching())
	for _, r := range "legacy" {
		m, _ = m.Update(runeKey(r))
	}
	assert.Equal(t, 1, m.VisibleCount())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.Searching())
	assert.Equal(t, "legacy", m.Criteria().Query)
	assert.Equal(t, 1, m.VisibleCount())

	p, ok := m.SelectedProject()
	require.True(t, ok)
	assert.Equal(t, "old", p.ID)
}

func TestSelectEmitsMessage(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 80, 24)
	m.SetProjects(projects(), now)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, SelectedProjectMsg{ProjectID: "live"}, cmd())
}
