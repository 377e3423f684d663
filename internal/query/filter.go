// Package query filters, sorts, and aggregates loaded career records. Every
// function is pure: inputs are never modified and the current time is passed
// in.
package query

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/width"

	"github.com/careerlog/careerlog/internal/model"
)

// RecentWindowMonths is how far back a project start counts as recent.
const RecentWindowMonths = 6

// StatusFilter narrows the project list by lifecycle state.
type StatusFilter int

const (
	StatusAll StatusFilter = iota
	StatusOngoing
	StatusCompleted
	StatusRecent
)

// StatusFilters lists every filter in cycling order.
var StatusFilters = []StatusFilter{StatusAll, StatusOngoing, StatusCompleted, StatusRecent}

var statusLabels = map[StatusFilter]string{
	StatusAll:       "すべて",
	StatusOngoing:   "進行中",
	StatusCompleted: "完了",
	StatusRecent:    "最近",
}

// Label returns the display text of the filter.
func (f StatusFilter) Label() string {
	if l, ok := statusLabels[f]; ok {
		return l
	}
	return statusLabels[StatusAll]
}

// Next returns the filter after f, wrapping back to StatusAll.
func (f StatusFilter) Next() StatusFilter {
	return StatusFilters[(int(f)+1)%len(StatusFilters)]
}

// Matches reports whether p passes the filter at now.
func (f StatusFilter) Matches(p model.Project, now time.Time) bool {
	switch f {
	case StatusOngoing:
		return p.IsOngoing
	case StatusCompleted:
		return !p.IsOngoing
	case StatusRecent:
		loc := now.Location()
		since := model.DayIn(model.AddMonths(now, -RecentWindowMonths), loc)
		return !model.DayIn(p.StartDate, loc).Before(since)
	default:
		return true
	}
}

// Criteria combines a free-text query with a status filter. Both must hold.
type Criteria struct {
	Query  string
	Status StatusFilter
}

// fold normalises text for matching: full-width forms become half-width and
// case differences are removed.
func fold(s string) string {
	return cases.Fold().String(width.Fold.String(s))
}

// MatchesSearch reports whether q occurs, ignoring case and character width,
// in the project name, any technology name, the industry, or the role.
// An empty or blank query matches everything.
func MatchesSearch(p model.Project, q string) bool {
	q = strings.TrimSpace(q)
	if q == "" {
		return true
	}
	needle := fold(q)

	if strings.Contains(fold(p.Name), needle) {
		return true
	}
	for _, pt := range p.Technologies {
		if strings.Contains(fold(pt.Technology.Name), needle) {
			return true
		}
	}
	return strings.Contains(fold(string(p.Industry)), needle) ||
		strings.Contains(fold(string(p.Role)), needle)
}

// Filter returns the projects matching c, in their input order.
func Filter(projects []model.Project, c Criteria, now time.Time) []model.Project {
	out := make([]model.Project, 0, len(projects))
	for _, p := range projects {
		if c.Status.Matches(p, now) && MatchesSearch(p, c.Query) {
			out = append(out, p)
		}
	}
	return out
}

// SortByStartDesc returns a copy of projects ordered by start date, most
// recent first. Equal start dates keep their input order.
func SortByStartDesc(projects []model.Project) []model.Project {
	out := make([]model.Project, len(projects))
	copy(out, projects)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartDate.After(out[j].StartDate)
	})
	return out
}

// Recent returns the n most recently started projects.
func Recent(projects []model.Project, n int) []model.Project {
	sorted := SortByStartDesc(projects)
	if n < 0 {
		n = 0
	}
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// CountByStatus returns how many projects each filter would keep.
func CountByStatus(projects []model.Project, now time.Time) map[StatusFilter]int {
	counts := make(map[StatusFilter]int, len(StatusFilters))
	for _, f := range StatusFilters {
		counts[f] = 0
	}
	for _, p := range projects {
		for _, f := range StatusFilters {
			if f.Matches(p, now) {
				counts[f]++
			}
		}
	}
	return counts
}
