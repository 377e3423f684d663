package query

import (
	"sort"
	"time"

	"github.com/careerlog/careerlog/internal/model"
)

// TechnologyExperience is the accumulated use of one technology.
type TechnologyExperience struct {
	Technology model.Technology
	Months     int
	Level      int
	Projects   int
}

// ExperienceMonths sums the durations of every project linked to the
// technology ID.
func ExperienceMonths(technologyID string, projects []model.Project, now time.Time) int {
	total := 0
	for _, p := range projects {
		if p.HasTechnology(technologyID) {
			total += p.DurationInMonthsAt(now)
		}
	}
	return total
}

// TechnologyExperiences aggregates experience per technology name across
// all projects, ordered by name. A project linking the same name twice is
// counted once.
func TechnologyExperiences(projects []model.Project, now time.Time) []TechnologyExperience {
	byName := make(map[string]*TechnologyExperience)
	for _, p := range projects {
		months := p.DurationInMonthsAt(now)
		seen := make(map[string]bool, len(p.Technologies))
		for _, pt := range p.Technologies {
			name := pt.Technology.Name
			if seen[name] {
				continue
			}
			seen[name] = true

			exp, ok := byName[name]
			if !ok {
				exp = &TechnologyExperience{Technology: pt.Technology}
				byName[name] = exp
			}
			exp.Months += months
			exp.Projects++
		}
	}

	out := make([]TechnologyExperience, 0, len(byName))
	for _, exp := range byName {
		exp.Level = model.ExperienceLevel(exp.Months)
		out = append(out, *exp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Technology.Name < out[j].Technology.Name
	})
	return out
}

// ByExperience returns a copy of exps ordered by months descending, then by
// name.
func ByExperience(exps []TechnologyExperience) []TechnologyExperience {
	out := make([]TechnologyExperience, len(exps))
	copy(out, exps)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Months != out[j].Months {
			return out[i].Months > out[j].Months
		}
		return out[i].Technology.Name < out[j].Technology.Name
	})
	return out
}
