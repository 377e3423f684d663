package model

import (
	"sort"
	"time"
)

// Project is a single career record.
type Project struct {
	ID               string     `json:"id" db:"id"`
	Name             string     `json:"name" db:"name"`
	StartDate        time.Time  `json:"start_date" db:"start_date"`
	EndDate          *time.Time `json:"end_date,omitempty" db:"end_date"`
	IsOngoing        bool       `json:"is_ongoing" db:"is_ongoing"`
	Industry         Industry   `json:"industry" db:"industry"`
	Role             Role       `json:"role" db:"role"`
	TeamSize         TeamSize   `json:"team_size" db:"team_size"`
	Overview         string     `json:"overview" db:"overview"`
	Responsibilities string     `json:"responsibilities" db:"responsibilities"`
	Achievements     string     `json:"achievements" db:"achievements"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`

	// Technologies and Processes are populated by store reads.
	Technologies []ProjectTechnology `json:"technologies,omitempty" db:"-"`
	Processes    []ProjectProcess    `json:"processes,omitempty" db:"-"`
}

// DurationInMonths is DurationInMonthsAt evaluated against the current time.
func (p Project) DurationInMonths() int {
	return p.DurationInMonthsAt(time.Now())
}

// DurationInMonthsAt returns the whole calendar months between the start
// date and the end date (or now when the project has no end date).
// The result is never less than 1.
func (p Project) DurationInMonthsAt(now time.Time) int {
	end := now
	if p.EndDate != nil {
		end = *p.EndDate
	}
	months := MonthsBetween(p.StartDate, end)
	if months < 1 {
		return 1
	}
	return months
}

// TechnologyNames returns the linked technology names in alphabetical order.
func (p Project) TechnologyNames() []string {
	names := make([]string, 0, len(p.Technologies))
	for _, pt := range p.Technologies {
		names = append(names, pt.Technology.Name)
	}
	sort.Strings(names)
	return names
}

// ProcessNames returns the linked process names in alphabetical order.
func (p Project) ProcessNames() []string {
	names := make([]string, 0, len(p.Processes))
	for _, pp := range p.Processes {
		names = append(names, pp.Process.Name)
	}
	sort.Strings(names)
	return names
}

// ProcessNamesByOrder returns the linked process names in their canonical
// stage order.
func (p Project) ProcessNamesByOrder() []string {
	procs := make([]Process, 0, len(p.Processes))
	for _, pp := range p.Processes {
		procs = append(procs, pp.Process)
	}
	sort.SliceStable(procs, func(i, j int) bool {
		if procs[i].Order != procs[j].Order {
			return procs[i].Order < procs[j].Order
		}
		return procs[i].Name < procs[j].Name
	})
	names := make([]string, len(procs))
	for i, pr := range procs {
		names[i] = pr.Name
	}
	return names
}

// HasTechnology reports whether the project is linked to the technology ID.
func (p Project) HasTechnology(technologyID string) bool {
	for _, pt := range p.Technologies {
		if pt.TechnologyID == technologyID {
			return true
		}
	}
	return false
}
