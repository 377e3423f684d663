package model

import "time"

// Technology is a language, framework, or tool a project used. Name is its
// identity: there is at most one record per name.
type Technology struct {
	ID        string             `json:"id" db:"id"`
	Name      string             `json:"name" db:"name"`
	Category  TechnologyCategory `json:"category" db:"category"`
	IsCustom  bool               `json:"is_custom" db:"is_custom"`
	CreatedAt time.Time          `json:"created_at" db:"created_at"`
}

// Process is a development stage worked on a project. Name is its identity.
type Process struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Order     int       `json:"order" db:"sort_order"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ExperienceLevel buckets accumulated months of use into a level from 1 to 5.
func ExperienceLevel(months int) int {
	switch {
	case months < 6:
		return 1
	case months < 12:
		return 2
	case months < 24:
		return 3
	case months < 36:
		return 4
	default:
		return 5
	}
}
