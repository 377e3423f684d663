package model

import "time"

// ProjectTechnology links one project to one technology.
// Its lifecycle is bound to the project (deleted before the project is).
type ProjectTechnology struct {
	ID           string    `json:"id" db:"id"`
	ProjectID    string    `json:"project_id" db:"project_id"`
	TechnologyID string    `json:"technology_id" db:"technology_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	// Technology is populated by join queries.
	Technology Technology `json:"technology" db:"-"`
}

// ProjectProcess links one project to one process.
type ProjectProcess struct {
	ID        string    `json:"id" db:"id"`
	ProjectID string    `json:"project_id" db:"project_id"`
	ProcessID string    `json:"process_id" db:"process_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// Process is populated by join queries.
	Process Process `json:"process" db:"-"`
}
