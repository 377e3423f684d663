package store

import (
	"context"

	"github.com/careerlog/careerlog/internal/model"
)

// DeleteResult reports what a project deletion removed.
type DeleteResult struct {
	TechnologyLinks int64
	ProcessLinks    int64
}

// Total is the number of association records removed.
func (r DeleteResult) Total() int64 {
	return r.TechnologyLinks + r.ProcessLinks
}

// AssociationCounts reports the size of each association table.
type AssociationCounts struct {
	TechnologyLinks int64
	ProcessLinks    int64
}

// Store defines the persistence interface for career records and the
// technology and process records they link to.
type Store interface {
	// === Projects ===

	CreateProject(ctx context.Context, draft model.ProjectDraft) (*model.Project, error)
	UpdateProject(ctx context.Context, id string, draft model.ProjectDraft) (*model.Project, error)
	DeleteProject(ctx context.Context, id string) (DeleteResult, error)
	GetProject(ctx context.Context, id string) (*model.Project, error)
	GetProjects(ctx context.Context) ([]model.Project, error)

	// === Technologies and processes ===

	FindOrCreateTechnology(ctx context.Context, name string) (*model.Technology, error)
	FindOrCreateProcess(ctx context.Context, name string, order int) (*model.Process, error)
	GetTechnologies(ctx context.Context) ([]model.Technology, error)
	GetProcesses(ctx context.Context) ([]model.Process, error)
	GetAssociationCounts(ctx context.Context) (AssociationCounts, error)

	// === Certifications ===

	CreateCertification(ctx context.Context, draft model.CertificationDraft) (*model.Certification, error)
	UpdateCertification(ctx context.Context, id string, draft model.CertificationDraft) (*model.Certification, error)
	DeleteCertification(ctx context.Context, id string) error
	GetCertification(ctx context.Context, id string) (*model.Certification, error)
	GetCertifications(ctx context.Context) ([]model.Certification, error)
}

var _ Store = (*SQLiteStore)(nil)
