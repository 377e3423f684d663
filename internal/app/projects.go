package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/careerlog/careerlog/internal/model"
	"github.com/careerlog/careerlog/internal/store"
)

// dataLoadedMsg carries every record the views are computed from.
type dataLoadedMsg struct {
	projects []model.Project
	certs    []model.Certification
	err      error
}

// formOptionsLoadedMsg carries stored technologies for the project form.
// edit is nil when creating.
type formOptionsLoadedMsg struct {
	techs []model.Technology
	edit  *model.Project
	err   error
}

// projectSavedMsg is sent after a project create or update.
type projectSavedMsg struct {
	project *model.Project
	created bool
	err     error
}

// projectDeletedMsg is sent after a project deletion.
type projectDeletedMsg struct {
	id     string
	result store.DeleteResult
	err    error
}

// loadData reads projects and certifications from the store.
func (m *Model) loadData() tea.Cmd {
	s := m.store
	logger := m.logger
	return func() tea.Msg {
		ctx := context.Background()
		projects, err := s.GetProjects(ctx)
		if err != nil {
			logger.Error("load projects failed", zap.Error(err))
			return dataLoadedMsg{err: fmt.Errorf("loading projects: %w", err)}
		}
		certs, err := s.GetCertifications(ctx)
		if err != nil {
			logger.Error("load certifications failed", zap.Error(err))
			return dataLoadedMsg{err: fmt.Errorf("loading certifications: %w", err)}
		}
		return dataLoadedMsg{projects: projects, certs: certs}
	}
}

// loadFormOptions loads stored technologies, then opens the form for edit
// (or a new project when edit is nil).
func (m *Model) loadFormOptions(edit *model.Project) tea.Cmd {
	s := m.store
	logger := m.logger
	return func() tea.Msg {
		techs, err := s.GetTechnologies(context.Background())
		if err != nil {
			logger.Warn("load technologies failed", zap.Error(err))
		}
		return formOptionsLoadedMsg{techs: techs, edit: edit, err: err}
	}
}

// createProject persists a new project from the form draft.
func (m *Model) createProject(draft model.ProjectDraft) tea.Cmd {
	s := m.store
	logger := m.logger
	return func() tea.Msg {
		p, err := s.CreateProject(context.Background(), draft)
		if err != nil {
			logger.Error("create project failed",
				zap.String("name", draft.Name),
				zap.Error(err))
		}
		return projectSavedMsg{project: p, created: true, err: err}
	}
}

// updateProject replaces a project's fields and associations.
func (m *Model) updateProject(id string, draft model.ProjectDraft) tea.Cmd {
	s := m.store
	logger := m.logger
	return func() tea.Msg {
		p, err := s.UpdateProject(context.Background(), id, draft)
		if err != nil {
			logger.Error("update project failed",
				zap.String("id", id),
				zap.Error(err))
		}
		return projectSavedMsg{project: p, err: err}
	}
}

// deleteProject removes a project and its association records.
func (m *Model) deleteProject(id string) tea.Cmd {
	s := m.store
	logger := m.logger
	return func() tea.Msg {
		res, err := s.DeleteProject(context.Background(), id)
		if err != nil {
			logger.Error("delete project failed",
				zap.String("id", id),
				zap.Int64("links_removed", res.Total()),
				zap.Error(err))
		}
		return projectDeletedMsg{id: id, result: res, err: err}
	}
}

// findProject looks up a loaded project by ID.
func (m Model) findProject(id string) (model.Project, bool) {
	for _, p := range m.projects {
		if p.ID == id {
			return p, true
		}
	}
	return model.Project{}, false
}
