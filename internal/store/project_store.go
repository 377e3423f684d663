package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/careerlog/careerlog/internal/model"
)

// customProcessOrderBase places processes outside the fixed stage list after
// every known stage.
const customProcessOrderBase = 100

const projectColumns = `id, name, start_date, end_date, is_ongoing,
	industry, role, team_size, overview, responsibilities, achievements,
	created_at, updated_at`

// InsertProject adds a project row to the batch. Generates a UUID if ID is
// empty and stamps both timestamps.
func (t *Tx) InsertProject(ctx context.Context, project *model.Project) error {
	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	project.CreatedAt = now
	project.UpdatedAt = now

	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO projects (`+projectColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		project.ID, project.Name, storedDate(project.StartDate), storedDatePtr(project.EndDate),
		boolToInt(project.IsOngoing),
		string(project.Industry), string(project.Role), string(project.TeamSize),
		project.Overview, project.Responsibilities, project.Achievements,
		project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

// UpdateProjectFields rewrites the editable columns of a project and
// refreshes updated_at. created_at is left untouched.
func (t *Tx) UpdateProjectFields(ctx context.Context, project *model.Project) error {
	project.UpdatedAt = time.Now().UTC()

	result, err := t.tx.ExecContext(ctx, `
		UPDATE projects SET
			name = ?, start_date = ?, end_date = ?, is_ongoing = ?,
			industry = ?, role = ?, team_size = ?,
			overview = ?, responsibilities = ?, achievements = ?,
			updated_at = ?
		WHERE id = ?`,
		project.Name, storedDate(project.StartDate), storedDatePtr(project.EndDate),
		boolToInt(project.IsOngoing),
		string(project.Industry), string(project.Role), string(project.TeamSize),
		project.Overview, project.Responsibilities, project.Achievements,
		project.UpdatedAt,
		project.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project %s: %w", project.ID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("project %s: %w", project.ID, ErrNotFound)
	}
	return nil
}

// LinkTechnology records that a project used a technology. Both rows must
// already exist in the batch or the database.
func (t *Tx) LinkTechnology(
	ctx context.Context,
	projectID, technologyID string,
) (*model.ProjectTechnology, error) {
	link := &model.ProjectTechnology{
		ID:           uuid.New().String(),
		ProjectID:    projectID,
		TechnologyID: technologyID,
		CreatedAt:    time.Now().UTC(),
	}
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO project_technologies (id, project_id, technology_id, created_at)
		VALUES (?, ?, ?, ?)`,
		link.ID, link.ProjectID, link.TechnologyID, link.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("linking technology %s to project %s: %w",
			technologyID, projectID, err)
	}
	return link, nil
}

// LinkProcess records that a project covered a development stage.
func (t *Tx) LinkProcess(
	ctx context.Context,
	projectID, processID string,
) (*model.ProjectProcess, error) {
	link := &model.ProjectProcess{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		ProcessID: processID,
		CreatedAt: time.Now().UTC(),
	}
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO project_processes (id, project_id, process_id, created_at)
		VALUES (?, ?, ?, ?)`,
		link.ID, link.ProjectID, link.ProcessID, link.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("linking process %s to project %s: %w",
			processID, projectID, err)
	}
	return link, nil
}

// ProjectExists reports whether a project row with the ID is visible to
// the batch.
func (t *Tx) ProjectExists(ctx context.Context, projectID string) (bool, error) {
	var count int
	err := t.tx.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM projects WHERE id = ?", projectID)
	if err != nil {
		return false, fmt.Errorf("checking project %s: %w", projectID, err)
	}
	return count > 0, nil
}

// DeleteProjectAssociations removes every association row that references
// the project. Technology and process rows are kept.
func (t *Tx) DeleteProjectAssociations(
	ctx context.Context,
	projectID string,
) (DeleteResult, error) {
	var res DeleteResult

	result, err := t.tx.ExecContext(ctx,
		"DELETE FROM project_technologies WHERE project_id = ?", projectID)
	if err != nil {
		return res, fmt.Errorf("deleting technology links of project %s: %w", projectID, err)
	}
	res.TechnologyLinks, _ = result.RowsAffected()

	result, err = t.tx.ExecContext(ctx,
		"DELETE FROM project_processes WHERE project_id = ?", projectID)
	if err != nil {
		return res, fmt.Errorf("deleting process links of project %s: %w", projectID, err)
	}
	res.ProcessLinks, _ = result.RowsAffected()

	return res, nil
}

// DeleteProjectRecord removes the project row itself. The foreign keys on
// the association tables reject this while links still exist.
func (t *Tx) DeleteProjectRecord(ctx context.Context, projectID string) error {
	result, err := t.tx.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", projectID)
	if err != nil {
		return fmt.Errorf("deleting project %s: %w", projectID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	return nil
}

// linkDraft resolves the draft's technology and process names through
// find-or-create and links them to the project.
func (t *Tx) linkDraft(ctx context.Context, project *model.Project, d model.ProjectDraft) error {
	project.Technologies = project.Technologies[:0]
	for _, name := range d.Technologies {
		tech, err := t.FindOrCreateTechnology(ctx, name)
		if err != nil {
			return err
		}
		link, err := t.LinkTechnology(ctx, project.ID, tech.ID)
		if err != nil {
			return err
		}
		link.Technology = *tech
		project.Technologies = append(project.Technologies, *link)
	}

	project.Processes = project.Processes[:0]
	for i, name := range d.Processes {
		order, ok := model.ProcessOrder(name)
		if !ok {
			order = customProcessOrderBase + i
		}
		proc, err := t.FindOrCreateProcess(ctx, name, order)
		if err != nil {
			return err
		}
		link, err := t.LinkProcess(ctx, project.ID, proc.ID)
		if err != nil {
			return err
		}
		link.Process = *proc
		project.Processes = append(project.Processes, *link)
	}
	return nil
}

// CreateProject validates the draft, then inserts the project together with
// its technology and process links in one batch.
func (s *SQLiteStore) CreateProject(
	ctx context.Context,
	draft model.ProjectDraft,
) (*model.Project, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	d := draft.Normalized()
	project := projectFromDraft(d)

	err := s.inTx(ctx, "create project", "", func(tx *Tx) error {
		if err := tx.InsertProject(ctx, project); err != nil {
			return err
		}
		return tx.linkDraft(ctx, project, d)
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

// UpdateProject replaces a project's fields and its association set.
func (s *SQLiteStore) UpdateProject(
	ctx context.Context,
	id string,
	draft model.ProjectDraft,
) (*model.Project, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	d := draft.Normalized()
	project := projectFromDraft(d)
	project.ID = id

	err := s.inTx(ctx, "update project", "", func(tx *Tx) error {
		if err := tx.UpdateProjectFields(ctx, project); err != nil {
			return err
		}
		if _, err := tx.DeleteProjectAssociations(ctx, id); err != nil {
			return err
		}
		return tx.linkDraft(ctx, project, d)
	})
	if err != nil {
		return nil, err
	}
	return s.GetProject(ctx, id)
}

// DeleteProject removes a project in two committed phases: first every
// association row that references it, then the project row. A failure in
// the second phase leaves an unlinked project behind, never links to a
// missing one.
func (s *SQLiteStore) DeleteProject(ctx context.Context, id string) (DeleteResult, error) {
	var res DeleteResult

	err := s.inTx(ctx, "delete project", "associations", func(tx *Tx) error {
		exists, err := tx.ProjectExists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("project %s: %w", id, ErrNotFound)
		}
		res, err = tx.DeleteProjectAssociations(ctx, id)
		return err
	})
	if err != nil {
		return DeleteResult{}, err
	}

	err = s.inTx(ctx, "delete project", "project", func(tx *Tx) error {
		return tx.DeleteProjectRecord(ctx, id)
	})
	if err != nil {
		return res, err
	}

	s.logger.Debug("project deleted",
		zap.String("project_id", id),
		zap.Int64("technology_links", res.TechnologyLinks),
		zap.Int64("process_links", res.ProcessLinks))
	return res, nil
}

// GetProject retrieves a single project by ID with its associations loaded.
func (s *SQLiteStore) GetProject(ctx context.Context, id string) (*model.Project, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT "+projectColumns+" FROM projects WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("getting project %s: %w", id, err)
	}
	projects, err := collectProjects(rows)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	if err := s.loadAssociations(ctx, projects, &id); err != nil {
		return nil, err
	}
	return &projects[0], nil
}

// GetProjects retrieves every project, most recent start date first, with
// associations loaded.
func (s *SQLiteStore) GetProjects(ctx context.Context) ([]model.Project, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT "+projectColumns+" FROM projects ORDER BY start_date DESC, created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	projects, err := collectProjects(rows)
	if err != nil {
		return nil, err
	}
	if err := s.loadAssociations(ctx, projects, nil); err != nil {
		return nil, err
	}
	return projects, nil
}

// loadAssociations attaches technology and process links, with their
// endpoint records, to the given projects. A non-nil projectID narrows the
// query to that project.
func (s *SQLiteStore) loadAssociations(
	ctx context.Context,
	projects []model.Project,
	projectID *string,
) error {
	if len(projects) == 0 {
		return nil
	}
	index := make(map[string]int, len(projects))
	for i := range projects {
		index[projects[i].ID] = i
	}

	techQuery := `
		SELECT pt.id, pt.project_id, pt.technology_id, pt.created_at,
			t.id, t.name, t.category, t.is_custom, t.created_at
		FROM project_technologies pt
		INNER JOIN technologies t ON t.id = pt.technology_id`
	procQuery := `
		SELECT pp.id, pp.project_id, pp.process_id, pp.created_at,
			p.id, p.name, p.sort_order, p.created_at
		FROM project_processes pp
		INNER JOIN processes p ON p.id = pp.process_id`
	var args []interface{}
	if projectID != nil {
		techQuery += " WHERE pt.project_id = ?"
		procQuery += " WHERE pp.project_id = ?"
		args = append(args, *projectID)
	}
	techQuery += " ORDER BY t.name"
	procQuery += " ORDER BY p.sort_order, p.name"

	rows, err := s.db.QueryxContext(ctx, techQuery, args...)
	if err != nil {
		return fmt.Errorf("querying project technologies: %w", err)
	}
	for rows.Next() {
		link, err := scanProjectTechnology(rows)
		if err != nil {
			rows.Close()
			return err
		}
		if i, ok := index[link.ProjectID]; ok {
			projects[i].Technologies = append(projects[i].Technologies, link)
		}
	}
	if err := closeRows(rows); err != nil {
		return err
	}

	rows, err = s.db.QueryxContext(ctx, procQuery, args...)
	if err != nil {
		return fmt.Errorf("querying project processes: %w", err)
	}
	for rows.Next() {
		link, err := scanProjectProcess(rows)
		if err != nil {
			rows.Close()
			return err
		}
		if i, ok := index[link.ProjectID]; ok {
			projects[i].Processes = append(projects[i].Processes, link)
		}
	}
	return closeRows(rows)
}

// GetAssociationCounts returns the number of rows in each association table.
func (s *SQLiteStore) GetAssociationCounts(ctx context.Context) (AssociationCounts, error) {
	var counts AssociationCounts
	if err := s.db.GetContext(ctx, &counts.TechnologyLinks,
		"SELECT COUNT(*) FROM project_technologies"); err != nil {
		return counts, fmt.Errorf("counting technology links: %w", err)
	}
	if err := s.db.GetContext(ctx, &counts.ProcessLinks,
		"SELECT COUNT(*) FROM project_processes"); err != nil {
		return counts, fmt.Errorf("counting process links: %w", err)
	}
	return counts, nil
}

func projectFromDraft(d model.ProjectDraft) *model.Project {
	return &model.Project{
		Name:             d.Name,
		StartDate:        d.StartDate,
		EndDate:          d.EndDate,
		IsOngoing:        d.IsOngoing,
		Industry:         d.Industry,
		Role:             d.Role,
		TeamSize:         d.TeamSize,
		Overview:         d.Overview,
		Responsibilities: d.Responsibilities,
		Achievements:     d.Achievements,
	}
}

// collectProjects drains and closes a project result set.
func collectProjects(rows *sqlx.Rows) ([]model.Project, error) {
	var projects []model.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}
	return projects, nil
}

// closeRows closes rows and reports any iteration error.
func closeRows(rows *sqlx.Rows) error {
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	return rows.Close()
}

// scanProject scans a project row in projectColumns order.
func scanProject(rows interface{ Scan(dest ...interface{}) error }) (model.Project, error) {
	var (
		p                       model.Project
		endDate                 *time.Time
		ongoingInt              int
		industry, role, teamSize string
	)

	err := rows.Scan(
		&p.ID, &p.Name, &p.StartDate, &endDate, &ongoingInt,
		&industry, &role, &teamSize,
		&p.Overview, &p.Responsibilities, &p.Achievements,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return model.Project{}, fmt.Errorf("scanning project row: %w", err)
	}

	p.StartDate = localDate(p.StartDate)
	p.EndDate = localDatePtr(endDate)
	p.IsOngoing = ongoingInt != 0
	p.Industry = model.Industry(industry)
	p.Role = model.Role(role)
	p.TeamSize = model.TeamSize(teamSize)
	return p, nil
}

func scanProjectTechnology(rows interface{ Scan(dest ...interface{}) error }) (model.ProjectTechnology, error) {
	var (
		link      model.ProjectTechnology
		category  string
		customInt int
	)
	err := rows.Scan(
		&link.ID, &link.ProjectID, &link.TechnologyID, &link.CreatedAt,
		&link.Technology.ID, &link.Technology.Name, &category, &customInt,
		&link.Technology.CreatedAt,
	)
	if err != nil {
		return model.ProjectTechnology{}, fmt.Errorf("scanning project technology row: %w", err)
	}
	link.Technology.Category = model.TechnologyCategory(category)
	link.Technology.IsCustom = customInt != 0
	return link, nil
}

func scanProjectProcess(rows interface{ Scan(dest ...interface{}) error }) (model.ProjectProcess, error) {
	var link model.ProjectProcess
	err := rows.Scan(
		&link.ID, &link.ProjectID, &link.ProcessID, &link.CreatedAt,
		&link.Process.ID, &link.Process.Name, &link.Process.Order,
		&link.Process.CreatedAt,
	)
	if err != nil {
		return model.ProjectProcess{}, fmt.Errorf("scanning project process row: %w", err)
	}
	return link, nil
}
