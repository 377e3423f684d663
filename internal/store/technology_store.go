package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/careerlog/careerlog/internal/model"
)

// FindOrCreateTechnology returns the technology with the exact name, creating
// it inside the batch if none exists. New records take their category from
// the built-in catalog; names missing from the catalog are custom and fall
// under "other".
func (t *Tx) FindOrCreateTechnology(ctx context.Context, name string) (*model.Technology, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &model.ValidationError{Field: "technology name", Reason: "is required"}
	}

	var (
		tech      model.Technology
		category  string
		customInt int
	)
	err := t.tx.QueryRowxContext(ctx,
		"SELECT id, name, category, is_custom, created_at FROM technologies WHERE name = ?",
		name,
	).Scan(&tech.ID, &tech.Name, &category, &customInt, &tech.CreatedAt)
	switch {
	case err == nil:
		tech.Category = model.TechnologyCategory(category)
		tech.IsCustom = customInt != 0
		return &tech, nil
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("looking up technology %q: %w", name, err)
	}

	cat, known := model.CategoryFor(name)
	tech = model.Technology{
		ID:        uuid.New().String(),
		Name:      name,
		Category:  cat,
		IsCustom:  !known,
		CreatedAt: time.Now().UTC(),
	}
	_, err = t.tx.ExecContext(ctx, `
		INSERT INTO technologies (id, name, category, is_custom, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		tech.ID, tech.Name, string(tech.Category), boolToInt(tech.IsCustom), tech.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting technology %q: %w", name, err)
	}
	return &tech, nil
}

// FindOrCreateProcess returns the process with the exact name, creating it
// with the given sort order if none exists. The order of an existing
// process is not changed.
func (t *Tx) FindOrCreateProcess(ctx context.Context, name string, order int) (*model.Process, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &model.ValidationError{Field: "process name", Reason: "is required"}
	}

	var proc model.Process
	err := t.tx.QueryRowxContext(ctx,
		"SELECT id, name, sort_order, created_at FROM processes WHERE name = ?",
		name,
	).Scan(&proc.ID, &proc.Name, &proc.Order, &proc.CreatedAt)
	switch {
	case err == nil:
		return &proc, nil
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("looking up process %q: %w", name, err)
	}

	proc = model.Process{
		ID:        uuid.New().String(),
		Name:      name,
		Order:     order,
		CreatedAt: time.Now().UTC(),
	}
	_, err = t.tx.ExecContext(ctx, `
		INSERT INTO processes (id, name, sort_order, created_at)
		VALUES (?, ?, ?, ?)`,
		proc.ID, proc.Name, proc.Order, proc.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting process %q: %w", name, err)
	}
	return &proc, nil
}

// FindOrCreateTechnology runs the Tx variant in its own batch.
func (s *SQLiteStore) FindOrCreateTechnology(ctx context.Context, name string) (*model.Technology, error) {
	var tech *model.Technology
	err := s.inTx(ctx, "find or create technology", "", func(tx *Tx) error {
		var err error
		tech, err = tx.FindOrCreateTechnology(ctx, name)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tech, nil
}

// FindOrCreateProcess runs the Tx variant in its own batch.
func (s *SQLiteStore) FindOrCreateProcess(ctx context.Context, name string, order int) (*model.Process, error) {
	var proc *model.Process
	err := s.inTx(ctx, "find or create process", "", func(tx *Tx) error {
		var err error
		proc, err = tx.FindOrCreateProcess(ctx, name, order)
		return err
	})
	if err != nil {
		return nil, err
	}
	return proc, nil
}

// GetTechnologies returns every technology ordered by name.
func (s *SQLiteStore) GetTechnologies(ctx context.Context) ([]model.Technology, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT id, name, category, is_custom, created_at FROM technologies ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("querying technologies: %w", err)
	}

	var techs []model.Technology
	for rows.Next() {
		var (
			t         model.Technology
			category  string
			customInt int
		)
		if err := rows.Scan(&t.ID, &t.Name, &category, &customInt, &t.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning technology row: %w", err)
		}
		t.Category = model.TechnologyCategory(category)
		t.IsCustom = customInt != 0
		techs = append(techs, t)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}
	return techs, nil
}

// GetProcesses returns every process in stage order.
func (s *SQLiteStore) GetProcesses(ctx context.Context) ([]model.Process, error) {
	var procs []model.Process
	err := s.db.SelectContext(ctx, &procs,
		"SELECT id, name, sort_order, created_at FROM processes ORDER BY sort_order, name")
	if err != nil {
		return nil, fmt.Errorf("querying processes: %w", err)
	}
	return procs, nil
}
