package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerlog/careerlog/internal/model"
	"github.com/careerlog/careerlog/internal/store"
	"github.com/careerlog/careerlog/tests/testutil"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func sampleDraft() model.ProjectDraft {
	return model.ProjectDraft{
		Name:         "EC site renewal",
		StartDate:    date(2024, time.January, 1),
		EndDate:      datePtr(2024, time.July, 1),
		Industry:     model.IndustryWeb,
		Role:         model.RoleTechLead,
		TeamSize:     model.TeamSizeMedium,
		Technologies: []string{"React", "Go"},
		Processes: []string{
			string(model.ProcessBasicDesign),
			string(model.ProcessImplementation),
			string(model.ProcessUnitTest),
		},
		Overview: "Rebuilt the storefront",
	}
}

func TestFindOrCreateTechnology(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	t.Run("returns the same record for the same name", func(t *testing.T) {
		first, err := s.FindOrCreateTechnology(ctx, "React")
		require.NoError(t, err)
		second, err := s.FindOrCreateTechnology(ctx, "React")
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, model.CategoryFrontend, first.Category)
		assert.False(t, first.IsCustom)

		techs, err := s.GetTechnologies(ctx)
		require.NoError(t, err)
		assert.Len(t, techs, 1)
	})

	t.Run("names outside the catalog are custom", func(t *testing.T) {
		tech, err := s.FindOrCreateTechnology(ctx, "Rust")
		require.NoError(t, err)
		assert.Equal(t, model.CategoryOther, tech.Category)
		assert.True(t, tech.IsCustom)
	})

	t.Run("blank names are rejected", func(t *testing.T) {
		_, err := s.FindOrCreateTechnology(ctx, "   ")
		assert.ErrorIs(t, err, store.ErrValidation)
	})
}

func TestFindOrCreateProcess(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	first, err := s.FindOrCreateProcess(ctx, string(model.ProcessImplementation), 3)
	require.NoError(t, err)
	second, err := s.FindOrCreateProcess(ctx, string(model.ProcessImplementation), 42)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 3, second.Order, "existing order is kept")
}

func TestCreateProject(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	created, err := s.CreateProject(ctx, sampleDraft())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := s.GetProject(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "EC site renewal", got.Name)
	assert.Equal(t, model.IndustryWeb, got.Industry)
	assert.Equal(t, model.RoleTechLead, got.Role)
	assert.Equal(t, model.TeamSizeMedium, got.TeamSize)
	assert.Equal(t, "2024-01-01", model.FormatDate(&got.StartDate))
	require.NotNil(t, got.EndDate)
	assert.Equal(t, "2024-07-01", model.FormatDate(got.EndDate))
	assert.Equal(t, 6, got.DurationInMonths())
	assert.Equal(t, []string{"Go", "React"}, got.TechnologyNames())
	assert.Equal(t, []string{
		string(model.ProcessBasicDesign),
		string(model.ProcessImplementation),
		string(model.ProcessUnitTest),
	}, got.ProcessNamesByOrder())

	counts, err := s.GetAssociationCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts.TechnologyLinks)
	assert.Equal(t, int64(3), counts.ProcessLinks)
}

func TestCreateProject_SharesTechnologies(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	_, err := s.CreateProject(ctx, sampleDraft())
	require.NoError(t, err)

	other := sampleDraft()
	other.Name = "Internal tooling"
	other.Technologies = []string{"React", "Rust"}
	_, err = s.CreateProject(ctx, other)
	require.NoError(t, err)

	techs, err := s.GetTechnologies(ctx)
	require.NoError(t, err)
	names := make([]string, len(techs))
	for i, tech := range techs {
		names[i] = tech.Name
	}
	assert.Equal(t, []string{"Go", "React", "Rust"}, names)
}

func TestCreateProject_Validation(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	tests := []struct {
		name  string
		draft func() model.ProjectDraft
		field string
	}{
		{
			name: "blank name",
			draft: func() model.ProjectDraft {
				d := sampleDraft()
				d.Name = "  "
				return d
			},
			field: "name",
		},
		{
			name: "missing start date",
			draft: func() model.ProjectDraft {
				d := sampleDraft()
				d.StartDate = time.Time{}
				return d
			},
			field: "start date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateProject(ctx, tt.draft())
			require.Error(t, err)
			assert.ErrorIs(t, err, store.ErrValidation)

			var verr *model.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	projects, err := s.GetProjects(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)

	techs, err := s.GetTechnologies(ctx)
	require.NoError(t, err)
	assert.Empty(t, techs)
}

func TestUpdateProject(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	created, err := s.CreateProject(ctx, sampleDraft())
	require.NoError(t, err)
	before, err := s.GetProject(ctx, created.ID)
	require.NoError(t, err)

	d := model.DraftFromProject(*before)
	d.Name = "EC site renewal phase 2"
	d.IsOngoing = true
	d.Technologies = []string{"TypeScript"}
	d.Processes = []string{string(model.ProcessMaintenance)}

	updated, err := s.UpdateProject(ctx, created.ID, d)
	require.NoError(t, err)

	assert.Equal(t, "EC site renewal phase 2", updated.Name)
	assert.True(t, updated.IsOngoing)
	assert.Nil(t, updated.EndDate, "ongoing projects have no end date")
	assert.Equal(t, []string{"TypeScript"}, updated.TechnologyNames())
	assert.Equal(t, []string{string(model.ProcessMaintenance)}, updated.ProcessNames())
	assert.True(t, updated.CreatedAt.Equal(before.CreatedAt))
	assert.False(t, updated.UpdatedAt.Before(before.UpdatedAt))

	counts, err := s.GetAssociationCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.TechnologyLinks)
	assert.Equal(t, int64(1), counts.ProcessLinks)

	techs, err := s.GetTechnologies(ctx)
	require.NoError(t, err)
	assert.Len(t, techs, 3, "unlinked technologies are kept")
}

func TestUpdateProject_NotFound(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := s.UpdateProject(context.Background(), "missing", sampleDraft())
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.False(t, store.IsPersistence(err))
}

func TestDeleteProject(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	created, err := s.CreateProject(ctx, sampleDraft())
	require.NoError(t, err)

	res, err := s.DeleteProject(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.TechnologyLinks)
	assert.Equal(t, int64(3), res.ProcessLinks)
	assert.Equal(t, int64(5), res.Total())

	_, err = s.GetProject(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	counts, err := s.GetAssociationCounts(ctx)
	require.NoError(t, err)
	assert.Zero(t, counts.TechnologyLinks)
	assert.Zero(t, counts.ProcessLinks)

	techs, err := s.GetTechnologies(ctx)
	require.NoError(t, err)
	assert.Len(t, techs, 2)

	procs, err := s.GetProcesses(ctx)
	require.NoError(t, err)
	assert.Len(t, procs, 3)
}

func TestDeleteProject_LeavesOtherProjectsLinked(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	first, err := s.CreateProject(ctx, sampleDraft())
	require.NoError(t, err)
	second, err := s.CreateProject(ctx, sampleDraft())
	require.NoError(t, err)

	_, err = s.DeleteProject(ctx, first.ID)
	require.NoError(t, err)

	remaining, err := s.GetProject(ctx, second.ID)
	require.NoError(t, err)
	assert.Len(t, remaining.Technologies, 2)
	assert.Len(t, remaining.Processes, 3)
}

func TestDeleteProject_NotFound(t *testing.T) {
	s := testutil.NewTestStore(t)

	res, err := s.DeleteProject(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Zero(t, res.Total())
}

func TestGetProjects_OrderedByStartDate(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	starts := []time.Time{
		date(2022, time.April, 1),
		date(2024, time.January, 1),
		date(2023, time.October, 1),
	}
	for i, start := range starts {
		d := sampleDraft()
		d.Name = []string{"oldest", "newest", "middle"}[i]
		d.StartDate = start
		d.EndDate = nil
		d.IsOngoing = true
		_, err := s.CreateProject(ctx, d)
		require.NoError(t, err)
	}

	projects, err := s.GetProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 3)
	assert.Equal(t, "newest", projects[0].Name)
	assert.Equal(t, "middle", projects[1].Name)
	assert.Equal(t, "oldest", projects[2].Name)
	for _, p := range projects {
		assert.Len(t, p.Technologies, 2)
		assert.Nil(t, p.EndDate)
	}
}

func TestCertificationCRUD(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	created, err := s.CreateCertification(ctx, model.CertificationDraft{
		Name:                " AWS Solutions Architect ",
		ObtainedDate:        date(2023, time.May, 10),
		ExpirationDate:      datePtr(2026, time.May, 10),
		CertificationNumber: "SAA-123",
	})
	require.NoError(t, err)
	assert.Equal(t, "AWS Solutions Architect", created.Name)

	got, err := s.GetCertification(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "SAA-123", got.CertificationNumber)
	require.NotNil(t, got.ExpirationDate)
	assert.Equal(t, "2026-05-10", model.FormatDate(got.ExpirationDate))

	d := model.DraftFromCertification(*got)
	d.ExpirationDate = nil
	d.Memo = "renewed without expiry"
	updated, err := s.UpdateCertification(ctx, created.ID, d)
	require.NoError(t, err)
	assert.Nil(t, updated.ExpirationDate)
	assert.Equal(t, "renewed without expiry", updated.Memo)

	certs, err := s.GetCertifications(ctx)
	require.NoError(t, err)
	assert.Len(t, certs, 1)

	require.NoError(t, s.DeleteCertification(ctx, created.ID))
	_, err = s.GetCertification(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.ErrorIs(t, s.DeleteCertification(ctx, created.ID), store.ErrNotFound)
}

func TestCreateCertification_Validation(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := s.CreateCertification(context.Background(), model.CertificationDraft{
		Name: "No date",
	})
	assert.ErrorIs(t, err, store.ErrValidation)
}

func TestNewSQLiteStore_ReopensFile(t *testing.T) {
	ctx := context.Background()
	path := t.TempDir() + "/nested/careerlog.db"

	s, err := store.NewSQLiteStore(path, nil)
	require.NoError(t, err)
	_, err = s.CreateProject(ctx, sampleDraft())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := store.NewSQLiteStore(path, nil)
	require.NoError(t, err)
	defer reopened.Close()

	projects, err := reopened.GetProjects(ctx)
	require.NoError(t, err)
	assert.Len(t, projects, 1)
}

func TestDatesKeepTheirCalendarDay(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	tokyo := time.FixedZone("JST", 9*3600)

	start, err := model.ParseDateIn("2024-01-15", tokyo)
	require.NoError(t, err)
	expires, err := model.ParseDateIn("2024-07-15", tokyo)
	require.NoError(t, err)

	d := sampleDraft()
	d.StartDate = start
	d.EndDate = nil
	d.IsOngoing = true
	created, err := s.CreateProject(ctx, d)
	require.NoError(t, err)

	p, err := s.GetProject(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", model.FormatDate(&p.StartDate))

	cert, err := s.CreateCertification(ctx, model.CertificationDraft{
		Name:           "LPIC-1",
		ObtainedDate:   start,
		ExpirationDate: &expires,
	})
	require.NoError(t, err)

	got, err := s.GetCertification(ctx, cert.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", model.FormatDate(&got.ObtainedDate))
	assert.Equal(t, "2024-07-15", model.FormatDate(got.ExpirationDate))
}
