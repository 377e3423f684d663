package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/careerlog/careerlog/internal/model"
)

func setupMockStore(t *testing.T) (*SQLiteStore, sqlmock.Sqlmock, *observer.ObservedLogs) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	core, logs := observer.New(zap.DebugLevel)
	return newStore(sqlx.NewDb(db, "sqlite"), zap.New(core)), mock, logs
}

func expectAssociationPhase(mock sqlmock.Sqlmock, projectID string) {
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM projects WHERE id = ?")).
		WithArgs(projectID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM project_technologies WHERE project_id = ?")).
		WithArgs(projectID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM project_processes WHERE project_id = ?")).
		WithArgs(projectID).
		WillReturnResult(sqlmock.NewResult(0, 3))
}

func TestDeleteProject_PhaseFailures(t *testing.T) {
	diskErr := errors.New("disk I/O error")

	t.Run("association commit failure", func(t *testing.T) {
		s, mock, logs := setupMockStore(t)

		expectAssociationPhase(mock, "p1")
		mock.ExpectCommit().WillReturnError(diskErr)

		res, err := s.DeleteProject(context.Background(), "p1")
		require.Error(t, err)
		assert.Zero(t, res.Total())

		var pe *PersistenceError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, "delete project", pe.Op)
		assert.Equal(t, "associations", pe.Phase)
		assert.ErrorIs(t, err, diskErr)

		failures := logs.FilterMessage("persistence failure")
		require.Equal(t, 1, failures.Len())
		assert.Equal(t, "associations", failures.All()[0].ContextMap()["phase"])

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("project row failure after associations committed", func(t *testing.T) {
		s, mock, logs := setupMockStore(t)

		expectAssociationPhase(mock, "p1")
		mock.ExpectCommit()
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM projects WHERE id = ?")).
			WithArgs("p1").
			WillReturnError(diskErr)
		mock.ExpectRollback()

		res, err := s.DeleteProject(context.Background(), "p1")
		require.Error(t, err)
		assert.Equal(t, int64(5), res.Total(), "first phase stays committed")

		var pe *PersistenceError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, "project", pe.Phase)
		assert.Equal(t, 1, logs.FilterMessage("persistence failure").Len())

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure", func(t *testing.T) {
		s, mock, _ := setupMockStore(t)

		mock.ExpectBegin().WillReturnError(diskErr)

		_, err := s.DeleteProject(context.Background(), "p1")
		var pe *PersistenceError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, "associations", pe.Phase)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCreateProject_RollsBackOnWriteFailure(t *testing.T) {
	s, mock, logs := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO projects").WillReturnError(errors.New("constraint failed"))
	mock.ExpectRollback()

	_, err := s.CreateProject(context.Background(), model.ProjectDraft{
		Name:      "Billing",
		StartDate: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
	})
	require.Error(t, err)
	assert.True(t, IsPersistence(err))
	assert.Equal(t, "create project: inserting project: constraint failed", err.Error())
	assert.Equal(t, 1, logs.FilterMessage("persistence failure").Len())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPersistenceErr_PassesLookupAndValidationThrough(t *testing.T) {
	notFound := persistenceErr("delete certification", "", ErrNotFound)
	assert.Same(t, ErrNotFound, notFound)

	invalid := &model.ValidationError{Field: "name", Reason: "is required"}
	assert.Equal(t, error(invalid), persistenceErr("create project", "", invalid))

	assert.Nil(t, persistenceErr("create project", "", nil))
}
