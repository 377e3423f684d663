package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/careerlog/careerlog/internal/model"
)

// memoryPath opens a private in-memory database.
const memoryPath = ":memory:"

// SQLiteStore implements the Store interface using a local SQLite database.
type SQLiteStore struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode and foreign keys, and runs any pending schema migrations.
// A nil logger discards log output.
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	if dbPath != memoryPath {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// One connection: batches are serialised and an in-memory database is
	// shared by every query.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := newStore(db, logger)
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// newStore wraps an already-configured connection.
func newStore(db *sqlx.DB, logger *zap.Logger) *SQLiteStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SQLiteStore{db: db, logger: logger.Named("store")}
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	applied := 0
	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
		currentVersion = m.version
		applied++
	}

	if applied == 0 {
		s.logger.Debug("schema up to date", zap.Int("version", currentVersion))
	} else {
		s.logger.Info("applied migrations",
			zap.Int("count", applied), zap.Int("version", currentVersion))
	}
	return nil
}

// Begin opens a write batch. Nothing written through the returned Tx is
// visible to other readers until Commit; Rollback discards the batch.
// While a batch is open every other store call waits for it.
func (s *SQLiteStore) Begin(ctx context.Context) (*Tx, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	return &Tx{tx: tx}, nil
}

// inTx runs fn inside one batch and commits it. Failures are logged and
// returned as PersistenceError unless they are lookup or validation errors.
func (s *SQLiteStore) inTx(ctx context.Context, op, phase string, fn func(tx *Tx) error) error {
	tx, err := s.Begin(ctx)
	if err != nil {
		return s.fail(op, phase, err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return s.fail(op, phase, err)
	}
	if err := tx.Commit(); err != nil {
		return s.fail(op, phase, err)
	}
	return nil
}

func (s *SQLiteStore) fail(op, phase string, err error) error {
	wrapped := persistenceErr(op, phase, err)
	if IsPersistence(wrapped) {
		s.logger.Error("persistence failure",
			zap.String("op", op), zap.String("phase", phase), zap.Error(err))
	}
	return wrapped
}

// Tx is an open write batch.
type Tx struct {
	tx *sqlx.Tx
}

// Commit persists every pending change of the batch at once.
func (t *Tx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Rollback discards the batch. Calling it after Commit is a no-op.
func (t *Tx) Rollback() error {
	err := t.tx.Rollback()
	if errors.Is(err, sql.ErrTxDone) {
		return nil
	}
	return err
}

// boolToInt converts a boolean to 0 or 1 for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// storedDate keeps only the calendar day of t, written as UTC midnight.
func storedDate(t time.Time) time.Time {
	return model.DayIn(t, time.UTC)
}

func storedDatePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := storedDate(*t)
	return &d
}

// localDate turns a stored calendar day back into local midnight.
func localDate(t time.Time) time.Time {
	return model.DayIn(t.UTC(), time.Local)
}

func localDatePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := localDate(*t)
	return &d
}
