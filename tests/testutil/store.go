package testutil

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/careerlog/careerlog/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// Store logs go to the test output. The store is closed when the test
// completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:", zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}
