package store

import (
	"errors"
	"fmt"

	"github.com/careerlog/careerlog/internal/model"
)

var (
	// ErrNotFound is returned when a record addressed by ID does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned when a draft is rejected before any write.
	ErrValidation = model.ErrValidation
)

// PersistenceError reports a failed begin, write, or commit. The batch it
// belonged to was rolled back; nothing is retried.
type PersistenceError struct {
	// Op is the store operation, e.g. "delete project".
	Op string
	// Phase names the step within Op when the operation commits more than
	// once. Empty for single-batch operations.
	Phase string
	Err   error
}

func (e *PersistenceError) Error() string {
	if e.Phase != "" {
		return fmt.Sprintf("%s (%s): %v", e.Op, e.Phase, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsPersistence reports whether err is, or wraps, a PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}

// persistenceErr wraps err for op/phase unless it is a lookup miss or a
// validation failure, which callers branch on directly.
func persistenceErr(op, phase string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrValidation) {
		return err
	}
	return &PersistenceError{Op: op, Phase: phase, Err: err}
}
