package model

import (
	"errors"
	"fmt"

	"github.com/hupe1980/vecq/core"
)

var (
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrTraining is matched by every *TrainingError.
	ErrTraining = errors.New("training failed")
	// ErrIndex is matched by every *IndexError.
	ErrIndex = errors.New("index operation failed")
)

// ValidationError reports input that was rejected before any work was done.
type ValidationError struct {
	Op     string
	Reason string
}

// NewValidationError returns a ValidationError for op.
func NewValidationError(op, format string, args ...any) *ValidationError {
	return &ValidationError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// TrainingError reports a failed Train call on a stateful strategy.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type TrainingError struct {
	Op     string
	Reason string
	cause  error
}

// NewTrainingError returns a TrainingError wrapping cause.
func NewTrainingError(op, reason string, cause error) *TrainingError {
	return &TrainingError{Op: op, Reason: reason, cause: cause}
}

func (e *TrainingError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Reason, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *TrainingError) Unwrap() error { return e.cause }

// Is reports whether target is ErrTraining.
func (e *TrainingError) Is(target error) bool { return target == ErrTraining }

// IndexError reports a rejected index mutation. The index is left unchanged.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type IndexError struct {
	ID     core.ID
	Reason string
	cause  error
}

// NewIndexError returns an IndexError for vector id wrapping cause.
func NewIndexError(id core.ID, reason string, cause error) *IndexError {
	return &IndexError{ID: id, Reason: reason, cause: cause}
}

func (e *IndexError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("index: vector %d: %s: %v", e.ID, e.Reason, e.cause)
	}
	return fmt.Sprintf("index: vector %d: %s", e.ID, e.Reason)
}

func (e *IndexError) Unwrap() error { return e.cause }

// Is reports whether target is ErrIndex.
func (e *IndexError) Is(target error) bool { return target == ErrIndex }
