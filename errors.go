package vecq

import (
	"errors"
	"fmt"

	"github.com/hupe1980/vecq/model"
	"github.com/hupe1980/vecq/quantization"
)

var (
	// ErrValidation is matched by every rejected input.
	ErrValidation = model.ErrValidation
	// ErrTraining is matched by every failed Train call.
	ErrTraining = model.ErrTraining
	// ErrIndex is matched by every rejected index mutation.
	ErrIndex = model.ErrIndex

	// ErrInvalidK is returned when k is negative.
	ErrInvalidK = errors.New("k must not be negative")
	// ErrNotReady is returned when the configured strategy needs training first.
	ErrNotReady = errors.New("strategy not ready")
)

type (
	// ValidationError reports input rejected before any work was done.
	ValidationError = model.ValidationError
	// TrainingError reports a failed Train call.
	TrainingError = model.TrainingError
	// IndexError reports a rejected index mutation.
	IndexError = model.IndexError
)

// ErrDimensionMismatch indicates two representations of different dimensionality.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Readiness unification.
	if errors.Is(err, quantization.ErrNotTrained) || errors.Is(err, quantization.ErrInsufficientSamples) {
		return fmt.Errorf("%w: %w", ErrNotReady, err)
	}

	return err
}
