// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyBatch is returned when a batch creation request carries no candidates.
	ErrEmptyBatch = fmt.Errorf("%w: batch is empty", ErrValidation)
)

// ValidationError describes a single field that failed validation.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError for the given field.
// A nil err defaults to ErrValidation.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{Field: field, Message: message, Err: err}
}

// BatchValidationError reports every candidate of a batch that failed validation.
// It always matches ErrValidation with errors.Is.
type BatchValidationError struct {
	// Failures is keyed by the candidate's position in the submitted batch.
	Failures map[int]error
	errs     *multierror.Error
}

// NewBatchValidationError builds a BatchValidationError from per-candidate failures.
func NewBatchValidationError(failures map[int]error, total int) *BatchValidationError {
	var merr *multierror.Error
	for i := 0; i < total; i++ {
		if err, ok := failures[i]; ok {
			merr = multierror.Append(merr, fmt.Errorf("candidate %d: %w", i, err))
		}
	}
	if merr != nil {
		merr.ErrorFormat = func(errs []error) string {
			msgs := make([]string, len(errs))
			for i, err := range errs {
				msgs[i] = err.Error()
			}
			return strings.Join(msgs, "; ")
		}
	}
	return &BatchValidationError{Failures: failures, errs: merr}
}

// Error implements the error interface for BatchValidationError.
func (e *BatchValidationError) Error() string {
	if e.errs == nil {
		return ErrValidation.Error()
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), e.errs.Error())
}

// Unwrap exposes ErrValidation and every candidate failure.
func (e *BatchValidationError) Unwrap() []error {
	errs := []error{ErrValidation}
	if e.errs != nil {
		errs = append(errs, e.errs.Errors...)
	}
	return errs
}
