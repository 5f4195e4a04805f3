package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrStoreLoad is returned when the persisted collection cannot be read or parsed.
	// At startup this is fatal unless an empty collection is explicitly allowed.
	ErrStoreLoad = errors.New("store load failed")

	// ErrStoreWrite is returned when the collection could not be persisted.
	// The caller must not report the triggering operation as successful.
	ErrStoreWrite = errors.New("store write failed")

	// ErrUserNotFound indicates that the requested user does not exist in the store.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsWriteError reports whether err means durable state may not reflect the operation.
func IsWriteError(err error) bool {
	return errors.Is(err, ErrStoreWrite)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "user")
	Operation string // The operation that failed (e.g., "load", "save")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// NewLoadError wraps cause so that it matches ErrStoreLoad.
func NewLoadError(entity, message string, cause error) *StoreError {
	return NewStoreError(entity, "load", message, joinCause(ErrStoreLoad, cause))
}

// NewWriteError wraps cause so that it matches ErrStoreWrite.
func NewWriteError(entity, message string, cause error) *StoreError {
	return NewStoreError(entity, "save", message, joinCause(ErrStoreWrite, cause))
}

func joinCause(sentinel, cause error) error {
	if cause == nil {
		return sentinel
	}
	return fmt.Errorf("%w: %w", sentinel, cause)
}
