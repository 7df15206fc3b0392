// Package types defines shared types and errors for the iterators library
package types

import (
	"errors"
	"fmt"
)

// Predefined errors
var (
	// ErrPoolClosed indicates the pool has been shut down
	ErrPoolClosed = errors.New("pool is closed")

	// ErrPoolPoisoned indicates a worker died and the pool cannot continue
	ErrPoolPoisoned = errors.New("pool is poisoned")

	// ErrInvalidPoolSize indicates a non-positive worker count
	ErrInvalidPoolSize = errors.New("invalid pool size")
)

// WorkerError represents the abnormal termination of a single worker
type WorkerError struct {
	// WorkerID is the position of the failed worker in the pool
	WorkerID int

	// Cause is the underlying error
	Cause error

	// Context contains error context information
	Context map[string]interface{}
}

// Error implements the error interface
func (e *WorkerError) Error() string {
	return fmt.Sprintf("worker %d failed: %v", e.WorkerID, e.Cause)
}

// Unwrap returns the underlying error
func (e *WorkerError) Unwrap() error {
	return e.Cause
}

// Is checks if the error is a specific error
func (e *WorkerError) Is(target error) bool {
	return errors.Is(e.Cause, target)
}

// NewWorkerError creates a new worker error
func NewWorkerError(workerID int, cause error) *WorkerError {
	return &WorkerError{
		WorkerID: workerID,
		Cause:    cause,
		Context:  make(map[string]interface{}),
	}
}

// WithContext adds error context
func (e *WorkerError) WithContext(key string, value interface{}) *WorkerError {
	e.Context[key] = value
	return e
}
