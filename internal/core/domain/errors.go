package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors and are recovered at the
// operation boundary; none of them crash the hosting process.
var (
	// ErrDirectoryNotFound indicates the directory to index does not exist.
	ErrDirectoryNotFound = errors.New("directory not found")

	// ErrEmptyCorpus indicates no matching files were found to index.
	ErrEmptyCorpus = errors.New("no matching files to index")

	// ErrNotIndexed indicates a query was issued before any successful
	// rebuild. The message carries the corrective hint.
	ErrNotIndexed = errors.New("no notes indexed yet: run an index build first")

	// ErrInvalidQuery indicates empty query text or a non-positive result
	// count. No store access is attempted.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrRebuildInProgress indicates a rebuild was rejected because one is
	// already running. Rebuilds are rejected rather than queued.
	ErrRebuildInProgress = errors.New("rebuild already in progress")
)

// DimensionMismatchError indicates an embedding vector whose length does
// not match the dimension established for the index. It is fatal to the
// build attempt that produced it but leaves any prior index untouched.
type DimensionMismatchError struct {
	// Want is the established dimension.
	Want int

	// Got is the offending vector length.
	Got int
}

// Error implements the error interface.
func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("embedding dimension mismatch: want %d, got %d", e.Want, e.Got)
}

// EmbeddingError indicates the embedding backend is unavailable or
// returned malformed output.
type EmbeddingError struct {
	// Model is the embedding model that was invoked.
	Model string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding failed (model %s): %v", e.Model, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *EmbeddingError) Unwrap() error {
	return e.Err
}
