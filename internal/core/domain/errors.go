package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown provider or catalog format.
	ErrUnsupportedType = errors.New("unsupported type")

	// Catalog Errors.

	// ErrEmptyCatalog indicates a build was attempted over zero animals.
	// No index can be constructed.
	ErrEmptyCatalog = errors.New("catalog is empty")

	// ErrDuplicateAnimalID indicates two records share the same ID.
	ErrDuplicateAnimalID = errors.New("duplicate animal id")

	// ErrMissingDescription indicates a record has a blank personality description.
	ErrMissingDescription = errors.New("missing personality description")

	// ErrMissingDescriptionColumn indicates the dataset has no
	// personality_description column at all.
	ErrMissingDescriptionColumn = errors.New("dataset has no personality_description column")

	// Engine Errors.

	// ErrRecordEmbeddingFailed indicates a catalog record could not be embedded.
	// The whole build fails; see RecordEmbeddingError for the offending ID.
	ErrRecordEmbeddingFailed = errors.New("record embedding failed")

	// ErrEngineNotReady indicates matching was requested before a successful build.
	ErrEngineNotReady = errors.New("system not ready")

	// ErrQueryEmbeddingFailed indicates the preference query could not be embedded.
	// It is fatal for a single match request and is not retried.
	ErrQueryEmbeddingFailed = errors.New("query embedding failed")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// Preference Errors.

	// ErrUnknownPreferenceKey indicates an answer used a key outside the question set.
	ErrUnknownPreferenceKey = errors.New("unknown preference key")
)

// RecordEmbeddingError identifies the catalog record whose description
// could not be embedded during a build.
type RecordEmbeddingError struct {
	// ID is the animal whose description failed.
	ID int64

	// Err is the underlying encoder failure.
	Err error
}

// Error implements the error interface.
func (e *RecordEmbeddingError) Error() string {
	return fmt.Sprintf("%s: animal %d: %v", ErrRecordEmbeddingFailed, e.ID, e.Err)
}

// Unwrap returns the underlying encoder failure.
func (e *RecordEmbeddingError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrRecordEmbeddingFailed.
func (e *RecordEmbeddingError) Is(target error) bool {
	return target == ErrRecordEmbeddingFailed
}
