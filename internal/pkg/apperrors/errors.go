package apperrors

import "errors"

// Common errors
var (
	// ErrValidationFailed is returned when a request fails validation before
	// reaching storage.
	ErrValidationFailed = errors.New("validation failed")
)

// Student errors
var (
	// ErrStudentNotFound is returned for any operation on an id that does not
	// exist in the collection.
	ErrStudentNotFound = errors.New("student not found")
)

// Store errors
var (
	// ErrStoreUnavailable is returned when the document collection cannot be
	// reached at all.
	ErrStoreUnavailable = errors.New("record store unavailable")
)
