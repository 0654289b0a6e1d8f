package repository

import "errors"

var (
	// ErrNotFound indicates the requested document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrDuplicateEmail indicates an insert collided with the unique email
	// index.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrVersionConflict indicates a guarded write lost the race against a
	// concurrent mutation of the same document.
	ErrVersionConflict = errors.New("document version conflict")
)
