package documents

import "errors"

var (
	// ErrInvalidInput marks a missing or malformed required field.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound covers absent documents, documents owned by someone else,
	// and metadata whose bytes are gone; callers cannot tell these apart.
	ErrNotFound = errors.New("document not found")
	// ErrStorage marks a byte-write or metadata failure.
	ErrStorage = errors.New("storage failure")
)
