package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotIndexed indicates a search was attempted before any index was built.
	// Callers should surface it as an "initialising" state and index first.
	ErrNotIndexed = errors.New("index not ready")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates a record file with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrWatcherClosed indicates the file watcher has been stopped.
	ErrWatcherClosed = errors.New("watcher closed")
)
