package store

import "errors"

var (
	// ErrUnavailable means the store never connected. Requests fail fast
	// rather than waiting on a connection that will not be established.
	ErrUnavailable = errors.New("document store unavailable")

	// ErrNotFound means a well-formed id matched no document.
	ErrNotFound = errors.New("document not found")

	// ErrWriteFailed means an insert did not persist. No document is
	// visible afterward; safe to retry.
	ErrWriteFailed = errors.New("document write failed")
)
