package domain

import "errors"

// Error kinds shared by the engine and the usecases. Specific errors wrap one of
// these so callers can branch on the kind with errors.Is.
var (
	// ErrInvalidInput marks a malformed request or a missing field required by
	// the chosen pricing or scheduling mode. Not retryable.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks a referenced treatment, duration or instrument that does
	// not exist or does not match the selection. Not retryable.
	ErrNotFound = errors.New("not found")

	// ErrStateConflict marks an entity that exists but is not eligible right now,
	// e.g. a depleted subscription or an expired voucher.
	ErrStateConflict = errors.New("state conflict")
)
