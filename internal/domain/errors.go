package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAuth covers bad credentials, missing sessions and rejected tokens.
	ErrAuth = errors.New("authentication required")
	// ErrValidation covers bad form input and orders rejected by the backend.
	ErrValidation = errors.New("validation failed")
	// ErrNetwork covers transport failures and unusable upstream responses.
	ErrNetwork = errors.New("network failure")
)
