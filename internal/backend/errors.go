package backend

import "errors"

var (
	// ErrUnavailable indicates the Aquila backend is unreachable.
	ErrUnavailable = errors.New("aquila backend unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("aquila backend request timed out")

	// ErrUnauthorized indicates the bearer token was missing or rejected.
	ErrUnauthorized = errors.New("aquila backend rejected the access token")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("aquila backend retry attempts exhausted")
)
