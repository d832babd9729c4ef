package author

import "errors"

// Repository-level errors
var (
	ErrAuthorNotFound = errors.New("author not found")

	// Returned for a duplicate username OR email; callers cannot tell which.
	ErrAuthorAlreadyExists = errors.New("author with this username or email already exists")
)

// Authentication errors
var (
	// ErrUnauthenticated collapses every bearer-token failure: missing, malformed,
	// forged, expired, or naming an author that does not exist.
	ErrUnauthenticated = errors.New("invalid or expired token")

	// ErrInvalidCredentials never distinguishes an unknown email from a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrAccountDisabled = errors.New("author account is disabled")
)
