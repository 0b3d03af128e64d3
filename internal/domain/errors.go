package domain

import "errors"

var (
	// ErrNotFound is returned when the requested resource does not exist.
	// Keeping this sentinel in domain allows adapters to map it consistently to 404.
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidCredentials hides whether the identifier or the password failed.
	// The reason is to prevent account-enumeration side channels.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrRateLimited signals the brute-force throttle tripped for this identifier/origin pair.
	ErrRateLimited = errors.New("rate limited")
	// ErrUnauthorized covers every refresh/access token failure without distinguishing
	// bad signature, expiry, or rotation mismatch.
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidInput = errors.New("invalid input")
	// ErrConflict surfaces a durable-store uniqueness violation. It is the backstop for
	// registration races that slip past the duplicate pre-checks.
	ErrConflict = errors.New("conflict")
	// ErrInternal marks inconsistent stored state, such as an activation token whose
	// user no longer exists.
	ErrInternal = errors.New("internal error")
)
