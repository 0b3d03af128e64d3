package domain

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	minUsernameLength = 4
	maxUsernameLength = 30
	minPasswordLength = 6
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsEmail reports whether the value is shaped like an email address.
// Login uses it to decide whether an identifier resolves by email or username.
func IsEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// NormalizeEmail lowers and trims an email and rejects malformed input.
func NormalizeEmail(email string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(email))
	if trimmed == "" {
		return "", fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if !emailPattern.MatchString(trimmed) {
		return "", fmt.Errorf("%w: %s is not a valid email", ErrInvalidInput, trimmed)
	}
	return trimmed, nil
}

// ValidateUsername enforces the account username policy.
func ValidateUsername(username string) error {
	trimmed := strings.TrimSpace(username)
	if len(trimmed) < minUsernameLength {
		return fmt.Errorf("%w: username must be at least %d characters", ErrInvalidInput, minUsernameLength)
	}
	if len(trimmed) > maxUsernameLength {
		return fmt.Errorf("%w: username must be <= %d characters", ErrInvalidInput, maxUsernameLength)
	}
	return nil
}

// ValidatePassword enforces the baseline password policy.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	return nil
}
