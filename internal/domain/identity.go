package domain

import (
	"time"

	"github.com/google/uuid"
)

// Identity is the canonical account record. It keeps only auth-relevant state;
// post/comment/follow data lives behind other services and is read here solely
// for the follower/following projection counts.
type Identity struct {
	UserID         uuid.UUID
	Username       string
	Email          string
	Name           string
	Surname        string
	PasswordHash   string
	IsActive       bool
	ProfilePicture *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ActivationRecord binds a pending identity to its one-time activation link.
// At most one record exists per identity; the record is deleted on redemption
// and behaves as absent once ExpiresAt has passed.
type ActivationRecord struct {
	Token     string
	UserID    uuid.UUID
	CreatedAt time.Time
	ExpiresAt time.Time
}

// RefreshRecord is the single active refresh token for an identity.
// Every successful login, registration, or refresh overwrites it (rotation),
// which implicitly invalidates the previous token string.
type RefreshRecord struct {
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
