package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nestfeed/server/internal/domain"
)

// CreateIdentityParams captures the fields registration persists.
// The password arrives pre-hashed; the repository never sees cleartext.
type CreateIdentityParams struct {
	Username     string
	Email        string
	Name         string
	Surname      string
	PasswordHash string
	CreatedAtUTC time.Time
}

// IdentityRepository defines persistence operations for account identities.
// Duplicate email/username races are resolved by the store's unique constraints,
// surfaced as domain.ErrConflict.
type IdentityRepository interface {
	Create(ctx context.Context, params CreateIdentityParams) (domain.Identity, error)
	GetByEmail(ctx context.Context, email string) (domain.Identity, error)
	GetByUsername(ctx context.Context, username string) (domain.Identity, error)
	GetByID(ctx context.Context, userID uuid.UUID) (domain.Identity, error)
	SetActive(ctx context.Context, userID uuid.UUID, activatedAt time.Time) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string, updatedAt time.Time) error
}

// ActivationRepository owns the one-pending-activation-per-identity record.
type ActivationRepository interface {
	Create(ctx context.Context, record domain.ActivationRecord) error
	GetByToken(ctx context.Context, token string) (domain.ActivationRecord, error)
	Delete(ctx context.Context, token string) error
}

// RefreshTokenRepository keeps the single active refresh token per identity.
// Upsert is the rotation point and must be atomic; concurrent rotations for the
// same identity are last-writer-wins.
type RefreshTokenRepository interface {
	Upsert(ctx context.Context, userID uuid.UUID, token string, expiresAt, now time.Time) error
	GetByUser(ctx context.Context, userID uuid.UUID) (domain.RefreshRecord, error)
	DeleteByToken(ctx context.Context, token string) error
}

// FollowRepository exposes the aggregate counts the auth responses project.
// Follow CRUD itself belongs to another layer.
type FollowRepository interface {
	Counts(ctx context.Context, userID uuid.UUID) (followers, following int64, err error)
}
