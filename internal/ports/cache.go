package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// LoginThrottle tracks failed login attempts per (identifier, origin) pair in the
// ephemeral store. Counters self-expire after the lockout window; RecordFailure
// must be atomic because concurrent requests may target the same pair.
type LoginThrottle interface {
	Attempts(ctx context.Context, identifier, origin string) (int, error)
	// RecordFailure increments the counter and refreshes its TTL to the window.
	// The first increment materializes the key.
	RecordFailure(ctx context.Context, identifier, origin string, window time.Duration) (int, error)
	Clear(ctx context.Context, identifier, origin string) error
}

// PasswordResetStore keeps single-use reset tokens and per-email cooldown markers.
// Only the SHA-256 of a reset token is ever stored; the raw token lives exclusively
// in the email link.
type PasswordResetStore interface {
	SaveToken(ctx context.Context, tokenHash string, userID uuid.UUID, ttl time.Duration) error
	LookupToken(ctx context.Context, tokenHash string) (uuid.UUID, bool, error)
	DeleteToken(ctx context.Context, tokenHash string) error
	MarkCooldown(ctx context.Context, email string, ttl time.Duration) error
	InCooldown(ctx context.Context, email string) (bool, error)
}
