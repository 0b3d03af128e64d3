package ports

import (
	"time"

	"github.com/google/uuid"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// SessionClaims is the adapter-neutral claim set carried by both token kinds.
type SessionClaims struct {
	UserID    uuid.UUID
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenPair is one issuance of an access token and its companion refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenIssuer signs and verifies session tokens. Access and refresh tokens are
// signed with distinct secrets so neither verifies under the other's method.
// Verification failures are returned raw; the application layer collapses them
// to domain.ErrUnauthorized.
type TokenIssuer interface {
	IssuePair(userID uuid.UUID, now time.Time) (TokenPair, error)
	VerifyAccess(token string) (SessionClaims, error)
	VerifyRefresh(token string) (SessionClaims, error)
}
