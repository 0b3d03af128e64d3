package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/nestfeed/server/internal/ports"
)

const (
	tokenIssuer   = "nestfeed-auth"
	tokenAudience = "nestfeed"
)

// JWTIssuer implements HS256 signing of access/refresh pairs. The two token
// kinds use distinct secrets so an access token never verifies as a refresh
// token or vice versa.
type JWTIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewJWTIssuer builds an issuer from the two configured secrets.
func NewJWTIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) (*JWTIssuer, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, errors.New("access and refresh token secrets are required")
	}
	if accessSecret == refreshSecret {
		return nil, errors.New("access and refresh token secrets must differ")
	}
	return &JWTIssuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

func (s *JWTIssuer) IssuePair(userID uuid.UUID, now time.Time) (ports.TokenPair, error) {
	access, err := s.sign(userID, now, s.accessTTL, s.accessSecret)
	if err != nil {
		return ports.TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.sign(userID, now, s.refreshTTL, s.refreshSecret)
	if err != nil {
		return ports.TokenPair{}, fmt.Errorf("sign refresh token: %w", err)
	}
	return ports.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *JWTIssuer) VerifyAccess(token string) (ports.SessionClaims, error) {
	return s.verify(token, s.accessSecret)
}

func (s *JWTIssuer) VerifyRefresh(token string) (ports.SessionClaims, error) {
	return s.verify(token, s.refreshSecret)
}

func (s *JWTIssuer) sign(userID uuid.UUID, now time.Time, ttl time.Duration, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Audience:  jwt.ClaimStrings{tokenAudience},
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	return token.SignedString(secret)
}

func (s *JWTIssuer) verify(raw string, secret []byte) (ports.SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
		}
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return ports.SessionClaims{}, err
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		return ports.SessionClaims{}, errors.New("invalid token claims")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ports.SessionClaims{}, fmt.Errorf("parse subject: %w", err)
	}
	return ports.SessionClaims{
		UserID:    userID,
		IssuedAt:  claims.IssuedAt.Time.UTC(),
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}, nil
}
