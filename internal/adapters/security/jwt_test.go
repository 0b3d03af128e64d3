package security

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNewJWTIssuerRejectsBadSecrets(t *testing.T) {
	t.Parallel()

	_, err := NewJWTIssuer("", "refresh-secret", time.Hour, time.Hour)
	require.Error(t, err)

	_, err = NewJWTIssuer("same-secret", "same-secret", time.Hour, time.Hour)
	require.Error(t, err)
}

func TestIssuePairRoundTrip(t *testing.T) {
	t.Parallel()

	issuer, err := NewJWTIssuer("access-secret", "refresh-secret", time.Hour, 7*24*time.Hour)
	require.NoError(t, err)

	userID := uuid.New()
	now := time.Now().UTC().Truncate(time.Second)
	pair, err := issuer.IssuePair(userID, now)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	accessClaims, err := issuer.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, userID, accessClaims.UserID)
	require.True(t, accessClaims.ExpiresAt.Equal(now.Add(time.Hour)))

	refreshClaims, err := issuer.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, userID, refreshClaims.UserID)
	require.True(t, refreshClaims.ExpiresAt.Equal(now.Add(7*24*time.Hour)))
}

func TestTokenKindsDoNotCrossVerify(t *testing.T) {
	t.Parallel()

	issuer, err := NewJWTIssuer("access-secret", "refresh-secret", time.Hour, time.Hour)
	require.NoError(t, err)

	pair, err := issuer.IssuePair(uuid.New(), time.Now().UTC())
	require.NoError(t, err)

	_, err = issuer.VerifyAccess(pair.RefreshToken)
	require.Error(t, err)
	_, err = issuer.VerifyRefresh(pair.AccessToken)
	require.Error(t, err)
}

func TestVerifyRejectsExpiredAndGarbage(t *testing.T) {
	t.Parallel()

	issuer, err := NewJWTIssuer("access-secret", "refresh-secret", time.Hour, time.Hour)
	require.NoError(t, err)

	stale, err := issuer.IssuePair(uuid.New(), time.Now().UTC().Add(-2*time.Hour))
	require.NoError(t, err)
	_, err = issuer.VerifyAccess(stale.AccessToken)
	require.Error(t, err)

	_, err = issuer.VerifyAccess("not.a.jwt")
	require.Error(t, err)
	_, err = issuer.VerifyRefresh("")
	require.Error(t, err)
}

func TestVerifyRejectsForeignSigner(t *testing.T) {
	t.Parallel()

	issuer, err := NewJWTIssuer("access-secret", "refresh-secret", time.Hour, time.Hour)
	require.NoError(t, err)
	other, err := NewJWTIssuer("other-access", "other-refresh", time.Hour, time.Hour)
	require.NoError(t, err)

	pair, err := other.IssuePair(uuid.New(), time.Now().UTC())
	require.NoError(t, err)

	_, err = issuer.VerifyAccess(pair.AccessToken)
	require.Error(t, err)
	_, err = issuer.VerifyRefresh(pair.RefreshToken)
	require.Error(t, err)
}
