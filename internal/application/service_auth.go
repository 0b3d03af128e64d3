package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nestfeed/server/internal/domain"
	"github.com/nestfeed/server/internal/ports"
)

// Register creates an inactive identity, binds a fresh activation token to it,
// and opens a session for the new account. The activation mail is fire-and-forget.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (AuthResult, error) {
	email, err := domain.NormalizeEmail(req.Email)
	if err != nil {
		return AuthResult{}, err
	}
	username := strings.TrimSpace(req.Username)
	if err := domain.ValidateUsername(username); err != nil {
		return AuthResult{}, err
	}
	if err := domain.ValidatePassword(req.Password); err != nil {
		return AuthResult{}, err
	}

	// Pre-checks give friendly messages; the store's unique constraints remain
	// the authoritative guard when two registrations race.
	if _, err := s.identities.GetByEmail(ctx, email); err == nil {
		return AuthResult{}, fmt.Errorf("%w: Email is already taken", domain.ErrInvalidInput)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return AuthResult{}, err
	}
	if _, err := s.identities.GetByUsername(ctx, username); err == nil {
		return AuthResult{}, fmt.Errorf("%w: Username is already taken", domain.ErrInvalidInput)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return AuthResult{}, err
	}
	if req.Password != req.PasswordConfirm {
		return AuthResult{}, fmt.Errorf("%w: Passwords do not match", domain.ErrInvalidInput)
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.nowFn()
	identity, err := s.identities.Create(ctx, ports.CreateIdentityParams{
		Username:     username,
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		Surname:      strings.TrimSpace(req.Surname),
		PasswordHash: passwordHash,
		CreatedAtUTC: now,
	})
	if err != nil {
		return AuthResult{}, err
	}

	activationToken := uuid.NewString()
	if err := s.activations.Create(ctx, domain.ActivationRecord{
		Token:     activationToken,
		UserID:    identity.UserID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.ActivationTTL),
	}); err != nil {
		return AuthResult{}, err
	}

	pair, err := s.issueSession(ctx, identity.UserID)
	if err != nil {
		return AuthResult{}, err
	}

	link := s.cfg.ClientURL + "/activate/" + activationToken
	s.dispatchMail(ctx, "activation", identity.Email, func(mailCtx context.Context) error {
		return s.mailer.SendActivationMail(mailCtx, identity.Email, link)
	})

	return AuthResult{
		User:         toUserProfile(identity, 0, 0),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Login verifies credentials under the brute-force throttle. The throttle keys
// on (identifier, origin); state machine: clear -> counting -> locked at the
// threshold, reset by success or TTL expiry.
func (s *Service) Login(ctx context.Context, req LoginRequest) (AuthResult, error) {
	identifier := strings.TrimSpace(req.Identifier)
	if identifier == "" || req.Password == "" {
		return AuthResult{}, fmt.Errorf("%w: login and password are required", domain.ErrInvalidInput)
	}

	attempts, err := s.throttle.Attempts(ctx, identifier, req.Origin)
	if err != nil {
		return AuthResult{}, fmt.Errorf("read throttle counter: %w", err)
	}
	if attempts >= s.cfg.ThrottleThreshold {
		s.backoff(ctx, attempts)
		return AuthResult{}, domain.ErrRateLimited
	}

	identity, err := s.lookupByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Indistinguishable from a wrong password on purpose.
			s.recordFailure(ctx, identifier, req.Origin)
			return AuthResult{}, domain.ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	if err := s.hasher.Compare(identity.PasswordHash, req.Password); err != nil {
		s.recordFailure(ctx, identifier, req.Origin)
		return AuthResult{}, domain.ErrInvalidCredentials
	}

	if err := s.throttle.Clear(ctx, identifier, req.Origin); err != nil {
		s.logger.WarnContext(ctx, "throttle clear failed",
			"operation", "login",
			"outcome", "degraded",
			"error", err.Error(),
		)
	}

	pair, err := s.issueSession(ctx, identity.UserID)
	if err != nil {
		return AuthResult{}, err
	}

	profile, err := s.projectIdentity(ctx, identity)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{
		User:         profile,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Refresh rotates the session bound to the presented refresh token. A token
// superseded by a later rotation no longer matches the stored record and
// fails here with ErrUnauthorized.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (AuthResult, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return AuthResult{}, domain.ErrUnauthorized
	}
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return AuthResult{}, domain.ErrUnauthorized
	}

	record, err := s.refreshTokens.GetByUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return AuthResult{}, domain.ErrUnauthorized
		}
		return AuthResult{}, err
	}
	if record.Token != refreshToken {
		return AuthResult{}, domain.ErrUnauthorized
	}

	identity, err := s.identities.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return AuthResult{}, domain.ErrUnauthorized
		}
		return AuthResult{}, err
	}

	pair, err := s.issueSession(ctx, identity.UserID)
	if err != nil {
		return AuthResult{}, err
	}

	profile, err := s.projectIdentity(ctx, identity)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{
		User:         profile,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Logout revokes the session holding the supplied refresh token. Absence is
// not an error; repeated logouts are no-ops.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return nil
	}
	return s.refreshTokens.DeleteByToken(ctx, refreshToken)
}

func (s *Service) lookupByIdentifier(ctx context.Context, identifier string) (domain.Identity, error) {
	if domain.IsEmail(identifier) {
		return s.identities.GetByEmail(ctx, strings.ToLower(identifier))
	}
	return s.identities.GetByUsername(ctx, identifier)
}

func (s *Service) recordFailure(ctx context.Context, identifier, origin string) {
	if _, err := s.throttle.RecordFailure(ctx, identifier, origin, s.cfg.ThrottleWindow); err != nil {
		s.logger.WarnContext(ctx, "throttle increment failed",
			"operation", "login",
			"outcome", "degraded",
			"error", err.Error(),
		)
	}
}

// backoff serves a deliberate delay proportional to the attempt count before
// the throttle rejection, to slow clients that ignore the 429.
func (s *Service) backoff(ctx context.Context, attempts int) {
	step := s.cfg.ThrottleBackoffStep
	if step <= 0 {
		return
	}
	timer := time.NewTimer(time.Duration(attempts) * step)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
