package application

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nestfeed/server/internal/domain"
	"github.com/nestfeed/server/internal/ports"
)

// Service orchestrates the auth use cases. It is the only component other
// layers call directly; everything stateful sits behind the injected ports.
type Service struct {
	cfg           Config
	identities    ports.IdentityRepository
	activations   ports.ActivationRepository
	refreshTokens ports.RefreshTokenRepository
	follows       ports.FollowRepository
	throttle      ports.LoginThrottle
	resets        ports.PasswordResetStore
	hasher        ports.PasswordHasher
	tokens        ports.TokenIssuer
	mailer        ports.Mailer
	logger        *slog.Logger
	nowFn         func() time.Time
}

type Dependencies struct {
	Config        Config
	Identities    ports.IdentityRepository
	Activations   ports.ActivationRepository
	RefreshTokens ports.RefreshTokenRepository
	Follows       ports.FollowRepository
	Throttle      ports.LoginThrottle
	Resets        ports.PasswordResetStore
	Hasher        ports.PasswordHasher
	Tokens        ports.TokenIssuer
	Mailer        ports.Mailer
	Logger        *slog.Logger
	// Now overrides the clock; nil means time.Now in UTC.
	Now func() time.Time
}

func NewService(deps Dependencies) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	nowFn := deps.Now
	if nowFn == nil {
		nowFn = func() time.Time { return time.Now().UTC() }
	}
	return &Service{
		cfg:           deps.Config,
		identities:    deps.Identities,
		activations:   deps.Activations,
		refreshTokens: deps.RefreshTokens,
		follows:       deps.Follows,
		throttle:      deps.Throttle,
		resets:        deps.Resets,
		hasher:        deps.Hasher,
		tokens:        deps.Tokens,
		mailer:        deps.Mailer,
		logger:        logger.With("module", "auth", "layer", "application"),
		nowFn:         nowFn,
	}
}

// CurrentUser resolves an access token into the identity projection.
// Any verification failure collapses to ErrUnauthorized.
func (s *Service) CurrentUser(ctx context.Context, accessToken string) (UserProfile, error) {
	claims, err := s.tokens.VerifyAccess(accessToken)
	if err != nil {
		return UserProfile{}, domain.ErrUnauthorized
	}
	identity, err := s.identities.GetByID(ctx, claims.UserID)
	if err != nil {
		return UserProfile{}, domain.ErrUnauthorized
	}
	return s.projectIdentity(ctx, identity)
}

// issueSession mints a token pair and rotates the identity's refresh record in
// one step. Every successful register/login/refresh funnels through here.
func (s *Service) issueSession(ctx context.Context, userID uuid.UUID) (ports.TokenPair, error) {
	now := s.nowFn()
	pair, err := s.tokens.IssuePair(userID, now)
	if err != nil {
		return ports.TokenPair{}, err
	}
	if err := s.refreshTokens.Upsert(ctx, userID, pair.RefreshToken, now.Add(s.cfg.RefreshTokenTTL), now); err != nil {
		return ports.TokenPair{}, err
	}
	return pair, nil
}

func (s *Service) projectIdentity(ctx context.Context, identity domain.Identity) (UserProfile, error) {
	followers, following, err := s.follows.Counts(ctx, identity.UserID)
	if err != nil {
		return UserProfile{}, err
	}
	return toUserProfile(identity, followers, following), nil
}

// dispatchMail sends asynchronously and absorbs failures. Mail is best-effort:
// the triggering use case succeeds even if the message never leaves.
func (s *Service) dispatchMail(ctx context.Context, kind, to string, send func(context.Context) error) {
	mailCtx := context.WithoutCancel(ctx)
	go func() {
		if err := send(mailCtx); err != nil {
			s.logger.WarnContext(mailCtx, "mail dispatch failed",
				"operation", "dispatch_mail",
				"outcome", "failure",
				"kind", kind,
				"to", to,
				"error", err.Error(),
			)
		}
	}()
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(token)))
	return hex.EncodeToString(sum[:])
}

func randomHex(bytesLen int) string {
	raw := make([]byte, bytesLen)
	_, _ = rand.Read(raw)
	return hex.EncodeToString(raw)
}
