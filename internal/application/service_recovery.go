package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/nestfeed/server/internal/domain"
)

// ForgotPassword starts a password recovery flow. The response is identical
// whether or not the address is registered, so the endpoint cannot be used to
// probe for accounts. A per-address cooldown suppresses repeated mails.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	email, err := domain.NormalizeEmail(email)
	if err != nil {
		return err
	}

	cooling, err := s.resets.InCooldown(ctx, email)
	if err != nil {
		return fmt.Errorf("check reset cooldown: %w", err)
	}
	if cooling {
		return nil
	}

	identity, err := s.identities.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}

	rawToken := randomHex(32)
	if err := s.resets.SaveToken(ctx, hashToken(rawToken), identity.UserID, s.cfg.ResetTokenTTL); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}
	if err := s.resets.MarkCooldown(ctx, email, s.cfg.ResetCooldown); err != nil {
		s.logger.WarnContext(ctx, "reset cooldown write failed",
			"operation", "forgot_password",
			"outcome", "degraded",
			"error", err.Error(),
		)
	}

	link := s.cfg.ClientURL + "/reset-password/" + rawToken
	s.dispatchMail(ctx, "password_reset", identity.Email, func(mailCtx context.Context) error {
		return s.mailer.SendPasswordResetMail(mailCtx, identity.Email, link)
	})
	return nil
}

// ResetPassword redeems an ephemeral reset token and replaces the account
// password. Only the SHA-256 of the token is ever stored, so possession of
// the store contents does not let an attacker complete a reset. Tokens are
// single-use and deleted on redemption.
func (s *Service) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	if err := domain.ValidatePassword(req.Password); err != nil {
		return err
	}
	if req.Password != req.PasswordConfirm {
		return fmt.Errorf("%w: Passwords do not match", domain.ErrInvalidInput)
	}

	tokenHash := hashToken(req.Token)
	userID, found, err := s.resets.LookupToken(ctx, tokenHash)
	if err != nil {
		return fmt.Errorf("lookup reset token: %w", err)
	}
	if !found {
		return domain.ErrNotFound
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.identities.UpdatePassword(ctx, userID, passwordHash, s.nowFn()); err != nil {
		return err
	}

	if err := s.resets.DeleteToken(ctx, tokenHash); err != nil {
		s.logger.WarnContext(ctx, "reset token cleanup failed",
			"operation", "reset_password",
			"outcome", "degraded",
			"error", err.Error(),
		)
	}
	return nil
}
