package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nestfeed/server/internal/domain"
)

// Activate redeems an activation token and flips the bound identity to active.
// Tokens are single-use: a redeemed token is deleted and a second redemption
// reports ErrNotFound, same as an expired or unknown token.
func (s *Service) Activate(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.ErrNotFound
	}

	record, err := s.activations.GetByToken(ctx, token)
	if err != nil {
		return err
	}
	if s.nowFn().After(record.ExpiresAt) {
		return domain.ErrNotFound
	}

	if err := s.identities.SetActive(ctx, record.UserID, s.nowFn()); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// A token whose owner disappeared is a data integrity fault,
			// not a client mistake.
			return fmt.Errorf("%w: activation token bound to missing user", domain.ErrInternal)
		}
		return err
	}

	if err := s.activations.Delete(ctx, token); err != nil {
		s.logger.WarnContext(ctx, "activation token cleanup failed",
			"operation", "activate",
			"outcome", "degraded",
			"error", err.Error(),
		)
	}
	return nil
}
