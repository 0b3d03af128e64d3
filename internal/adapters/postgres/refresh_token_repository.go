package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nestfeed/server/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type refreshTokenRepository struct {
	db *gorm.DB
}

// Upsert overwrites the identity's refresh record in one statement. This is the
// rotation point: concurrent rotations for the same identity are last-writer-wins.
func (r *refreshTokenRepository) Upsert(ctx context.Context, userID uuid.UUID, token string, expiresAt, now time.Time) error {
	rec := refreshTokenModel{
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"token":      rec.Token,
			"expires_at": rec.ExpiresAt,
			"updated_at": rec.UpdatedAt,
		}),
	}).Create(&rec).Error
}

func (r *refreshTokenRepository) GetByUser(ctx context.Context, userID uuid.UUID) (domain.RefreshRecord, error) {
	var rec refreshTokenModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RefreshRecord{}, domain.ErrNotFound
		}
		return domain.RefreshRecord{}, err
	}
	return toDomainRefreshRecord(rec), nil
}

// DeleteByToken removes the record holding the given token value. Absence is not
// an error so logout stays idempotent.
func (r *refreshTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).
		Where("token = ?", token).
		Delete(&refreshTokenModel{}).Error
}
