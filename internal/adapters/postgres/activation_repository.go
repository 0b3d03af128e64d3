package postgres

import (
	"context"
	"errors"

	"github.com/nestfeed/server/internal/domain"
	"gorm.io/gorm"
)

type activationRepository struct {
	db *gorm.DB
}

func (r *activationRepository) Create(ctx context.Context, record domain.ActivationRecord) error {
	rec := activationTokenModel{
		Token:     record.Token,
		UserID:    record.UserID,
		CreatedAt: record.CreatedAt,
		ExpiresAt: record.ExpiresAt,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

func (r *activationRepository) GetByToken(ctx context.Context, token string) (domain.ActivationRecord, error) {
	var rec activationTokenModel
	if err := r.db.WithContext(ctx).Where("token = ?", token).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ActivationRecord{}, domain.ErrNotFound
		}
		return domain.ActivationRecord{}, err
	}
	return toDomainActivation(rec), nil
}

func (r *activationRepository) Delete(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).
		Where("token = ?", token).
		Delete(&activationTokenModel{}).Error
}
