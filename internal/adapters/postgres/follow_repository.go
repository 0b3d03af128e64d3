package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type followRepository struct {
	db *gorm.DB
}

func (r *followRepository) Counts(ctx context.Context, userID uuid.UUID) (int64, int64, error) {
	var followers int64
	if err := r.db.WithContext(ctx).
		Model(&followModel{}).
		Where("followee_id = ?", userID).
		Count(&followers).Error; err != nil {
		return 0, 0, err
	}

	var following int64
	if err := r.db.WithContext(ctx).
		Model(&followModel{}).
		Where("follower_id = ?", userID).
		Count(&following).Error; err != nil {
		return 0, 0, err
	}
	return followers, following, nil
}
