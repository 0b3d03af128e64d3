package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nestfeed/server/internal/domain"
	"github.com/nestfeed/server/internal/ports"
	"gorm.io/gorm"
)

type identityRepository struct {
	db *gorm.DB
}

func (r *identityRepository) Create(ctx context.Context, params ports.CreateIdentityParams) (domain.Identity, error) {
	rec := userModel{
		Username:     params.Username,
		Email:        params.Email,
		Name:         params.Name,
		Surname:      params.Surname,
		PasswordHash: params.PasswordHash,
		IsActive:     false,
		CreatedAt:    params.CreatedAtUTC,
		UpdatedAt:    params.CreatedAtUTC,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.Identity{}, domain.ErrConflict
		}
		return domain.Identity{}, err
	}
	return toDomainIdentity(rec), nil
}

func (r *identityRepository) GetByEmail(ctx context.Context, email string) (domain.Identity, error) {
	return r.getOne(ctx, "email = ?", email)
}

func (r *identityRepository) GetByUsername(ctx context.Context, username string) (domain.Identity, error) {
	return r.getOne(ctx, "username = ?", username)
}

func (r *identityRepository) GetByID(ctx context.Context, userID uuid.UUID) (domain.Identity, error) {
	return r.getOne(ctx, "user_id = ?", userID)
}

func (r *identityRepository) SetActive(ctx context.Context, userID uuid.UUID, activatedAt time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"is_active":  true,
			"updated_at": activatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *identityRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string, updatedAt time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"password_hash": passwordHash,
			"updated_at":    updatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *identityRepository) getOne(ctx context.Context, query string, arg any) (domain.Identity, error) {
	var rec userModel
	if err := r.db.WithContext(ctx).Where(query, arg).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Identity{}, domain.ErrNotFound
		}
		return domain.Identity{}, err
	}
	return toDomainIdentity(rec), nil
}
