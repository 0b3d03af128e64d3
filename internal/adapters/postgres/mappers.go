package postgres

import (
	"errors"

	"github.com/nestfeed/server/internal/domain"
	"gorm.io/gorm"
)

func toDomainIdentity(row userModel) domain.Identity {
	return domain.Identity{
		UserID:         row.UserID,
		Username:       row.Username,
		Email:          row.Email,
		Name:           row.Name,
		Surname:        row.Surname,
		PasswordHash:   row.PasswordHash,
		IsActive:       row.IsActive,
		ProfilePicture: row.ProfilePicture,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}

func toDomainActivation(row activationTokenModel) domain.ActivationRecord {
	return domain.ActivationRecord{
		Token:     row.Token,
		UserID:    row.UserID,
		CreatedAt: row.CreatedAt,
		ExpiresAt: row.ExpiresAt,
	}
}

func toDomainRefreshRecord(row refreshTokenModel) domain.RefreshRecord {
	return domain.RefreshRecord{
		UserID:    row.UserID,
		Token:     row.Token,
		ExpiresAt: row.ExpiresAt,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
