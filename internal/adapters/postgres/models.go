package postgres

import (
	"time"

	"github.com/google/uuid"
)

type userModel struct {
	UserID         uuid.UUID `gorm:"column:user_id;type:uuid;default:gen_random_uuid();primaryKey"`
	Username       string    `gorm:"column:username"`
	Email          string    `gorm:"column:email"`
	Name           string    `gorm:"column:name"`
	Surname        string    `gorm:"column:surname"`
	PasswordHash   string    `gorm:"column:password_hash"`
	IsActive       bool      `gorm:"column:is_active"`
	ProfilePicture *string   `gorm:"column:profile_picture"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

type activationTokenModel struct {
	Token     string    `gorm:"column:token;primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id"`
	CreatedAt time.Time `gorm:"column:created_at"`
	ExpiresAt time.Time `gorm:"column:expires_at"`
}

func (activationTokenModel) TableName() string { return "activation_tokens" }

type refreshTokenModel struct {
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey"`
	Token     string    `gorm:"column:token"`
	ExpiresAt time.Time `gorm:"column:expires_at"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (refreshTokenModel) TableName() string { return "refresh_tokens" }

type followModel struct {
	FollowID   uuid.UUID `gorm:"column:follow_id;type:uuid;default:gen_random_uuid();primaryKey"`
	FollowerID uuid.UUID `gorm:"column:follower_id"`
	FolloweeID uuid.UUID `gorm:"column:followee_id"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (followModel) TableName() string { return "follows" }
