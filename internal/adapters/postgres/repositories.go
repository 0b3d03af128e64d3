package postgres

import (
	"github.com/nestfeed/server/internal/ports"
	"gorm.io/gorm"
)

type Repositories struct {
	Identities    ports.IdentityRepository
	Activations   ports.ActivationRepository
	RefreshTokens ports.RefreshTokenRepository
	Follows       ports.FollowRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Identities:    &identityRepository{db: db},
		Activations:   &activationRepository{db: db},
		RefreshTokens: &refreshTokenRepository{db: db},
		Follows:       &followRepository{db: db},
	}
}
