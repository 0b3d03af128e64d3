package application

import (
	"time"

	"github.com/nestfeed/server/internal/domain"
)

type Config struct {
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	ActivationTTL   time.Duration
	ResetTokenTTL   time.Duration
	ResetCooldown   time.Duration

	ThrottleWindow    time.Duration
	ThrottleThreshold int
	// ThrottleBackoffStep is multiplied by the attempt count to produce the
	// deliberate delay served to locked-out callers.
	ThrottleBackoffStep time.Duration

	// ClientURL is the public frontend base used in activation and reset links.
	ClientURL string
}

type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Name            string `json:"name"`
	Surname         string `json:"surname"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

type LoginRequest struct {
	// Identifier is either an email address or a username.
	Identifier string `json:"login"`
	Password   string `json:"password"`
	// Origin is the caller's network address, used as the throttle scope.
	Origin string `json:"-"`
}

type ResetPasswordRequest struct {
	Token           string `json:"-"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// UserProfile is the identity projection returned by auth responses.
// Follower and following are aggregate counts, not id lists.
type UserProfile struct {
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	Name           string  `json:"name,omitempty"`
	Surname        string  `json:"surname,omitempty"`
	IsActive       bool    `json:"isActive"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
	Followers      int64   `json:"followers"`
	Following      int64   `json:"following"`
}

// AuthResult carries a projection plus a freshly issued token pair. The refresh
// token travels to the client only via the cookie the boundary layer sets.
type AuthResult struct {
	User         UserProfile `json:"user"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"-"`
}

func toUserProfile(identity domain.Identity, followers, following int64) UserProfile {
	return UserProfile{
		Username:       identity.Username,
		Email:          identity.Email,
		Name:           identity.Name,
		Surname:        identity.Surname,
		IsActive:       identity.IsActive,
		ProfilePicture: identity.ProfilePicture,
		Followers:      followers,
		Following:      following,
	}
}
