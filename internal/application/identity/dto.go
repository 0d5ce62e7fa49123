package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/hrportal/backend/internal/domain/identity"
)

// LoginInput contains the input for a login attempt
type LoginInput struct {
	Email    string
	Password string
	IP       string // Client IP for the audit log
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	Profile               ProfileDTO
}

// RefreshTokenInput contains the input for a token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// ChangePasswordInput contains the input for a password change
type ChangePasswordInput struct {
	ProfileID   uuid.UUID
	OldPassword string
	NewPassword string
}

// CreateProfileInput contains the input for creating a profile
type CreateProfileInput struct {
	Surname        string
	GivenName      string
	Email          string
	Password       string
	Role           identity.Role
	VehicleProfile identity.VehicleProfile
}

// UpdateProfileInput contains the input for updating a profile.
// Nil fields are left untouched.
type UpdateProfileInput struct {
	ID             uuid.UUID
	Surname        *string
	GivenName      *string
	Email          *string
	Role           *identity.Role
	VehicleProfile *identity.VehicleProfile
}

// ProfileDTO represents profile data returned to callers
type ProfileDTO struct {
	ID             uuid.UUID  `json:"id"`
	Surname        string     `json:"surname"`
	GivenName      string     `json:"given_name"`
	FullName       string     `json:"full_name"`
	Email          string     `json:"email"`
	Role           string     `json:"role"`
	VehicleProfile string     `json:"vehicle_profile"`
	Active         bool       `json:"active"`
	LastLoginAt    *time.Time `json:"last_login_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ProfileListResult represents a paginated profile list
type ProfileListResult struct {
	Profiles   []ProfileDTO `json:"profiles"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalPages int          `json:"total_pages"`
}

func toProfileDTO(p *identity.Profile) *ProfileDTO {
	return &ProfileDTO{
		ID:             p.ID,
		Surname:        p.Surname,
		GivenName:      p.GivenName,
		FullName:       p.FullName(),
		Email:          p.Email,
		Role:           p.Role.String(),
		VehicleProfile: p.VehicleProfile.String(),
		Active:         p.Active,
		LastLoginAt:    p.LastLoginAt,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
