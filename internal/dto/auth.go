package dto

import (
	"time"

	"github.com/google/uuid"
)

// DevTokenRequest asks for an access token for an existing profile
type DevTokenRequest struct {
	ProfileID string `json:"profile_id" validate:"required,uuid"`
}

// TokenResponse contains a signed access token
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// ProfileResponse represents the authenticated user's profile
type ProfileResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
