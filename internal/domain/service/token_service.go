package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims for issued login tokens.
type Claims struct {
	UserID uuid.UUID `json:"-"`
	Email  string    `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and validates signed login tokens.
type TokenService interface {
	// GenerateToken signs a token for the given user.
	GenerateToken(userID uuid.UUID, email string) (string, error)

	// ValidateToken parses tokenString and returns its claims if the signature and expiry hold.
	ValidateToken(tokenString string) (*Claims, error)

	// TokenDuration returns the configured lifetime of issued tokens.
	TokenDuration() time.Duration
}
