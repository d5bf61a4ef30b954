// Package auth verifies the bearer tokens issued by the external identity
// provider and resolves them to user identities. It never manages users or
// passwords; authentication itself happens outside this service.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenService defines operations on the JWT bearer tokens that accompany
// API requests.
type TokenService interface {
	// ValidateToken validates the provided token string and extracts the claims.
	// Returns the claims containing user information if the token is valid,
	// or an error if validation fails (expired, invalid signature, etc.).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// GenerateToken creates a signed token containing the user's information.
	// The request path never calls this; it exists for the local token
	// utility and for tests that need a valid token.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)
}

// Claims represents the custom claims structure for the JWT tokens.
// It extends standard JWT registered claims with application-specific fields.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID `json:"uid,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
