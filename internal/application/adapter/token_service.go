// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenClaims represents the validated claims of an access token issued by
// the external identity service.
type TokenClaims struct {
	UserID    uuid.UUID
	CompanyID uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// TokenService defines the interface for access token validation. Token
// issuance belongs to the identity service; this service only verifies.
type TokenService interface {
	// ValidateAccessToken validates an access token and returns its claims.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)
}
