// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agency-ops/backend/internal/domain/entity"
)

// TokenPair is an access token plus the refresh token that can rotate it.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenClaims are the verified claims of a JWT. The role is embedded so the
// admin gate can be enforced without a user lookup.
type TokenClaims struct {
	UserID    uuid.UUID
	Email     string
	Role      entity.UserRole
	ExpiresAt time.Time
}

// TokenService issues and validates the JWT pairs used for API access.
type TokenService interface {
	// GenerateTokenPair issues a fresh pair for the user and stores the
	// refresh token so it can be revoked.
	GenerateTokenPair(ctx context.Context, user *entity.User) (*TokenPair, error)

	// ValidateAccessToken verifies an access token and returns its claims.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)

	// ValidateRefreshToken verifies a refresh token and returns its claims.
	ValidateRefreshToken(ctx context.Context, token string) (*TokenClaims, error)

	// InvalidateRefreshToken revokes a refresh token.
	InvalidateRefreshToken(ctx context.Context, token string) error

	// IsRefreshTokenValid reports whether the refresh token is still usable.
	IsRefreshTokenValid(ctx context.Context, token string) (bool, error)
}

// PasswordResetToken is a single-use emailed reset token.
type PasswordResetToken struct {
	Token     string
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// PasswordResetTokenService issues and consumes password reset tokens.
type PasswordResetTokenService interface {
	GenerateResetToken(ctx context.Context, userID uuid.UUID, email string) (*PasswordResetToken, error)

	// ValidateResetToken checks a token is known, unused, and unexpired.
	ValidateResetToken(ctx context.Context, token string) (*PasswordResetToken, error)

	// InvalidateResetToken marks a token as consumed.
	InvalidateResetToken(ctx context.Context, token string) error
}
