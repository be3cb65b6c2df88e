// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/agency-ops/backend/internal/domain/entity"
)

// UserRepository persists operator accounts. Accounts are provisioned by the
// administrator, so there is no self-service registration path.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error

	// FindByID returns the user or ErrUserNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail returns the user or ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	Update(ctx context.Context, user *entity.User) error
}
