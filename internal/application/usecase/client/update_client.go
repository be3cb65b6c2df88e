package client

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agency-ops/backend/internal/application/adapter"
	"github.com/agency-ops/backend/internal/domain/entity"
	domainerror "github.com/agency-ops/backend/internal/domain/error"
)

// UpdateClientInput represents the input for updating a client. Nil fields
// are left unchanged.
type UpdateClientInput struct {
	ClientID     uuid.UUID
	Name         *string
	ContactEmail *string
	KvKNumber    *string
	VATNumber    *string
	Notes        *string
}

// UpdateClientOutput represents the output for updating a client.
type UpdateClientOutput struct {
	Client *entity.Client
}

// UpdateClientUseCase handles client updates.
type UpdateClientUseCase struct {
	clientRepo adapter.ClientRepository
}

// NewUpdateClientUseCase creates a new UpdateClientUseCase instance.
func NewUpdateClientUseCase(clientRepo adapter.ClientRepository) *UpdateClientUseCase {
	return &UpdateClientUseCase{
		clientRepo: clientRepo,
	}
}

// Execute applies the partial update.
func (uc *UpdateClientUseCase) Execute(ctx context.Context, input UpdateClientInput) (*UpdateClientOutput, error) {
	c, err := uc.clientRepo.FindByID(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerror.ErrClientNameRequired
		}
		c.Name = name
	}
	if input.ContactEmail != nil {
		c.ContactEmail = *input.ContactEmail
	}
	if input.KvKNumber != nil {
		c.KvKNumber = *input.KvKNumber
	}
	if input.VATNumber != nil {
		c.VATNumber = *input.VATNumber
	}
	if input.Notes != nil {
		c.Notes = *input.Notes
	}
	c.UpdatedAt = time.Now().UTC()

	if err := uc.clientRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	return &UpdateClientOutput{Client: c}, nil
}
