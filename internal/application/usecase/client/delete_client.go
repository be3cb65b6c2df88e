package client

import (
	"context"

	"github.com/google/uuid"

	"github.com/agency-ops/backend/internal/application/adapter"
)

// DeleteClientInput represents the input for deleting a client.
type DeleteClientInput struct {
	ClientID uuid.UUID
}

// DeleteClientUseCase handles client deletion.
type DeleteClientUseCase struct {
	clientRepo adapter.ClientRepository
}

// NewDeleteClientUseCase creates a new DeleteClientUseCase instance.
func NewDeleteClientUseCase(clientRepo adapter.ClientRepository) *DeleteClientUseCase {
	return &DeleteClientUseCase{
		clientRepo: clientRepo,
	}
}

// Execute deletes the client.
func (uc *DeleteClientUseCase) Execute(ctx context.Context, input DeleteClientInput) error {
	if _, err := uc.clientRepo.FindByID(ctx, input.ClientID); err != nil {
		return err
	}
	return uc.clientRepo.Delete(ctx, input.ClientID)
}
