package client

import (
	"context"

	"github.com/agency-ops/backend/internal/application/adapter"
	"github.com/agency-ops/backend/internal/domain/entity"
)

// ListClientsOutput represents the output for listing clients.
type ListClientsOutput struct {
	Clients []*entity.Client
}

// ListClientsUseCase handles listing all clients.
type ListClientsUseCase struct {
	clientRepo adapter.ClientRepository
}

// NewListClientsUseCase creates a new ListClientsUseCase instance.
func NewListClientsUseCase(clientRepo adapter.ClientRepository) *ListClientsUseCase {
	return &ListClientsUseCase{
		clientRepo: clientRepo,
	}
}

// Execute lists all clients ordered by name.
func (uc *ListClientsUseCase) Execute(ctx context.Context) (*ListClientsOutput, error) {
	clients, err := uc.clientRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return &ListClientsOutput{Clients: clients}, nil
}
