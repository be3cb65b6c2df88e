// Package client contains client-management use cases.
package client

import (
	"context"
	"strings"

	"github.com/agency-ops/backend/internal/application/adapter"
	"github.com/agency-ops/backend/internal/domain/entity"
	domainerror "github.com/agency-ops/backend/internal/domain/error"
)

// CreateClientInput represents the input for creating a client.
type CreateClientInput struct {
	Name         string
	ContactEmail string
	KvKNumber    string
	VATNumber    string
	Notes        string
}

// CreateClientOutput represents the output for creating a client.
type CreateClientOutput struct {
	Client *entity.Client
}

// CreateClientUseCase handles client creation.
type CreateClientUseCase struct {
	clientRepo adapter.ClientRepository
}

// NewCreateClientUseCase creates a new CreateClientUseCase instance.
func NewCreateClientUseCase(clientRepo adapter.ClientRepository) *CreateClientUseCase {
	return &CreateClientUseCase{
		clientRepo: clientRepo,
	}
}

// Execute creates the client. KvK and VAT numbers are stored as opaque
// strings; no registry validation happens here.
func (uc *CreateClientUseCase) Execute(ctx context.Context, input CreateClientInput) (*CreateClientOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.ErrClientNameRequired
	}

	c := entity.NewClient(name, input.ContactEmail, input.KvKNumber, input.VATNumber, input.Notes)
	if err := uc.clientRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	return &CreateClientOutput{Client: c}, nil
}
