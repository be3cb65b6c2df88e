package client

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/agency-ops/backend/internal/application/adapter"
	domainerror "github.com/agency-ops/backend/internal/domain/error"
)

// InviteClientInput represents the input for inviting a client contact to
// the portal.
type InviteClientInput struct {
	ClientID    uuid.UUID
	InviterName string
}

// InviteClientOutput represents the output for inviting a client.
type InviteClientOutput struct {
	Message string
}

// InviteClientUseCase queues a portal invitation email for a client's
// contact address.
type InviteClientUseCase struct {
	clientRepo   adapter.ClientRepository
	emailService adapter.EmailService
	portalURL    string
}

// NewInviteClientUseCase creates a new InviteClientUseCase instance.
func NewInviteClientUseCase(clientRepo adapter.ClientRepository, emailService adapter.EmailService, portalURL string) *InviteClientUseCase {
	return &InviteClientUseCase{
		clientRepo:   clientRepo,
		emailService: emailService,
		portalURL:    portalURL,
	}
}

// Execute queues the invitation email.
func (uc *InviteClientUseCase) Execute(ctx context.Context, input InviteClientInput) (*InviteClientOutput, error) {
	c, err := uc.clientRepo.FindByID(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}

	if c.ContactEmail == "" {
		return nil, domainerror.ErrClientNoContactEmail
	}

	err = uc.emailService.QueueClientInvitationEmail(ctx, adapter.QueueClientInvitationInput{
		ClientName:   c.Name,
		ContactEmail: c.ContactEmail,
		InviterName:  input.InviterName,
		PortalURL:    uc.portalURL,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Client invitation queued", "client_id", c.ID, "email", c.ContactEmail)
	return &InviteClientOutput{Message: "Invitation sent"}, nil
}
