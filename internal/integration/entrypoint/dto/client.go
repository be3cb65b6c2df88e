// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/agency-ops/backend/internal/domain/entity"
)

// CreateClientRequest represents the request body for creating a client.
type CreateClientRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=255"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
	KvKNumber    string `json:"kvk_number"`
	VATNumber    string `json:"vat_number"`
	Notes        string `json:"notes"`
}

// UpdateClientRequest represents the request body for updating a client.
// Omitted fields are left unchanged.
type UpdateClientRequest struct {
	Name         *string `json:"name"`
	ContactEmail *string `json:"contact_email"`
	KvKNumber    *string `json:"kvk_number"`
	VATNumber    *string `json:"vat_number"`
	Notes        *string `json:"notes"`
}

// ClientResponse represents a client in API responses.
type ClientResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ContactEmail string    `json:"contact_email"`
	KvKNumber    string    `json:"kvk_number"`
	VATNumber    string    `json:"vat_number"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ListClientsResponse represents the response for listing clients.
type ListClientsResponse struct {
	Clients []ClientResponse `json:"clients"`
}

// ToClientResponse converts a domain Client entity to a ClientResponse DTO.
func ToClientResponse(client *entity.Client) ClientResponse {
	return ClientResponse{
		ID:           client.ID.String(),
		Name:         client.Name,
		ContactEmail: client.ContactEmail,
		KvKNumber:    client.KvKNumber,
		VATNumber:    client.VATNumber,
		Notes:        client.Notes,
		CreatedAt:    client.CreatedAt,
		UpdatedAt:    client.UpdatedAt,
	}
}

// ToClientResponses converts a slice of clients.
func ToClientResponses(clients []*entity.Client) []ClientResponse {
	responses := make([]ClientResponse, len(clients))
	for i, c := range clients {
		responses[i] = ToClientResponse(c)
	}
	return responses
}
