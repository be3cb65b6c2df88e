package entity

import (
	"time"

	"github.com/google/uuid"
)

// Client represents an agency client (or supplier counter-party) record.
// KvK and VAT numbers are carried as opaque strings and are not validated here.
type Client struct {
	ID           uuid.UUID
	Name         string
	ContactEmail string
	KvKNumber    string
	VATNumber    string
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewClient creates a new Client entity.
func NewClient(name, contactEmail, kvkNumber, vatNumber, notes string) *Client {
	now := time.Now().UTC()

	return &Client{
		ID:           uuid.New(),
		Name:         name,
		ContactEmail: contactEmail,
		KvKNumber:    kvkNumber,
		VATNumber:    vatNumber,
		Notes:        notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
