// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/agency-ops/backend/internal/domain/entity"
)

// ClientModel represents the clients table in the database.
type ClientModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(255);not null;index"`
	ContactEmail string    `gorm:"type:varchar(255)"`
	KvKNumber    string    `gorm:"type:varchar(20)"`
	VATNumber    string    `gorm:"type:varchar(30)"`
	Notes        string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for the ClientModel.
func (ClientModel) TableName() string {
	return "clients"
}

// ToEntity converts a ClientModel to a domain Client entity.
func (m *ClientModel) ToEntity() *entity.Client {
	return &entity.Client{
		ID:           m.ID,
		Name:         m.Name,
		ContactEmail: m.ContactEmail,
		KvKNumber:    m.KvKNumber,
		VATNumber:    m.VATNumber,
		Notes:        m.Notes,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// ClientFromEntity creates a ClientModel from a domain Client entity.
func ClientFromEntity(client *entity.Client) *ClientModel {
	return &ClientModel{
		ID:           client.ID,
		Name:         client.Name,
		ContactEmail: client.ContactEmail,
		KvKNumber:    client.KvKNumber,
		VATNumber:    client.VATNumber,
		Notes:        client.Notes,
		CreatedAt:    client.CreatedAt,
		UpdatedAt:    client.UpdatedAt,
	}
}
