// Package model defines database models for persistence layer.
package model

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/agency-ops/backend/internal/domain/entity"
)

// DocumentModel represents the boekhoud_documents table in the database.
// The VAT breakdown is stored as a JSON array so historical multi-rate
// documents survive round-trips unchanged.
type DocumentModel struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Kind          string           `gorm:"type:varchar(30);not null;index"`
	Counterparty  string           `gorm:"type:varchar(255)"`
	InvoiceNumber string           `gorm:"type:varchar(100)"`
	InvoiceDate   *time.Time       `gorm:"type:date;index"`
	DueDate       *time.Time       `gorm:"type:date"`
	BookedDate    *time.Time       `gorm:"type:date;index"`
	PeriodStart   *time.Time       `gorm:"type:date"`
	PeriodEnd     *time.Time       `gorm:"type:date"`
	AmountExclVAT *decimal.Decimal `gorm:"type:decimal(15,2)"`
	VATTotal      *decimal.Decimal `gorm:"type:decimal(15,2)"`
	AmountInclVAT *decimal.Decimal `gorm:"type:decimal(15,2)"`
	Currency      string           `gorm:"type:varchar(3);not null;default:'EUR'"`
	Status        string           `gorm:"type:varchar(20);not null;index"`
	Tags          pq.StringArray   `gorm:"type:text[]"`
	Notes         string           `gorm:"type:text"`
	VATBreakdown  string           `gorm:"type:jsonb;not null;default:'[]'"`
	StoragePath   string           `gorm:"type:varchar(500);not null"`
	FileURL       string           `gorm:"type:varchar(1000);not null"`
	CreatedAt     time.Time        `gorm:"not null"`
	UpdatedAt     time.Time        `gorm:"not null"`
}

// TableName returns the table name for the DocumentModel.
func (DocumentModel) TableName() string {
	return "boekhoud_documents"
}

// ToEntity converts a DocumentModel to a domain FinancialDocument entity.
func (m *DocumentModel) ToEntity() *entity.FinancialDocument {
	var breakdown []entity.VATLine
	if m.VATBreakdown != "" {
		if err := json.Unmarshal([]byte(m.VATBreakdown), &breakdown); err != nil {
			slog.Warn("Failed to unmarshal VAT breakdown", "error", err, "id", m.ID)
		}
	}

	return &entity.FinancialDocument{
		ID:            m.ID,
		Kind:          entity.DocumentKind(m.Kind),
		Counterparty:  m.Counterparty,
		InvoiceNumber: m.InvoiceNumber,
		InvoiceDate:   m.InvoiceDate,
		DueDate:       m.DueDate,
		BookedDate:    m.BookedDate,
		PeriodStart:   m.PeriodStart,
		PeriodEnd:     m.PeriodEnd,
		AmountExclVAT: m.AmountExclVAT,
		VATTotal:      m.VATTotal,
		AmountInclVAT: m.AmountInclVAT,
		Currency:      m.Currency,
		Status:        entity.DocumentStatus(m.Status),
		Tags:          m.Tags,
		Notes:         m.Notes,
		VATBreakdown:  breakdown,
		StoragePath:   m.StoragePath,
		FileURL:       m.FileURL,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// DocumentFromEntity creates a DocumentModel from a domain FinancialDocument entity.
func DocumentFromEntity(doc *entity.FinancialDocument) *DocumentModel {
	breakdownJSON, err := json.Marshal(doc.VATBreakdown)
	if err != nil {
		slog.Error("Failed to marshal VAT breakdown", "error", err, "document_id", doc.ID)
		breakdownJSON = []byte("[]")
	}
	if doc.VATBreakdown == nil {
		breakdownJSON = []byte("[]")
	}

	return &DocumentModel{
		ID:            doc.ID,
		Kind:          string(doc.Kind),
		Counterparty:  doc.Counterparty,
		InvoiceNumber: doc.InvoiceNumber,
		InvoiceDate:   doc.InvoiceDate,
		DueDate:       doc.DueDate,
		BookedDate:    doc.BookedDate,
		PeriodStart:   doc.PeriodStart,
		PeriodEnd:     doc.PeriodEnd,
		AmountExclVAT: doc.AmountExclVAT,
		VATTotal:      doc.VATTotal,
		AmountInclVAT: doc.AmountInclVAT,
		Currency:      doc.Currency,
		Status:        string(doc.Status),
		Tags:          pq.StringArray(doc.Tags),
		Notes:         doc.Notes,
		VATBreakdown:  string(breakdownJSON),
		StoragePath:   doc.StoragePath,
		FileURL:       doc.FileURL,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
}
