// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocumentKind represents the kind of a bookkeeping document.
type DocumentKind string

const (
	DocumentKindSalesInvoice    DocumentKind = "sales_invoice"
	DocumentKindPurchaseInvoice DocumentKind = "purchase_invoice"
	DocumentKindReceipt         DocumentKind = "receipt"
	DocumentKindBankStatement   DocumentKind = "bank_statement"
)

// IsValid reports whether the kind is one of the known document kinds.
func (k DocumentKind) IsValid() bool {
	switch k {
	case DocumentKindSalesInvoice, DocumentKindPurchaseInvoice, DocumentKindReceipt, DocumentKindBankStatement:
		return true
	}
	return false
}

// DocumentStatus represents the review lifecycle status of a document.
type DocumentStatus string

const (
	DocumentStatusNeedsReview DocumentStatus = "needs_review"
	DocumentStatusApproved    DocumentStatus = "approved"
	DocumentStatusRejected    DocumentStatus = "rejected"
)

// VATLine is one entry of a document's VAT breakdown: the base amount taxed
// at a given rate and the tax charged on it.
type VATLine struct {
	Rate decimal.Decimal `json:"rate"`
	Base decimal.Decimal `json:"base"`
	Tax  decimal.Decimal `json:"tax"`
}

// FinancialDocument represents one ingested bookkeeping artifact.
//
// A document is created in needs_review with most business fields null; the
// review workflow populates the authoritative fields exactly once and moves it
// to approved or rejected. Only approved documents contribute to VAT
// aggregation. The VAT breakdown is written as a single flat-rate line by the
// review workflow, but historical documents may carry multi-rate breakdowns,
// so readers must always iterate the full slice.
type FinancialDocument struct {
	ID            uuid.UUID
	Kind          DocumentKind
	Counterparty  string
	InvoiceNumber string
	InvoiceDate   *time.Time
	DueDate       *time.Time
	BookedDate    *time.Time
	PeriodStart   *time.Time
	PeriodEnd     *time.Time

	AmountExclVAT *decimal.Decimal
	VATTotal      *decimal.Decimal
	AmountInclVAT *decimal.Decimal
	Currency      string

	Status       DocumentStatus
	Tags         []string
	Notes        string
	VATBreakdown []VATLine

	StoragePath string
	FileURL     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewFinancialDocument creates a freshly ingested document in needs_review
// status. All business fields start empty; only the kind and the storage
// reference are known at ingestion time.
func NewFinancialDocument(kind DocumentKind, storagePath, fileURL string) *FinancialDocument {
	now := time.Now().UTC()

	return &FinancialDocument{
		ID:          uuid.New(),
		Kind:        kind,
		Currency:    "EUR",
		Status:      DocumentStatusNeedsReview,
		StoragePath: storagePath,
		FileURL:     fileURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsReviewed reports whether the document has left the review queue.
func (d *FinancialDocument) IsReviewed() bool {
	return d.Status != DocumentStatusNeedsReview
}

// RateList returns the distinct rates of the document's VAT breakdown in
// breakdown order.
func (d *FinancialDocument) RateList() []decimal.Decimal {
	rates := make([]decimal.Decimal, 0, len(d.VATBreakdown))
	for _, line := range d.VATBreakdown {
		rates = append(rates, line.Rate)
	}
	return rates
}
