// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ExtractionResult is a best-effort structured guess at a document's fields.
// Every field is optional; the guess is advisory and never overwrites values
// an operator has already entered.
type ExtractionResult struct {
	InvoiceNumber *string
	InvoiceDate   *time.Time
	DueDate       *time.Time
	TotalInclVAT  *decimal.Decimal
	Currency      *string
}

// IsEmpty reports whether the extraction produced no usable fields.
func (r *ExtractionResult) IsEmpty() bool {
	return r == nil || (r.InvoiceNumber == nil && r.InvoiceDate == nil &&
		r.DueDate == nil && r.TotalInclVAT == nil && r.Currency == nil)
}

// ExtractionService defines the interface for best-effort document field
// extraction. Implementations return (nil, nil) when extraction fails or the
// service is unreachable: extraction failure is silent and never surfaces as
// a user-visible error.
type ExtractionService interface {
	// Extract attempts to read structured fields from the document at the
	// given retrievable URL.
	Extract(ctx context.Context, fileURL string) (*ExtractionResult, error)
}
