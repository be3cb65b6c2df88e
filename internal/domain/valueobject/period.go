// Package valueobject contains domain value objects and the pure VAT
// aggregation logic computed over them.
package valueobject

import (
	"fmt"
	"time"

	"github.com/agency-ops/backend/internal/domain/entity"
)

// AccountingBasis selects which date field determines a document's period
// membership.
type AccountingBasis string

const (
	// BasisInvoice uses the invoice date.
	BasisInvoice AccountingBasis = "invoice"
	// BasisBooked uses the booked date, falling back to the invoice date
	// when the document was never explicitly booked.
	BasisBooked AccountingBasis = "booked"
)

// IsValid reports whether the basis is one of the known accounting bases.
func (b AccountingBasis) IsValid() bool {
	return b == BasisInvoice || b == BasisBooked
}

// Period is a calendar quarter mapped to an inclusive date range. It is a
// derived concept and is never persisted.
type Period struct {
	Year    int
	Quarter int // 1-4
}

// NewPeriod creates a Period, validating the quarter number.
func NewPeriod(year, quarter int) (Period, error) {
	if quarter < 1 || quarter > 4 {
		return Period{}, fmt.Errorf("invalid quarter %d: must be 1-4", quarter)
	}
	return Period{Year: year, Quarter: quarter}, nil
}

// PeriodOf returns the quarter containing the given date.
func PeriodOf(date time.Time) Period {
	return Period{
		Year:    date.Year(),
		Quarter: (int(date.Month())-1)/3 + 1,
	}
}

// Start returns the first day of the quarter's first month (UTC midnight).
func (p Period) Start() time.Time {
	month := time.Month((p.Quarter-1)*3 + 1)
	return time.Date(p.Year, month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the last day of the quarter's third month (UTC midnight).
func (p Period) End() time.Time {
	// First day of the next quarter, minus one day.
	return p.Next().Start().AddDate(0, 0, -1)
}

// Contains reports whether the date falls within the quarter, inclusive on
// both ends. Only the calendar date matters, not the time of day.
func (p Period) Contains(date time.Time) bool {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(p.Start()) && !d.After(p.End())
}

// Previous returns the preceding quarter, wrapping to Q4 of the previous year.
func (p Period) Previous() Period {
	if p.Quarter == 1 {
		return Period{Year: p.Year - 1, Quarter: 4}
	}
	return Period{Year: p.Year, Quarter: p.Quarter - 1}
}

// Next returns the following quarter, wrapping to Q1 of the next year.
func (p Period) Next() Period {
	if p.Quarter == 4 {
		return Period{Year: p.Year + 1, Quarter: 1}
	}
	return Period{Year: p.Year, Quarter: p.Quarter + 1}
}

// Label returns a human-readable label such as "Q1 2025".
func (p Period) Label() string {
	return fmt.Sprintf("Q%d %d", p.Quarter, p.Year)
}

// BasisDate returns the date that determines the document's period membership
// under the given basis, or nil when the document carries no usable date.
// Documents without a basis date are excluded from any period.
func BasisDate(doc *entity.FinancialDocument, basis AccountingBasis) *time.Time {
	if basis == BasisBooked && doc.BookedDate != nil {
		return doc.BookedDate
	}
	return doc.InvoiceDate
}

// FilterToPeriod returns the documents whose basis date falls within the
// period, preserving input order.
func FilterToPeriod(docs []*entity.FinancialDocument, period Period, basis AccountingBasis) []*entity.FinancialDocument {
	filtered := make([]*entity.FinancialDocument, 0, len(docs))
	for _, doc := range docs {
		date := BasisDate(doc, basis)
		if date == nil {
			continue
		}
		if period.Contains(*date) {
			filtered = append(filtered, doc)
		}
	}
	return filtered
}
