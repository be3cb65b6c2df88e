package valueobject

import (
	"github.com/agency-ops/backend/internal/domain/entity"
)

// HealthSeverity classifies overall bookkeeping integrity.
type HealthSeverity string

const (
	// SeverityGreen means the books are complete.
	SeverityGreen HealthSeverity = "green"
	// SeverityOrange means a non-blocking data-quality issue exists
	// (missing invoice numbers).
	SeverityOrange HealthSeverity = "orange"
	// SeverityRed means the VAT position cannot be trusted: documents are
	// missing dates or totals, or are still awaiting review.
	SeverityRed HealthSeverity = "red"
)

// DataHealth is the derived bookkeeping-integrity report over the full
// approved and pending document sets.
type DataHealth struct {
	MissingInvoiceNumber int
	MissingInvoiceDate   int
	MissingTotal         int
	PendingReview        int
	Severity             HealthSeverity
}

// AuditDataHealth scans the approved set for missing mandatory fields and
// combines the result with the pending-review count into a severity tier.
// Missing dates or totals, or any unreviewed document, block confidence in
// the VAT number (red); a missing invoice number alone is advisory (orange).
func AuditDataHealth(approved []*entity.FinancialDocument, pendingCount int) DataHealth {
	health := DataHealth{PendingReview: pendingCount}

	for _, doc := range approved {
		if doc.InvoiceNumber == "" {
			health.MissingInvoiceNumber++
		}
		if doc.InvoiceDate == nil {
			health.MissingInvoiceDate++
		}
		if doc.AmountInclVAT == nil {
			health.MissingTotal++
		}
	}

	switch {
	case health.MissingInvoiceDate+health.MissingTotal > 0 || health.PendingReview > 0:
		health.Severity = SeverityRed
	case health.MissingInvoiceNumber > 0:
		health.Severity = SeverityOrange
	default:
		health.Severity = SeverityGreen
	}

	return health
}
