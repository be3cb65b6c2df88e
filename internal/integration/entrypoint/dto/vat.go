// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/agency-ops/backend/internal/application/usecase/vat"
	"github.com/agency-ops/backend/internal/domain/valueobject"
)

// VATSummaryResponse represents the quarterly VAT position.
type VATSummaryResponse struct {
	Revenue      string `json:"revenue"`
	VATCollected string `json:"vat_collected"`
	Expenses     string `json:"expenses"`
	VATPaid      string `json:"vat_paid"`
	NetDue       string `json:"net_due"`
}

// RateLineResponse represents one per-rate aggregation line.
type RateLineResponse struct {
	Rate         string `json:"rate"`
	Base         string `json:"base"`
	Tax          string `json:"tax"`
	SharePercent string `json:"share_percent"`
}

// PeriodReportResponse represents the aggregated VAT report for a quarter.
type PeriodReportResponse struct {
	Year      int                `json:"year"`
	Quarter   int                `json:"quarter"`
	Label     string             `json:"label"`
	Basis     string             `json:"basis"`
	Summary   VATSummaryResponse `json:"summary"`
	ByRate    []RateLineResponse `json:"by_rate"`
	Documents []DocumentResponse `json:"documents"`
}

// DataHealthResponse represents the bookkeeping integrity report.
type DataHealthResponse struct {
	Severity             string `json:"severity"`
	PendingReview        int    `json:"pending_review"`
	MissingInvoiceNumber int    `json:"missing_invoice_number"`
	MissingInvoiceDate   int    `json:"missing_invoice_date"`
	MissingTotal         int    `json:"missing_total"`
}

// ToPeriodReportResponse converts the period report output.
func ToPeriodReportResponse(output *vat.GetPeriodReportOutput) PeriodReportResponse {
	byRate := make([]RateLineResponse, len(output.ByRate))
	for i, line := range output.ByRate {
		byRate[i] = RateLineResponse{
			Rate:         line.Rate.String(),
			Base:         line.Base.StringFixed(2),
			Tax:          line.Tax.StringFixed(2),
			SharePercent: line.SharePercent.String(),
		}
	}

	return PeriodReportResponse{
		Year:    output.Period.Year,
		Quarter: output.Period.Quarter,
		Label:   output.Period.Label(),
		Basis:   string(output.Basis),
		Summary: VATSummaryResponse{
			Revenue:      output.Summary.Revenue.StringFixed(2),
			VATCollected: output.Summary.VATCollected.StringFixed(2),
			Expenses:     output.Summary.Expenses.StringFixed(2),
			VATPaid:      output.Summary.VATPaid.StringFixed(2),
			NetDue:       output.Summary.NetDue.StringFixed(2),
		},
		ByRate:    byRate,
		Documents: ToDocumentResponses(output.Documents),
	}
}

// ToDataHealthResponse converts the data health report.
func ToDataHealthResponse(health valueobject.DataHealth) DataHealthResponse {
	return DataHealthResponse{
		Severity:             string(health.Severity),
		PendingReview:        health.PendingReview,
		MissingInvoiceNumber: health.MissingInvoiceNumber,
		MissingInvoiceDate:   health.MissingInvoiceDate,
		MissingTotal:         health.MissingTotal,
	}
}
