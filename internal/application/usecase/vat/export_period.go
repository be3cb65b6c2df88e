package vat

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agency-ops/backend/internal/domain/entity"
	domainerror "github.com/agency-ops/backend/internal/domain/error"
	"github.com/agency-ops/backend/internal/domain/valueobject"
)

var exportHeader = []string{
	"kind", "counterparty", "invoice_number", "invoice_date", "due_date",
	"amount_excl_vat", "vat_total", "amount_incl_vat", "currency", "vat_rates",
}

// ExportPeriodInput represents the input for the CSV export.
type ExportPeriodInput struct {
	Year    int
	Quarter int
	Basis   valueobject.AccountingBasis
}

// ExportPeriodOutput carries the generated CSV file.
type ExportPeriodOutput struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ExportPeriodUseCase serializes the period-filtered approved documents to a
// flat CSV file. Exporting an empty period is refused with a user-facing
// message rather than producing an empty file.
type ExportPeriodUseCase struct {
	report *GetPeriodReportUseCase
}

// NewExportPeriodUseCase creates a new ExportPeriodUseCase instance.
func NewExportPeriodUseCase(report *GetPeriodReportUseCase) *ExportPeriodUseCase {
	return &ExportPeriodUseCase{
		report: report,
	}
}

// Execute generates the CSV export for the requested quarter.
func (uc *ExportPeriodUseCase) Execute(ctx context.Context, input ExportPeriodInput) (*ExportPeriodOutput, error) {
	report, err := uc.report.Execute(ctx, GetPeriodReportInput(input))
	if err != nil {
		return nil, err
	}

	if len(report.Documents) == 0 {
		return nil, domainerror.NewDocumentError(
			domainerror.ErrCodeNothingToExport,
			"no documents in the selected period to export",
			domainerror.ErrNothingToExport,
		)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, doc := range report.Documents {
		if err := writer.Write(exportRow(doc)); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return &ExportPeriodOutput{
		Filename:    ExportFilename(report.Period),
		ContentType: "text/csv",
		Content:     buf.Bytes(),
	}, nil
}

// ExportFilename builds the download filename for a period, e.g.
// "boekhoud-Q1-2025.csv".
func ExportFilename(period valueobject.Period) string {
	label := strings.ReplaceAll(period.Label(), " ", "-")
	return fmt.Sprintf("boekhoud-%s.csv", label)
}

// exportRow renders one document as a CSV row. Absent values become the empty
// string for text and dates and "0.00" for amounts; null is never emitted.
func exportRow(doc *entity.FinancialDocument) []string {
	return []string{
		string(doc.Kind),
		doc.Counterparty,
		doc.InvoiceNumber,
		formatDate(doc.InvoiceDate),
		formatDate(doc.DueDate),
		formatAmount(doc.AmountExclVAT),
		formatAmount(doc.VATTotal),
		formatAmount(doc.AmountInclVAT),
		doc.Currency,
		joinRates(doc),
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatAmount(d *decimal.Decimal) string {
	if d == nil {
		return "0.00"
	}
	return d.StringFixed(2)
}

func joinRates(doc *entity.FinancialDocument) string {
	rates := doc.RateList()
	parts := make([]string, len(rates))
	for i, rate := range rates {
		parts[i] = rate.String()
	}
	return strings.Join(parts, "/")
}
