package vat

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	domainerror "github.com/agency-ops/backend/internal/domain/error"
	"github.com/agency-ops/backend/internal/domain/valueobject"
)

const (
	summarySheet   = "Summary"
	documentsSheet = "Documents"
)

// ExportReportXLSXInput represents the input for the XLSX report export.
type ExportReportXLSXInput struct {
	Year    int
	Quarter int
	Basis   valueobject.AccountingBasis
}

// ExportReportXLSXOutput carries the generated workbook.
type ExportReportXLSXOutput struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ExportReportXLSXUseCase renders the quarterly VAT report as an Excel
// workbook: a summary sheet with the VAT position and data health, and a
// documents sheet mirroring the CSV export columns.
type ExportReportXLSXUseCase struct {
	report *GetPeriodReportUseCase
	health *GetDataHealthUseCase
}

// NewExportReportXLSXUseCase creates a new ExportReportXLSXUseCase instance.
func NewExportReportXLSXUseCase(report *GetPeriodReportUseCase, health *GetDataHealthUseCase) *ExportReportXLSXUseCase {
	return &ExportReportXLSXUseCase{
		report: report,
		health: health,
	}
}

// Execute generates the XLSX report for the requested quarter.
func (uc *ExportReportXLSXUseCase) Execute(ctx context.Context, input ExportReportXLSXInput) (*ExportReportXLSXOutput, error) {
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

	health, err := uc.health.Execute(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(documentsSheet); err != nil {
		return nil, err
	}

	if err := uc.fillSummary(f, report, health); err != nil {
		return nil, err
	}
	if err := uc.fillDocuments(f, report); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	label := strings.ReplaceAll(report.Period.Label(), " ", "-")
	return &ExportReportXLSXOutput{
		Filename:    fmt.Sprintf("boekhoud-%s.xlsx", label),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Content:     buf.Bytes(),
	}, nil
}

func (uc *ExportReportXLSXUseCase) fillSummary(f *excelize.File, report *GetPeriodReportOutput, health *GetDataHealthOutput) error {
	rows := [][]interface{}{
		{"Period", report.Period.Label()},
		{"Basis", string(report.Basis)},
		{},
		{"Revenue (excl VAT)", report.Summary.Revenue.StringFixed(2)},
		{"VAT collected", report.Summary.VATCollected.StringFixed(2)},
		{"Expenses (excl VAT)", report.Summary.Expenses.StringFixed(2)},
		{"VAT paid", report.Summary.VATPaid.StringFixed(2)},
		{"Net VAT due", report.Summary.NetDue.StringFixed(2)},
		{},
		{"Data health", string(health.Health.Severity)},
		{"Pending review", health.Health.PendingReview},
		{"Missing invoice numbers", health.Health.MissingInvoiceNumber},
		{"Missing invoice dates", health.Health.MissingInvoiceDate},
		{"Missing totals", health.Health.MissingTotal},
		{},
		{"Rate", "Base", "VAT", "Share %"},
	}
	for _, line := range report.ByRate {
		rows = append(rows, []interface{}{
			line.Rate.String() + "%",
			line.Base.StringFixed(2),
			line.Tax.StringFixed(2),
			line.SharePercent.String(),
		})
	}

	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func (uc *ExportReportXLSXUseCase) fillDocuments(f *excelize.File, report *GetPeriodReportOutput) error {
	header := make([]interface{}, len(exportHeader))
	for i, col := range exportHeader {
		header[i] = col
	}
	if err := f.SetSheetRow(documentsSheet, "A1", &header); err != nil {
		return err
	}

	for i, doc := range report.Documents {
		values := exportRow(doc)
		row := make([]interface{}, len(values))
		for j, v := range values {
			row[j] = v
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(documentsSheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
