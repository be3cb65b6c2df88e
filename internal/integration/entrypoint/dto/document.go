// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/agency-ops/backend/internal/application/adapter"
	"github.com/agency-ops/backend/internal/application/usecase/document"
	"github.com/agency-ops/backend/internal/domain/entity"
)

// ReviewDocumentRequest represents the request body for reviewing a document.
// Dates use the YYYY-MM-DD format; amounts accept JSON numbers or strings.
type ReviewDocumentRequest struct {
	Action        string           `json:"action" binding:"required,oneof=approve reject"`
	Kind          string           `json:"kind"`
	Counterparty  string           `json:"counterparty"`
	InvoiceNumber string           `json:"invoice_number"`
	InvoiceDate   *string          `json:"invoice_date"`
	DueDate       *string          `json:"due_date"`
	BookedDate    *string          `json:"booked_date"`
	PeriodStart   *string          `json:"period_start"`
	PeriodEnd     *string          `json:"period_end"`
	VATRate       *decimal.Decimal `json:"vat_rate"`
	TotalInclVAT  *decimal.Decimal `json:"total_incl_vat"`
	Tags          []string         `json:"tags"`
	Notes         string           `json:"notes"`
}

// VATLineResponse represents one entry of a document's VAT breakdown.
type VATLineResponse struct {
	Rate string `json:"rate"`
	Base string `json:"base"`
	Tax  string `json:"tax"`
}

// DocumentResponse represents a document in API responses.
type DocumentResponse struct {
	ID            string            `json:"id"`
	Kind          string            `json:"kind"`
	Counterparty  string            `json:"counterparty"`
	InvoiceNumber string            `json:"invoice_number"`
	InvoiceDate   *string           `json:"invoice_date"`
	DueDate       *string           `json:"due_date"`
	BookedDate    *string           `json:"booked_date"`
	PeriodStart   *string           `json:"period_start"`
	PeriodEnd     *string           `json:"period_end"`
	AmountExclVAT *string           `json:"amount_excl_vat"`
	VATTotal      *string           `json:"vat_total"`
	AmountInclVAT *string           `json:"amount_incl_vat"`
	Currency      string            `json:"currency"`
	Status        string            `json:"status"`
	Tags          []string          `json:"tags"`
	Notes         string            `json:"notes"`
	VATBreakdown  []VATLineResponse `json:"vat_breakdown"`
	FileURL       string            `json:"file_url"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// FileFailureResponse records why one uploaded file was not ingested.
type FileFailureResponse struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// IngestDocumentsResponse represents the response for a document upload batch.
type IngestDocumentsResponse struct {
	Ingested []DocumentResponse    `json:"ingested"`
	Failed   []FileFailureResponse `json:"failed"`
}

// ListDocumentsResponse represents the response for listing documents.
type ListDocumentsResponse struct {
	Documents     []DocumentResponse `json:"documents"`
	PendingReview int64              `json:"pending_review"`
}

// ExtractionFieldsResponse represents the advisory extraction guess. All
// fields are optional.
type ExtractionFieldsResponse struct {
	InvoiceNumber *string `json:"invoice_number"`
	InvoiceDate   *string `json:"invoice_date"`
	DueDate       *string `json:"due_date"`
	TotalInclVAT  *string `json:"total_incl_vat"`
	Currency      *string `json:"currency"`
}

// ExtractFieldsResponse wraps the extraction guess; Fields is null when
// nothing could be extracted.
type ExtractFieldsResponse struct {
	Fields *ExtractionFieldsResponse `json:"fields"`
}

// ToDocumentResponse converts a domain FinancialDocument to its DTO.
func ToDocumentResponse(doc *entity.FinancialDocument) DocumentResponse {
	breakdown := make([]VATLineResponse, len(doc.VATBreakdown))
	for i, line := range doc.VATBreakdown {
		breakdown[i] = VATLineResponse{
			Rate: line.Rate.String(),
			Base: line.Base.StringFixed(2),
			Tax:  line.Tax.StringFixed(2),
		}
	}

	return DocumentResponse{
		ID:            doc.ID.String(),
		Kind:          string(doc.Kind),
		Counterparty:  doc.Counterparty,
		InvoiceNumber: doc.InvoiceNumber,
		InvoiceDate:   formatDatePtr(doc.InvoiceDate),
		DueDate:       formatDatePtr(doc.DueDate),
		BookedDate:    formatDatePtr(doc.BookedDate),
		PeriodStart:   formatDatePtr(doc.PeriodStart),
		PeriodEnd:     formatDatePtr(doc.PeriodEnd),
		AmountExclVAT: formatAmountPtr(doc.AmountExclVAT),
		VATTotal:      formatAmountPtr(doc.VATTotal),
		AmountInclVAT: formatAmountPtr(doc.AmountInclVAT),
		Currency:      doc.Currency,
		Status:        string(doc.Status),
		Tags:          doc.Tags,
		Notes:         doc.Notes,
		VATBreakdown:  breakdown,
		FileURL:       doc.FileURL,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
}

// ToDocumentResponses converts a slice of documents.
func ToDocumentResponses(docs []*entity.FinancialDocument) []DocumentResponse {
	responses := make([]DocumentResponse, len(docs))
	for i, doc := range docs {
		responses[i] = ToDocumentResponse(doc)
	}
	return responses
}

// ToIngestDocumentsResponse converts the ingest output.
func ToIngestDocumentsResponse(output *document.IngestDocumentsOutput) IngestDocumentsResponse {
	failed := make([]FileFailureResponse, len(output.Failed))
	for i, f := range output.Failed {
		failed[i] = FileFailureResponse{Filename: f.Filename, Reason: f.Reason}
	}
	return IngestDocumentsResponse{
		Ingested: ToDocumentResponses(output.Ingested),
		Failed:   failed,
	}
}

// ToExtractFieldsResponse converts the extraction output.
func ToExtractFieldsResponse(fields *adapter.ExtractionResult) ExtractFieldsResponse {
	if fields == nil {
		return ExtractFieldsResponse{}
	}
	resp := &ExtractionFieldsResponse{
		InvoiceNumber: fields.InvoiceNumber,
		InvoiceDate:   formatDatePtr(fields.InvoiceDate),
		DueDate:       formatDatePtr(fields.DueDate),
		Currency:      fields.Currency,
	}
	if fields.TotalInclVAT != nil {
		total := fields.TotalInclVAT.StringFixed(2)
		resp.TotalInclVAT = &total
	}
	return ExtractFieldsResponse{Fields: resp}
}

// ParseDate parses a YYYY-MM-DD request field; nil stays nil.
func ParseDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

func formatAmountPtr(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.StringFixed(2)
	return &s
}
