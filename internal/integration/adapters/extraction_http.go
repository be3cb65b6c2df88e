// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agency-ops/backend/internal/application/adapter"
)

// httpExtractionService calls an external extraction endpoint that accepts a
// retrievable file URL and answers a structured field guess. Any transport or
// decoding failure is swallowed: the caller gets (nil, nil) and the operator
// fills the fields by hand.
type httpExtractionService struct {
	endpoint string
	client   *http.Client
}

// NewHTTPExtractionService creates an extraction service backed by an
// external HTTP endpoint.
func NewHTTPExtractionService(endpoint string) adapter.ExtractionService {
	return &httpExtractionService{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type extractionRequest struct {
	FileURL string `json:"fileUrl"`
}

type extractionResponse struct {
	InvoiceNumber    *string `json:"invoiceNumber"`
	InvoiceDate      *string `json:"invoiceDate"`
	DueDate          *string `json:"dueDate"`
	TotalInclEur     *string `json:"totalInclEur"`
	CurrencyOriginal *string `json:"currencyOriginal"`
}

// Extract posts the file URL to the extraction endpoint and maps the answer.
func (s *httpExtractionService) Extract(ctx context.Context, fileURL string) (*adapter.ExtractionResult, error) {
	body, err := json.Marshal(extractionRequest{FileURL: fileURL})
	if err != nil {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, nil
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Warn("Extraction request failed", "error", err)
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("Extraction endpoint returned non-OK status", "status", resp.StatusCode)
		return nil, nil
	}

	var payload extractionResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		slog.Warn("Failed to decode extraction response", "error", err)
		return nil, nil
	}

	return mapExtractionFields(payload), nil
}

// mapExtractionFields converts the wire payload field by field, dropping
// anything unparseable rather than failing the whole guess.
func mapExtractionFields(payload extractionResponse) *adapter.ExtractionResult {
	result := &adapter.ExtractionResult{
		InvoiceNumber: payload.InvoiceNumber,
		Currency:      payload.CurrencyOriginal,
	}

	if payload.InvoiceDate != nil {
		if d, err := time.Parse("2006-01-02", *payload.InvoiceDate); err == nil {
			result.InvoiceDate = &d
		}
	}
	if payload.DueDate != nil {
		if d, err := time.Parse("2006-01-02", *payload.DueDate); err == nil {
			result.DueDate = &d
		}
	}
	if payload.TotalInclEur != nil {
		if total, err := decimal.NewFromString(*payload.TotalInclEur); err == nil {
			result.TotalInclVAT = &total
		}
	}

	return result
}
