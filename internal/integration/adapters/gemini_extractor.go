// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/shopspring/decimal"
	"google.golang.org/api/option"

	"github.com/agency-ops/backend/internal/application/adapter"
)

// geminiExtractionService reads invoice fields with Google Gemini. The
// document bytes are fetched from object storage and handed to the model
// inline. Like every extraction implementation, failures are swallowed and
// answered with (nil, nil).
type geminiExtractionService struct {
	apiKey    string
	modelName string
	client    *http.Client
}

// NewGeminiExtractionService creates a Gemini-backed extraction service.
func NewGeminiExtractionService(apiKey, modelName string) adapter.ExtractionService {
	if modelName == "" {
		modelName = "gemini-2.5-flash-lite"
	}
	return &geminiExtractionService{
		apiKey:    apiKey,
		modelName: modelName,
		client:    &http.Client{Timeout: 60 * time.Second},
	}
}

const extractionPrompt = `You are reading a bookkeeping document (invoice or receipt).
Extract the following fields if they are present:

- invoiceNumber: the invoice or receipt number as printed
- invoiceDate: the invoice date in YYYY-MM-DD
- dueDate: the payment due date in YYYY-MM-DD
- totalInclVat: the total amount including VAT, as a plain decimal number
- currency: the ISO 4217 currency code of the amounts

Answer with a single JSON object using exactly those keys. Use null for any
field you cannot read with confidence. Do not guess. Return only the JSON
object, no additional text.`

type geminiExtraction struct {
	InvoiceNumber *string `json:"invoiceNumber"`
	InvoiceDate   *string `json:"invoiceDate"`
	DueDate       *string `json:"dueDate"`
	TotalInclVAT  *string `json:"totalInclVat"`
	Currency      *string `json:"currency"`
}

// Extract downloads the document and asks Gemini for a field guess.
func (s *geminiExtractionService) Extract(ctx context.Context, fileURL string) (*adapter.ExtractionResult, error) {
	if s.apiKey == "" {
		return nil, nil
	}

	data, mimeType, err := s.fetchDocument(ctx, fileURL)
	if err != nil {
		slog.Warn("Failed to fetch document for extraction", "error", err)
		return nil, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		slog.Warn("Failed to create gemini client", "error", err)
		return nil, nil
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx,
		genai.Blob{MIMEType: mimeType, Data: data},
		genai.Text(extractionPrompt),
	)
	if err != nil {
		slog.Warn("Gemini extraction failed", "error", err)
		return nil, nil
	}

	parsed, err := parseGeminiResponse(resp)
	if err != nil {
		slog.Warn("Failed to parse gemini extraction response", "error", err)
		return nil, nil
	}

	return toExtractionResult(parsed), nil
}

func (s *geminiExtractionService) fetchDocument(ctx context.Context, fileURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("unexpected status %d fetching document", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 20<<20))
	if err != nil {
		return nil, "", err
	}

	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/pdf"
	}
	return data, mimeType, nil
}

func parseGeminiResponse(resp *genai.GenerateContentResponse) (*geminiExtraction, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("empty response from gemini")
	}

	var textContent string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			textContent = string(text)
			break
		}
	}
	if textContent == "" {
		return nil, fmt.Errorf("no text content in response")
	}

	// Strip markdown code fences if the model wrapped the JSON anyway.
	textContent = strings.TrimPrefix(textContent, "```json")
	textContent = strings.TrimPrefix(textContent, "```")
	textContent = strings.TrimSuffix(textContent, "```")
	textContent = strings.TrimSpace(textContent)

	var parsed geminiExtraction
	if err := json.Unmarshal([]byte(textContent), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}
	return &parsed, nil
}

func toExtractionResult(parsed *geminiExtraction) *adapter.ExtractionResult {
	result := &adapter.ExtractionResult{
		InvoiceNumber: parsed.InvoiceNumber,
		Currency:      parsed.Currency,
	}

	if parsed.InvoiceDate != nil {
		if d, err := time.Parse("2006-01-02", *parsed.InvoiceDate); err == nil {
			result.InvoiceDate = &d
		}
	}
	if parsed.DueDate != nil {
		if d, err := time.Parse("2006-01-02", *parsed.DueDate); err == nil {
			result.DueDate = &d
		}
	}
	if parsed.TotalInclVAT != nil {
		if total, err := decimal.NewFromString(*parsed.TotalInclVAT); err == nil {
			result.TotalInclVAT = &total
		}
	}

	return result
}
