package document

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/agency-ops/backend/internal/application/adapter"
)

// ExtractFieldsInput represents the input for the extraction assist.
type ExtractFieldsInput struct {
	DocumentID uuid.UUID
}

// ExtractFieldsOutput represents the output for the extraction assist.
type ExtractFieldsOutput struct {
	// Fields is nil when extraction produced nothing; that is not an error.
	Fields *adapter.ExtractionResult
}

// ExtractFieldsUseCase asks the extraction service for a best-effort guess at
// a document's fields. The guess is advisory: it is returned to the caller
// for merging into the in-progress review form and is never written to the
// document record. Extraction failure is silent.
type ExtractFieldsUseCase struct {
	documentRepo adapter.DocumentRepository
	extraction   adapter.ExtractionService
}

// NewExtractFieldsUseCase creates a new ExtractFieldsUseCase instance.
func NewExtractFieldsUseCase(documentRepo adapter.DocumentRepository, extraction adapter.ExtractionService) *ExtractFieldsUseCase {
	return &ExtractFieldsUseCase{
		documentRepo: documentRepo,
		extraction:   extraction,
	}
}

// Execute runs extraction for the document's stored file.
func (uc *ExtractFieldsUseCase) Execute(ctx context.Context, input ExtractFieldsInput) (*ExtractFieldsOutput, error) {
	doc, err := uc.documentRepo.FindByID(ctx, input.DocumentID)
	if err != nil {
		return nil, err
	}

	if uc.extraction == nil || doc.FileURL == "" {
		return &ExtractFieldsOutput{}, nil
	}

	fields, err := uc.extraction.Extract(ctx, doc.FileURL)
	if err != nil {
		// Treated as "no data available", not an error condition.
		slog.Warn("Extraction assist failed", "document_id", doc.ID, "error", err)
		return &ExtractFieldsOutput{}, nil
	}
	if fields.IsEmpty() {
		return &ExtractFieldsOutput{}, nil
	}

	return &ExtractFieldsOutput{Fields: fields}, nil
}
