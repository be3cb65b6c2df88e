package document

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/agency-ops/backend/internal/application/adapter"
)

func TestExtractFields_ReturnsGuess(t *testing.T) {
	repo := newFakeDocumentRepository()
	doc := seedPendingDocument(repo)

	number := "F-2025-17"
	invoiceDate := time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC)
	total := dec("121.00")
	currency := "EUR"
	extraction := &fakeExtractionService{
		result: &adapter.ExtractionResult{
			InvoiceNumber: &number,
			InvoiceDate:   &invoiceDate,
			TotalInclVAT:  &total,
			Currency:      &currency,
		},
	}

	uc := NewExtractFieldsUseCase(repo, extraction)
	output, err := uc.Execute(context.Background(), ExtractFieldsInput{DocumentID: doc.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Fields == nil {
		t.Fatal("expected extraction fields")
	}
	if *output.Fields.InvoiceNumber != number {
		t.Errorf("expected invoice number %q, got %q", number, *output.Fields.InvoiceNumber)
	}

	// Extraction is advisory only: the stored record stays untouched.
	stored, _ := repo.FindByID(context.Background(), doc.ID)
	if stored.InvoiceNumber != "" {
		t.Errorf("expected stored record to remain empty, got %q", stored.InvoiceNumber)
	}
}

func TestExtractFields_FailureIsSilent(t *testing.T) {
	repo := newFakeDocumentRepository()
	doc := seedPendingDocument(repo)

	extraction := &fakeExtractionService{err: errors.New("service unreachable")}

	uc := NewExtractFieldsUseCase(repo, extraction)
	output, err := uc.Execute(context.Background(), ExtractFieldsInput{DocumentID: doc.ID})
	if err != nil {
		t.Fatalf("extraction failure must not surface as an error, got %v", err)
	}
	if output.Fields != nil {
		t.Errorf("expected no fields on failure, got %+v", output.Fields)
	}
}

func TestExtractFields_NoServiceConfigured(t *testing.T) {
	repo := newFakeDocumentRepository()
	doc := seedPendingDocument(repo)

	uc := NewExtractFieldsUseCase(repo, nil)
	output, err := uc.Execute(context.Background(), ExtractFieldsInput{DocumentID: doc.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Fields != nil {
		t.Errorf("expected no fields without a configured service, got %+v", output.Fields)
	}
}
