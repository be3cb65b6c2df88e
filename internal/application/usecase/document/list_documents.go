package document

import (
	"context"

	"github.com/agency-ops/backend/internal/application/adapter"
	"github.com/agency-ops/backend/internal/domain/entity"
)

// ListDocumentsInput represents the input for listing documents.
type ListDocumentsInput struct {
	// Status filters the list; empty lists every document.
	Status entity.DocumentStatus
}

// ListDocumentsOutput represents the output for listing documents.
type ListDocumentsOutput struct {
	Documents     []*entity.FinancialDocument
	PendingReview int64
}

// ListDocumentsUseCase handles listing documents for the review queue and
// the bookkeeping overview.
type ListDocumentsUseCase struct {
	documentRepo adapter.DocumentRepository
}

// NewListDocumentsUseCase creates a new ListDocumentsUseCase instance.
func NewListDocumentsUseCase(documentRepo adapter.DocumentRepository) *ListDocumentsUseCase {
	return &ListDocumentsUseCase{
		documentRepo: documentRepo,
	}
}

// Execute lists documents. The pending-review count always reflects the full
// queue, regardless of the status filter; rejected documents never count.
func (uc *ListDocumentsUseCase) Execute(ctx context.Context, input ListDocumentsInput) (*ListDocumentsOutput, error) {
	var docs []*entity.FinancialDocument
	var err error

	if input.Status != "" {
		docs, err = uc.documentRepo.FindByStatus(ctx, input.Status)
	} else {
		docs, err = uc.documentRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	pending, err := uc.documentRepo.CountByStatus(ctx, entity.DocumentStatusNeedsReview)
	if err != nil {
		return nil, err
	}

	return &ListDocumentsOutput{
		Documents:     docs,
		PendingReview: pending,
	}, nil
}
