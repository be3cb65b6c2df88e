package vat

import (
	"context"

	"github.com/agency-ops/backend/internal/application/adapter"
	"github.com/agency-ops/backend/internal/domain/entity"
	"github.com/agency-ops/backend/internal/domain/valueobject"
)

// GetDataHealthOutput represents the bookkeeping integrity report.
type GetDataHealthOutput struct {
	Health valueobject.DataHealth
}

// GetDataHealthUseCase audits the approved and pending document sets for
// missing mandatory fields.
type GetDataHealthUseCase struct {
	documentRepo adapter.DocumentRepository
}

// NewGetDataHealthUseCase creates a new GetDataHealthUseCase instance.
func NewGetDataHealthUseCase(documentRepo adapter.DocumentRepository) *GetDataHealthUseCase {
	return &GetDataHealthUseCase{
		documentRepo: documentRepo,
	}
}

// Execute computes the data-health report over the full document set.
func (uc *GetDataHealthUseCase) Execute(ctx context.Context) (*GetDataHealthOutput, error) {
	approved, err := uc.documentRepo.FindByStatus(ctx, entity.DocumentStatusApproved)
	if err != nil {
		return nil, err
	}

	pending, err := uc.documentRepo.CountByStatus(ctx, entity.DocumentStatusNeedsReview)
	if err != nil {
		return nil, err
	}

	return &GetDataHealthOutput{
		Health: valueobject.AuditDataHealth(approved, int(pending)),
	}, nil
}
