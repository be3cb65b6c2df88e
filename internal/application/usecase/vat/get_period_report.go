// Package vat contains quarterly VAT reporting use cases.
package vat

import (
	"context"

	"github.com/agency-ops/backend/internal/application/adapter"
	"github.com/agency-ops/backend/internal/domain/entity"
	domainerror "github.com/agency-ops/backend/internal/domain/error"
	"github.com/agency-ops/backend/internal/domain/valueobject"
)

// GetPeriodReportInput represents the input for the period aggregation engine.
type GetPeriodReportInput struct {
	Year    int
	Quarter int
	Basis   valueobject.AccountingBasis
}

// GetPeriodReportOutput represents the aggregated VAT position for a quarter.
type GetPeriodReportOutput struct {
	Period    valueobject.Period
	Basis     valueobject.AccountingBasis
	Summary   valueobject.VATSummary
	ByRate    []valueobject.RateLine
	Documents []*entity.FinancialDocument
}

// GetPeriodReportUseCase computes the VAT summary and by-rate breakdown for
// one quarter over the approved document set. Everything is recomputed fresh
// on every call; nothing derived is persisted.
type GetPeriodReportUseCase struct {
	documentRepo adapter.DocumentRepository
}

// NewGetPeriodReportUseCase creates a new GetPeriodReportUseCase instance.
func NewGetPeriodReportUseCase(documentRepo adapter.DocumentRepository) *GetPeriodReportUseCase {
	return &GetPeriodReportUseCase{
		documentRepo: documentRepo,
	}
}

// Execute aggregates the approved documents for the requested quarter.
func (uc *GetPeriodReportUseCase) Execute(ctx context.Context, input GetPeriodReportInput) (*GetPeriodReportOutput, error) {
	period, err := valueobject.NewPeriod(input.Year, input.Quarter)
	if err != nil {
		return nil, domainerror.NewDocumentError(
			domainerror.ErrCodeInvalidPeriod,
			"quarter must be between 1 and 4",
			domainerror.ErrInvalidPeriod,
		)
	}

	basis := input.Basis
	if basis == "" {
		basis = valueobject.BasisInvoice
	}
	if !basis.IsValid() {
		return nil, domainerror.NewDocumentError(
			domainerror.ErrCodeInvalidBasis,
			"basis must be invoice or booked",
			domainerror.ErrInvalidBasis,
		)
	}

	approved, err := uc.documentRepo.FindByStatus(ctx, entity.DocumentStatusApproved)
	if err != nil {
		return nil, err
	}

	return &GetPeriodReportOutput{
		Period:    period,
		Basis:     basis,
		Summary:   valueobject.SummarizeVAT(approved, period, basis),
		ByRate:    valueobject.BreakdownByRate(approved, period, basis),
		Documents: valueobject.FilterToPeriod(approved, period, basis),
	}, nil
}
