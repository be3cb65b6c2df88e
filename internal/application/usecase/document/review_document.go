package document

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agency-ops/backend/internal/application/adapter"
	"github.com/agency-ops/backend/internal/domain/entity"
	domainerror "github.com/agency-ops/backend/internal/domain/error"
	"github.com/agency-ops/backend/internal/domain/valueobject"
)

// ReviewAction is the operator's decision on a document under review.
type ReviewAction string

const (
	ActionApprove ReviewAction = "approve"
	ActionReject  ReviewAction = "reject"
)

// ReviewDocumentInput represents the operator-supplied authoritative fields
// for a document under review.
type ReviewDocumentInput struct {
	DocumentID    uuid.UUID
	Action        ReviewAction
	Kind          entity.DocumentKind
	Counterparty  string
	InvoiceNumber string
	InvoiceDate   *time.Time
	DueDate       *time.Time
	BookedDate    *time.Time
	PeriodStart   *time.Time
	PeriodEnd     *time.Time
	VATRate       *decimal.Decimal
	TotalInclVAT  *decimal.Decimal
	Tags          []string
	Notes         string
}

// ReviewDocumentOutput represents the output of the review workflow.
type ReviewDocumentOutput struct {
	Document *entity.FinancialDocument
}

// ReviewDocumentUseCase applies the two-state review gate: a needs_review
// document is populated with authoritative fields and moved to approved or
// rejected. Both statuses are terminal; corrections require a new document.
type ReviewDocumentUseCase struct {
	documentRepo adapter.DocumentRepository
}

// NewReviewDocumentUseCase creates a new ReviewDocumentUseCase instance.
func NewReviewDocumentUseCase(documentRepo adapter.DocumentRepository) *ReviewDocumentUseCase {
	return &ReviewDocumentUseCase{
		documentRepo: documentRepo,
	}
}

// Execute reviews the document. On approve with a positive VAT-inclusive
// total and a rate, the excl-VAT base and VAT amount are derived and a
// single-entry breakdown replaces any prior one; otherwise previously stored
// amounts are retained unchanged. On persistence failure the document keeps
// its prior status and the operator may retry.
func (uc *ReviewDocumentUseCase) Execute(ctx context.Context, input ReviewDocumentInput) (*ReviewDocumentOutput, error) {
	if input.Action != ActionApprove && input.Action != ActionReject {
		return nil, domainerror.NewDocumentError(
			domainerror.ErrCodeInvalidReviewAction,
			"action must be approve or reject",
			domainerror.ErrInvalidReviewAction,
		)
	}
	if input.Kind != "" && !input.Kind.IsValid() {
		return nil, domainerror.NewDocumentError(
			domainerror.ErrCodeInvalidDocumentKind,
			"unknown document kind",
			domainerror.ErrInvalidDocumentKind,
		)
	}

	doc, err := uc.documentRepo.FindByID(ctx, input.DocumentID)
	if err != nil {
		return nil, err
	}

	if doc.IsReviewed() {
		return nil, domainerror.NewDocumentError(
			domainerror.ErrCodeDocumentAlreadyReviewed,
			"document has already been reviewed",
			domainerror.ErrDocumentAlreadyReviewed,
		)
	}

	if input.Kind != "" {
		doc.Kind = input.Kind
	}
	doc.Counterparty = input.Counterparty
	doc.InvoiceNumber = input.InvoiceNumber
	doc.InvoiceDate = input.InvoiceDate
	doc.DueDate = input.DueDate
	doc.BookedDate = input.BookedDate
	doc.PeriodStart = input.PeriodStart
	doc.PeriodEnd = input.PeriodEnd
	doc.Tags = input.Tags
	doc.Notes = input.Notes

	if input.TotalInclVAT != nil && input.TotalInclVAT.IsPositive() && input.VATRate != nil {
		line := valueobject.DeriveVATLine(*input.TotalInclVAT, *input.VATRate)
		total := *input.TotalInclVAT

		doc.AmountInclVAT = &total
		doc.AmountExclVAT = &line.Base
		doc.VATTotal = &line.Tax
		doc.VATBreakdown = []entity.VATLine{line}
	}
	// Absent or non-positive total: previously stored amounts stay as they are.

	switch input.Action {
	case ActionApprove:
		doc.Status = entity.DocumentStatusApproved
	case ActionReject:
		doc.Status = entity.DocumentStatusRejected
	}
	doc.UpdatedAt = time.Now().UTC()

	if err := uc.documentRepo.Update(ctx, doc); err != nil {
		return nil, err
	}

	return &ReviewDocumentOutput{Document: doc}, nil
}
