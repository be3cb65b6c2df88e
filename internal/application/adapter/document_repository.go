// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/agency-ops/backend/internal/domain/entity"
)

// DocumentRepository defines the interface for bookkeeping document
// persistence operations.
type DocumentRepository interface {
	// Create creates a new document in the database.
	Create(ctx context.Context, doc *entity.FinancialDocument) error

	// FindByID retrieves a document by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.FinancialDocument, error)

	// FindByStatus retrieves all documents with the given status, ordered
	// by invoice date descending (undated documents last).
	FindByStatus(ctx context.Context, status entity.DocumentStatus) ([]*entity.FinancialDocument, error)

	// FindAll retrieves all documents regardless of status.
	FindAll(ctx context.Context) ([]*entity.FinancialDocument, error)

	// CountByStatus counts the documents with the given status.
	CountByStatus(ctx context.Context, status entity.DocumentStatus) (int64, error)

	// Update saves changes to a document by primary key.
	Update(ctx context.Context, doc *entity.FinancialDocument) error
}
