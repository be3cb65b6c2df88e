// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agency-ops/backend/internal/application/adapter"
	"github.com/agency-ops/backend/internal/domain/entity"
	domainerror "github.com/agency-ops/backend/internal/domain/error"
	"github.com/agency-ops/backend/internal/integration/persistence/model"
)

// documentRepository implements the adapter.DocumentRepository interface.
type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new document repository instance.
func NewDocumentRepository(db *gorm.DB) adapter.DocumentRepository {
	return &documentRepository{
		db: db,
	}
}

// Create creates a new document in the database.
func (r *documentRepository) Create(ctx context.Context, doc *entity.FinancialDocument) error {
	docModel := model.DocumentFromEntity(doc)
	result := r.db.WithContext(ctx).Create(docModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a document by its ID.
func (r *documentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.FinancialDocument, error) {
	var docModel model.DocumentModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&docModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrDocumentNotFound
		}
		return nil, result.Error
	}
	return docModel.ToEntity(), nil
}

// FindByStatus retrieves all documents with the given status, newest invoice
// date first (undated documents last).
func (r *documentRepository) FindByStatus(ctx context.Context, status entity.DocumentStatus) ([]*entity.FinancialDocument, error) {
	var models []model.DocumentModel
	result := r.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("invoice_date DESC NULLS LAST").
		Order("created_at DESC").
		Find(&models)

	if result.Error != nil {
		return nil, result.Error
	}

	return toEntities(models), nil
}

// FindAll retrieves all documents, newest invoice date first.
func (r *documentRepository) FindAll(ctx context.Context) ([]*entity.FinancialDocument, error) {
	var models []model.DocumentModel
	result := r.db.WithContext(ctx).
		Order("invoice_date DESC NULLS LAST").
		Order("created_at DESC").
		Find(&models)

	if result.Error != nil {
		return nil, result.Error
	}

	return toEntities(models), nil
}

// CountByStatus counts the documents with the given status.
func (r *documentRepository) CountByStatus(ctx context.Context, status entity.DocumentStatus) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.DocumentModel{}).
		Where("status = ?", string(status)).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// Update updates an existing document in the database.
func (r *documentRepository) Update(ctx context.Context, doc *entity.FinancialDocument) error {
	docModel := model.DocumentFromEntity(doc)
	result := r.db.WithContext(ctx).Save(docModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

func toEntities(models []model.DocumentModel) []*entity.FinancialDocument {
	docs := make([]*entity.FinancialDocument, len(models))
	for i, m := range models {
		docs[i] = m.ToEntity()
	}
	return docs
}
