// Package document contains bookkeeping document use cases.
package document

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/agency-ops/backend/internal/application/adapter"
	"github.com/agency-ops/backend/internal/domain/entity"
	domainerror "github.com/agency-ops/backend/internal/domain/error"
)

// FileUpload represents one uploaded binary.
type FileUpload struct {
	Filename    string
	Content     io.Reader
	Size        int64
	ContentType string
}

// IngestDocumentsInput represents the input for ingesting documents.
type IngestDocumentsInput struct {
	Kind  entity.DocumentKind
	Files []FileUpload
}

// FileFailure records why a single file could not be ingested.
type FileFailure struct {
	Filename string
	Reason   string
}

// IngestDocumentsOutput represents the output for ingesting documents.
type IngestDocumentsOutput struct {
	Ingested []*entity.FinancialDocument
	Failed   []FileFailure
}

// IngestDocumentsUseCase stores uploaded binaries and creates one
// needs_review document record per file. There is no all-or-nothing
// guarantee across a batch: a failing file is reported and skipped while its
// siblings are ingested.
type IngestDocumentsUseCase struct {
	documentRepo adapter.DocumentRepository
	storage      adapter.ObjectStorage
}

// NewIngestDocumentsUseCase creates a new IngestDocumentsUseCase instance.
func NewIngestDocumentsUseCase(documentRepo adapter.DocumentRepository, storage adapter.ObjectStorage) *IngestDocumentsUseCase {
	return &IngestDocumentsUseCase{
		documentRepo: documentRepo,
		storage:      storage,
	}
}

// Execute ingests the uploaded files.
func (uc *IngestDocumentsUseCase) Execute(ctx context.Context, input IngestDocumentsInput) (*IngestDocumentsOutput, error) {
	if !input.Kind.IsValid() {
		return nil, domainerror.NewDocumentError(
			domainerror.ErrCodeInvalidDocumentKind,
			"unknown document kind",
			domainerror.ErrInvalidDocumentKind,
		)
	}
	if len(input.Files) == 0 {
		return nil, domainerror.NewDocumentError(
			domainerror.ErrCodeNoFilesProvided,
			"no files provided",
			nil,
		)
	}

	output := &IngestDocumentsOutput{}

	for _, file := range input.Files {
		path := fmt.Sprintf("uploads/%d-%s", time.Now().UnixNano(), file.Filename)

		stored, err := uc.storage.Upload(ctx, path, file.Content, file.Size, file.ContentType)
		if err != nil {
			slog.Error("Document upload failed", "filename", file.Filename, "error", err)
			output.Failed = append(output.Failed, FileFailure{
				Filename: file.Filename,
				Reason:   "upload failed",
			})
			continue
		}

		doc := entity.NewFinancialDocument(input.Kind, stored.Path, stored.URL)
		if err := uc.documentRepo.Create(ctx, doc); err != nil {
			slog.Error("Document record creation failed", "filename", file.Filename, "error", err)
			// Best-effort cleanup so the blob does not outlive its record.
			if removeErr := uc.storage.Remove(ctx, stored.Path); removeErr != nil {
				slog.Warn("Orphaned upload cleanup failed", "path", stored.Path, "error", removeErr)
			}
			output.Failed = append(output.Failed, FileFailure{
				Filename: file.Filename,
				Reason:   "record creation failed",
			})
			continue
		}

		output.Ingested = append(output.Ingested, doc)
	}

	return output, nil
}
