package document

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/agency-ops/backend/internal/application/adapter"
	"github.com/agency-ops/backend/internal/domain/entity"
	domainerror "github.com/agency-ops/backend/internal/domain/error"
)

// fakeDocumentRepository is an in-memory adapter.DocumentRepository for tests.
type fakeDocumentRepository struct {
	mu        sync.Mutex
	docs      map[uuid.UUID]*entity.FinancialDocument
	failNext  bool
	createErr error
}

func newFakeDocumentRepository() *fakeDocumentRepository {
	return &fakeDocumentRepository{docs: make(map[uuid.UUID]*entity.FinancialDocument)}
}

func (r *fakeDocumentRepository) Create(_ context.Context, doc *entity.FinancialDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		err := r.createErr
		r.createErr = nil
		return err
	}
	copied := *doc
	r.docs[doc.ID] = &copied
	return nil
}

func (r *fakeDocumentRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.FinancialDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok {
		return nil, domainerror.ErrDocumentNotFound
	}
	copied := *doc
	return &copied, nil
}

func (r *fakeDocumentRepository) FindByStatus(_ context.Context, status entity.DocumentStatus) ([]*entity.FinancialDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.FinancialDocument
	for _, doc := range r.docs {
		if doc.Status == status {
			copied := *doc
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeDocumentRepository) FindAll(_ context.Context) ([]*entity.FinancialDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.FinancialDocument
	for _, doc := range r.docs {
		copied := *doc
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakeDocumentRepository) CountByStatus(_ context.Context, status entity.DocumentStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, doc := range r.docs {
		if doc.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *fakeDocumentRepository) Update(_ context.Context, doc *entity.FinancialDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failNext {
		r.failNext = false
		return errors.New("persistence failure")
	}
	if _, ok := r.docs[doc.ID]; !ok {
		return domainerror.ErrDocumentNotFound
	}
	copied := *doc
	r.docs[doc.ID] = &copied
	return nil
}

// fakeObjectStorage is an in-memory adapter.ObjectStorage for tests.
type fakeObjectStorage struct {
	objects   map[string][]byte
	failPaths map[string]bool
	removed   []string
}

func newFakeObjectStorage() *fakeObjectStorage {
	return &fakeObjectStorage{
		objects:   make(map[string][]byte),
		failPaths: make(map[string]bool),
	}
}

func (s *fakeObjectStorage) Upload(_ context.Context, path string, content io.Reader, _ int64, _ string) (*adapter.StoredObject, error) {
	for failPath := range s.failPaths {
		if bytes.Contains([]byte(path), []byte(failPath)) {
			return nil, errors.New("upload failure")
		}
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, err
	}
	s.objects[path] = data
	return &adapter.StoredObject{Path: path, URL: "https://storage.example.com/" + path}, nil
}

func (s *fakeObjectStorage) Remove(_ context.Context, path string) error {
	delete(s.objects, path)
	s.removed = append(s.removed, path)
	return nil
}

// fakeExtractionService returns a canned result or error.
type fakeExtractionService struct {
	result *adapter.ExtractionResult
	err    error
}

func (s *fakeExtractionService) Extract(_ context.Context, _ string) (*adapter.ExtractionResult, error) {
	return s.result, s.err
}
