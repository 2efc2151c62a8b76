package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/spellcast/speechvault/internal/domain/model"
	"github.com/spellcast/speechvault/internal/domain/port/driven"
)

// LibraryService manages the document catalog and per-user libraries.
// Uploads happen client-side against a presigned URL issued by the object
// storage collaborator; this service only records the catalog entry.
type LibraryService struct {
	users     driven.UserStore
	documents driven.DocumentStore
	libraries driven.LibraryStore
	storage   driven.ObjectStorage
	logger    *slog.Logger
}

// NewLibraryService creates a LibraryService with the required dependencies.
func NewLibraryService(
	users driven.UserStore,
	documents driven.DocumentStore,
	libraries driven.LibraryStore,
	storage driven.ObjectStorage,
	logger *slog.Logger,
) *LibraryService {
	return &LibraryService{
		users:     users,
		documents: documents,
		libraries: libraries,
		storage:   storage,
		logger:    logger,
	}
}

// CreateDocument issues a presigned upload URL for a new document and
// records it in the catalog. The object key namespaces by content type and
// prefixes a UUID so concurrent uploads of one filename never collide.
func (s *LibraryService) CreateDocument(ctx context.Context, userID, name, docType string) (*model.Document, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	docID := uuid.NewString()
	key := fmt.Sprintf("%s/%s-%s", docType, docID, name)

	url, err := s.storage.PresignUpload(ctx, key, docType)
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}

	doc := model.Document{
		ID:       docID,
		Name:     name,
		Type:     docType,
		FilePath: url,
	}
	if err := s.documents.Insert(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document created", "document_id", doc.ID, "type", docType)

	return &doc, nil
}

// ListDocuments returns the full document catalog.
func (s *LibraryService) ListDocuments(ctx context.Context, userID string) ([]model.Document, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.documents.ListAll(ctx)
}

// CreateLibrary links a document into the user's library.
func (s *LibraryService) CreateLibrary(ctx context.Context, userID, documentID string) (*model.Library, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	lib := model.Library{
		ID:         uuid.NewString(),
		UserID:     userID,
		DocumentID: documentID,
	}
	if err := s.libraries.Insert(ctx, lib); err != nil {
		return nil, err
	}

	return &lib, nil
}

// ListLibraries returns all library entries.
func (s *LibraryService) ListLibraries(ctx context.Context) ([]model.Library, error) {
	return s.libraries.ListAll(ctx)
}

func (s *LibraryService) requireUser(ctx context.Context, userID string) error {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("user: %w", model.ErrNotFound)
	}
	return nil
}
