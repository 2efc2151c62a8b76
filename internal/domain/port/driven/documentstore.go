package driven

import (
	"context"

	"github.com/spellcast/speechvault/internal/domain/model"
)

// DocumentStore defines the driven port for document catalog persistence.
type DocumentStore interface {
	Insert(ctx context.Context, doc model.Document) error
	ListAll(ctx context.Context) ([]model.Document, error)
}

// LibraryStore defines the driven port for user library persistence.
type LibraryStore interface {
	Insert(ctx context.Context, lib model.Library) error
	ListAll(ctx context.Context) ([]model.Library, error)
}

// ObjectStorage defines the driven port for issuing presigned upload URLs.
// The actual object store (and its signing scheme) is an external
// collaborator wired in at the composition root.
type ObjectStorage interface {
	// PresignUpload returns a URL the client can PUT the object to.
	PresignUpload(ctx context.Context, key, contentType string) (string, error)
}
