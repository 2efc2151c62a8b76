package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/spellcast/speechvault/internal/domain/model"
	"github.com/spellcast/speechvault/internal/domain/port/driven"
)

// Compile-time interface satisfaction checks.
var (
	_ driven.DocumentStore = (*DocumentRepo)(nil)
	_ driven.LibraryStore  = (*LibraryRepo)(nil)
)

// DocumentRepo is the SQLite implementation of the DocumentStore port interface.
type DocumentRepo struct {
	db *DB
}

// NewDocumentRepo creates a new DocumentRepo backed by the given DB.
func NewDocumentRepo(db *DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// Insert persists a new document.
func (r *DocumentRepo) Insert(ctx context.Context, doc model.Document) error {
	const query = `INSERT INTO documents (id, name, type, file_path, created_at) VALUES (?, ?, ?, ?, ?)`

	createdAt := doc.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	if _, err := r.db.Writer.ExecContext(ctx, query, doc.ID, doc.Name, doc.Type, doc.FilePath, createdAt); err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// ListAll returns every document in the catalog, oldest first.
func (r *DocumentRepo) ListAll(ctx context.Context) ([]model.Document, error) {
	const query = `SELECT id, name, type, file_path, created_at FROM documents ORDER BY created_at, id`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []model.Document
	for rows.Next() {
		var doc model.Document
		var createdAt string
		if err := rows.Scan(&doc.ID, &doc.Name, &doc.Type, &doc.FilePath, &createdAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		doc.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	return docs, nil
}

// LibraryRepo is the SQLite implementation of the LibraryStore port interface.
type LibraryRepo struct {
	db *DB
}

// NewLibraryRepo creates a new LibraryRepo backed by the given DB.
func NewLibraryRepo(db *DB) *LibraryRepo {
	return &LibraryRepo{db: db}
}

// Insert persists a new library entry.
func (r *LibraryRepo) Insert(ctx context.Context, lib model.Library) error {
	const query = `INSERT INTO libraries (id, user_id, document_id, created_at) VALUES (?, ?, ?, ?)`

	createdAt := lib.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	if _, err := r.db.Writer.ExecContext(ctx, query, lib.ID, lib.UserID, lib.DocumentID, createdAt); err != nil {
		return fmt.Errorf("insert library: %w", err)
	}
	return nil
}

// ListAll returns every library entry, oldest first.
func (r *LibraryRepo) ListAll(ctx context.Context) ([]model.Library, error) {
	const query = `SELECT id, user_id, document_id, created_at FROM libraries ORDER BY created_at, id`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list libraries: %w", err)
	}
	defer rows.Close()

	var libs []model.Library
	for rows.Next() {
		var lib model.Library
		var createdAt string
		if err := rows.Scan(&lib.ID, &lib.UserID, &lib.DocumentID, &createdAt); err != nil {
			return nil, fmt.Errorf("scan library: %w", err)
		}
		lib.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		libs = append(libs, lib)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate libraries: %w", err)
	}

	return libs, nil
}
