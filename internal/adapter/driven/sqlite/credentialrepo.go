package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spellcast/speechvault/internal/domain/model"
	"github.com/spellcast/speechvault/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CredentialStore = (*CredentialRepo)(nil)

// CredentialRepo is the SQLite implementation of the CredentialStore port
// interface. It stores the already-encrypted key material; encryption happens
// upstream in the application layer.
//
// Ownership is enforced inside every per-credential query (id AND user_id in
// the WHERE clause), never by filtering after the fact.
type CredentialRepo struct {
	db *DB
}

// NewCredentialRepo creates a new CredentialRepo backed by the given DB.
func NewCredentialRepo(db *DB) *CredentialRepo {
	return &CredentialRepo{db: db}
}

// Insert persists a new credential.
func (r *CredentialRepo) Insert(ctx context.Context, cred model.Credential) error {
	const query = `INSERT INTO credentials (id, user_id, azure_key, region, voices, shared, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`

	voices, err := marshalVoices(cred.Voices)
	if err != nil {
		return fmt.Errorf("insert credential: %w", err)
	}

	createdAt := cred.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = r.db.Writer.ExecContext(ctx, query,
		cred.ID, cred.UserID, cred.EncryptedKey, cred.Region, voices, cred.Shared, createdAt)
	if err != nil {
		return fmt.Errorf("insert credential: %w", err)
	}
	return nil
}

// GetOwned returns the credential with the given id owned by userID, or
// model.ErrNotFound when no row matches both predicates.
func (r *CredentialRepo) GetOwned(ctx context.Context, id, userID string) (*model.Credential, error) {
	const query = `SELECT id, user_id, azure_key, region, voices, shared, created_at FROM credentials WHERE id = ? AND user_id = ?`

	cred, err := scanCredential(r.db.Reader.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get credential: %w", err)
	}
	return cred, nil
}

// ListByUser returns all credentials owned by userID, oldest first.
func (r *CredentialRepo) ListByUser(ctx context.Context, userID string) ([]model.Credential, error) {
	const query = `SELECT id, user_id, azure_key, region, voices, shared, created_at FROM credentials WHERE user_id = ? ORDER BY created_at, id`

	rows, err := r.db.Reader.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list credentials: %w", err)
	}
	defer rows.Close()

	var creds []model.Credential
	for rows.Next() {
		cred, err := scanCredential(rows)
		if err != nil {
			return nil, fmt.Errorf("scan credential: %w", err)
		}
		creds = append(creds, *cred)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate credentials: %w", err)
	}

	return creds, nil
}

// Update rewrites the mutable fields of the credential identified by cred.ID
// and cred.UserID. Returns model.ErrNotFound when the ownership match fails.
func (r *CredentialRepo) Update(ctx context.Context, cred model.Credential) error {
	const query = `UPDATE credentials SET azure_key = ?, region = ?, voices = ?, shared = ? WHERE id = ? AND user_id = ?`

	voices, err := marshalVoices(cred.Voices)
	if err != nil {
		return fmt.Errorf("update credential: %w", err)
	}

	result, err := r.db.Writer.ExecContext(ctx, query,
		cred.EncryptedKey, cred.Region, voices, cred.Shared, cred.ID, cred.UserID)
	if err != nil {
		return fmt.Errorf("update credential: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update credential rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrNotFound
	}
	return nil
}

// Delete removes the credential with the given id owned by userID. Returns
// model.ErrNotFound when the ownership match fails.
func (r *CredentialRepo) Delete(ctx context.Context, id, userID string) error {
	const query = `DELETE FROM credentials WHERE id = ? AND user_id = ?`

	result, err := r.db.Writer.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete credential rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrNotFound
	}
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanCredential.
type scanner interface {
	Scan(dest ...any) error
}

// scanCredential reads one credential row. The voices column is NULL until a
// snapshot is stored; NULL round-trips to a nil slice.
func scanCredential(s scanner) (*model.Credential, error) {
	var cred model.Credential
	var voices sql.NullString
	var createdAt string

	err := s.Scan(&cred.ID, &cred.UserID, &cred.EncryptedKey, &cred.Region, &voices, &cred.Shared, &createdAt)
	if err != nil {
		return nil, err
	}

	if voices.Valid && voices.String != "" {
		if err := json.Unmarshal([]byte(voices.String), &cred.Voices); err != nil {
			return nil, fmt.Errorf("parse voices: %w", err)
		}
	}

	cred.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}

	return &cred, nil
}

// marshalVoices serializes a voice snapshot to a JSON column value, NULL for nil.
func marshalVoices(voices []model.Voice) (any, error) {
	if voices == nil {
		return nil, nil
	}
	data, err := json.Marshal(voices)
	if err != nil {
		return nil, fmt.Errorf("marshal voices: %w", err)
	}
	return string(data), nil
}
