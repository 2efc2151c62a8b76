package sqlite

import (
	"context"
	"fmt"

	"github.com/spellcast/speechvault/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.UserStore = (*UserRepo)(nil)

// UserRepo is the SQLite implementation of the UserStore port interface.
type UserRepo struct {
	db *DB
}

// NewUserRepo creates a new UserRepo backed by the given DB.
func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{db: db}
}

// Exists reports whether a user with the given id is known.
func (r *UserRepo) Exists(ctx context.Context, id string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE id = ?)`

	var exists bool
	if err := r.db.Reader.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return exists, nil
}

// Insert creates a user row.
func (r *UserRepo) Insert(ctx context.Context, id, email string) error {
	const query = `INSERT INTO users (id, email) VALUES (?, ?)`

	if _, err := r.db.Writer.ExecContext(ctx, query, id, email); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}
