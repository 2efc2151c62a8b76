package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/spellcast/speechvault/internal/domain/model"
	"github.com/spellcast/speechvault/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.SubscriptionStore = (*SubscriptionRepo)(nil)

// SubscriptionRepo is the SQLite implementation of the SubscriptionStore port
// interface. Subscription rows are created by the billing system; this repo
// only reads them and moves the current-credential pointer.
type SubscriptionRepo struct {
	db *DB
}

// NewSubscriptionRepo creates a new SubscriptionRepo backed by the given DB.
func NewSubscriptionRepo(db *DB) *SubscriptionRepo {
	return &SubscriptionRepo{db: db}
}

// GetByUser returns the user's subscription, or model.ErrNotFound.
func (r *SubscriptionRepo) GetByUser(ctx context.Context, userID string) (*model.Subscription, error) {
	const query = `SELECT user_id, current_credential FROM subscriptions WHERE user_id = ?`

	var sub model.Subscription
	var current sql.NullString
	err := r.db.Reader.QueryRowContext(ctx, query, userID).Scan(&sub.UserID, &current)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get subscription: %w", err)
	}

	sub.CurrentCredential = current.String
	return &sub, nil
}

// SetCurrentCredential points the user's subscription at credentialID.
// Returns model.ErrNotFound when the user has no subscription row.
func (r *SubscriptionRepo) SetCurrentCredential(ctx context.Context, userID, credentialID string) error {
	const query = `UPDATE subscriptions SET current_credential = ? WHERE user_id = ?`

	result, err := r.db.Writer.ExecContext(ctx, query, credentialID, userID)
	if err != nil {
		return fmt.Errorf("set current credential: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set current credential rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrNotFound
	}
	return nil
}

// Insert creates a subscription row.
func (r *SubscriptionRepo) Insert(ctx context.Context, sub model.Subscription) error {
	const query = `INSERT INTO subscriptions (user_id, current_credential) VALUES (?, ?)`

	var current any
	if sub.CurrentCredential != "" {
		current = sub.CurrentCredential
	}

	if _, err := r.db.Writer.ExecContext(ctx, query, sub.UserID, current); err != nil {
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}
