package driven

import (
	"context"

	"github.com/spellcast/speechvault/internal/domain/model"
)

// SubscriptionStore defines the driven port for subscription persistence.
// Subscriptions are created by the billing system; this service only reads
// them and moves the current-credential pointer.
type SubscriptionStore interface {
	// GetByUser returns the user's subscription, or model.ErrNotFound.
	GetByUser(ctx context.Context, userID string) (*model.Subscription, error)

	// SetCurrentCredential points the user's subscription at credentialID.
	// Returns model.ErrNotFound when the user has no subscription.
	SetCurrentCredential(ctx context.Context, userID, credentialID string) error

	// Insert creates a subscription row. Used by seeding and tests.
	Insert(ctx context.Context, sub model.Subscription) error
}
