package driven

import "context"

// UserStore defines the driven port for user identity lookups. Users are
// created by the accounts system; this service only verifies that a resolved
// identity still exists.
type UserStore interface {
	// Exists reports whether a user with the given id is known.
	Exists(ctx context.Context, id string) (bool, error)

	// Insert creates a user row. Used by seeding and tests; the accounts
	// system owns user creation in production.
	Insert(ctx context.Context, id, email string) error
}
