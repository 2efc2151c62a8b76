package driven

import (
	"context"

	"github.com/spellcast/speechvault/internal/domain/model"
)

// CredentialStore defines the driven port for credential persistence.
// Values are stored encrypted; this interface never sees plaintext keys.
//
// Every per-credential operation takes the owning user's id and must enforce
// it inside the query itself (id AND user_id), so a credential belonging to
// another user is indistinguishable from one that does not exist.
type CredentialStore interface {
	// Insert persists a new credential.
	Insert(ctx context.Context, cred model.Credential) error

	// GetOwned returns the credential with the given id owned by userID.
	// Returns model.ErrNotFound when no such row exists or the owner differs.
	GetOwned(ctx context.Context, id, userID string) (*model.Credential, error)

	// ListByUser returns all credentials owned by userID, oldest first.
	ListByUser(ctx context.Context, userID string) ([]model.Credential, error)

	// Update rewrites the mutable fields (encrypted key, region, voices,
	// shared) of the credential identified by cred.ID and cred.UserID.
	// Returns model.ErrNotFound when the ownership match fails.
	Update(ctx context.Context, cred model.Credential) error

	// Delete removes the credential with the given id owned by userID.
	// Returns model.ErrNotFound when the ownership match fails.
	Delete(ctx context.Context, id, userID string) error
}
