package application

import (
	"context"
	"log/slog"

	"github.com/spellcast/speechvault/internal/domain/port/driven"
)

// SubscriptionService binds a user's subscription to one of their
// credentials. It is the only writer of the current-credential pointer.
type SubscriptionService struct {
	creds  driven.CredentialStore
	subs   driven.SubscriptionStore
	logger *slog.Logger
}

// NewSubscriptionService creates a SubscriptionService with the required dependencies.
func NewSubscriptionService(
	creds driven.CredentialStore,
	subs driven.SubscriptionStore,
	logger *slog.Logger,
) *SubscriptionService {
	return &SubscriptionService{
		creds:  creds,
		subs:   subs,
		logger: logger,
	}
}

// SetCurrent points userID's subscription at credentialID and returns the
// newly bound id. The credential must exist and be owned by userID; when the
// ownership check fails the subscription is left untouched and
// model.ErrNotFound is returned. Fail closed, never open.
func (s *SubscriptionService) SetCurrent(ctx context.Context, userID, credentialID string) (string, error) {
	if _, err := s.creds.GetOwned(ctx, credentialID, userID); err != nil {
		return "", err
	}

	if err := s.subs.SetCurrentCredential(ctx, userID, credentialID); err != nil {
		return "", err
	}

	s.logger.Info("current credential updated", "credential_id", credentialID)

	return credentialID, nil
}
