// Package application holds the domain services. Services depend only on
// port interfaces and the secret cipher; all I/O lives behind the ports.
package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/spellcast/speechvault/internal/domain/model"
	"github.com/spellcast/speechvault/internal/domain/port/driven"
	"github.com/spellcast/speechvault/internal/region"
	"github.com/spellcast/speechvault/internal/secret"
)

// MaskedCredential is a credential rendered safe for display: the key is
// masked, never the raw plaintext.
type MaskedCredential struct {
	ID     string
	Region string
	Key    string // Masked form.
	Voices []model.Voice
	Shared bool
}

// CredentialDetail is the single-credential read result. Key is masked
// unless the caller asked for reveal.
type CredentialDetail struct {
	Key    string
	Region string
}

// CredentialPatch carries the fields an update may change. Nil fields are
// left untouched.
type CredentialPatch struct {
	Region *string
	Key    *string
	Voices *[]model.Voice
	Shared *bool
}

// CredentialService owns the credential lifecycle. Writes pass through the
// region allow-list and the provider validation before anything is encrypted
// and persisted; reads pass through the masker. Provider calls happen with no
// lock held and are bounded by the provider client's timeout.
type CredentialService struct {
	users    driven.UserStore
	creds    driven.CredentialStore
	provider driven.SpeechProvider
	cache    driven.VoiceCache
	cipher   *secret.Cipher
	logger   *slog.Logger
}

// NewCredentialService creates a CredentialService with the required dependencies.
func NewCredentialService(
	users driven.UserStore,
	creds driven.CredentialStore,
	provider driven.SpeechProvider,
	cache driven.VoiceCache,
	cipher *secret.Cipher,
	logger *slog.Logger,
) *CredentialService {
	return &CredentialService{
		users:    users,
		creds:    creds,
		provider: provider,
		cache:    cache,
		cipher:   cipher,
		logger:   logger,
	}
}

// Create validates region and key, encrypts the key, and persists a new
// credential owned by userID. The region allow-list is checked before any
// provider call so a bad region never costs a network round trip. The raw
// key is never echoed back; only the new credential's id is returned.
func (s *CredentialService) Create(ctx context.Context, userID, regionCode, rawKey string) (string, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return "", err
	}

	if !region.Valid(regionCode) {
		return "", fmt.Errorf("region %q: %w", regionCode, model.ErrInvalidRegion)
	}

	if err := s.provider.Validate(ctx, regionCode, rawKey); err != nil {
		return "", err
	}

	encrypted, err := s.cipher.Encrypt(rawKey)
	if err != nil {
		return "", fmt.Errorf("encrypt credential: %w", err)
	}

	cred := model.Credential{
		ID:           uuid.NewString(),
		UserID:       userID,
		EncryptedKey: encrypted,
		Region:       regionCode,
	}
	if err := s.creds.Insert(ctx, cred); err != nil {
		return "", err
	}

	s.logger.Info("credential created", "credential_id", cred.ID, "region", regionCode)

	return cred.ID, nil
}

// List returns all of userID's credentials with masked keys.
func (s *CredentialService) List(ctx context.Context, userID string) ([]MaskedCredential, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.maskedList(ctx, userID)
}

// Get returns one credential owned by userID. The key is masked unless
// reveal is true, in which case the full decrypted secret is returned.
func (s *CredentialService) Get(ctx context.Context, userID, id string, reveal bool) (*CredentialDetail, error) {
	cred, err := s.creds.GetOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	plaintext, err := s.decrypt(*cred)
	if err != nil {
		return nil, err
	}

	key := secret.Mask(plaintext)
	if reveal {
		key = plaintext
	}

	return &CredentialDetail{Key: key, Region: cred.Region}, nil
}

// Update applies a partial patch to one of userID's credentials. A region
// change is checked against the allow-list; when both region and key change
// the pair is re-validated against the provider before either is applied. A
// key-only change is re-encrypted without re-validation. Returns the user's
// full masked credential list on success.
func (s *CredentialService) Update(ctx context.Context, userID, id string, patch CredentialPatch) ([]MaskedCredential, error) {
	cred, err := s.creds.GetOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if patch.Region != nil && !region.Valid(*patch.Region) {
		return nil, fmt.Errorf("region %q: %w", *patch.Region, model.ErrInvalidRegion)
	}

	if patch.Region != nil && patch.Key != nil {
		if err := s.provider.Validate(ctx, *patch.Region, *patch.Key); err != nil {
			return nil, err
		}
	}

	if patch.Key != nil {
		encrypted, err := s.cipher.Encrypt(*patch.Key)
		if err != nil {
			return nil, fmt.Errorf("encrypt credential: %w", err)
		}
		cred.EncryptedKey = encrypted
	}
	if patch.Region != nil {
		cred.Region = *patch.Region
	}
	if patch.Voices != nil {
		cred.Voices = *patch.Voices
	}
	if patch.Shared != nil {
		cred.Shared = *patch.Shared
	}

	if err := s.creds.Update(ctx, *cred); err != nil {
		return nil, err
	}

	return s.maskedList(ctx, userID)
}

// Delete removes one of userID's credentials and returns the remaining
// masked list.
func (s *CredentialService) Delete(ctx context.Context, userID, id string) ([]MaskedCredential, error) {
	if err := s.creds.Delete(ctx, id, userID); err != nil {
		return nil, err
	}
	return s.maskedList(ctx, userID)
}

// Voices returns the provider voice list for the credential's region,
// serving from the region-keyed cache when a live entry exists. Two
// credentials sharing a region share one cache entry, so the provider is
// hit at most once per region per TTL window.
func (s *CredentialService) Voices(ctx context.Context, userID, id string) ([]model.Voice, error) {
	cred, err := s.creds.GetOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	rawKey, err := s.decrypt(*cred)
	if err != nil {
		return nil, err
	}

	cacheKey := "voices:" + cred.Region
	if cached, ok := s.cache.Get(cacheKey); ok {
		var voices []model.Voice
		if err := json.Unmarshal([]byte(cached), &voices); err == nil {
			return voices, nil
		}
		// Unreadable entry: fall through and refetch.
		s.logger.Warn("discarding corrupt voice cache entry", "key", cacheKey)
	}

	voices, err := s.provider.FetchVoices(ctx, cred.Region, rawKey)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(voices); err == nil {
		s.cache.Set(cacheKey, string(data))
	}

	return voices, nil
}

// maskedList builds the masked view of all of userID's credentials.
func (s *CredentialService) maskedList(ctx context.Context, userID string) ([]MaskedCredential, error) {
	creds, err := s.creds.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	masked := make([]MaskedCredential, 0, len(creds))
	for _, cred := range creds {
		plaintext, err := s.decrypt(cred)
		if err != nil {
			return nil, err
		}
		masked = append(masked, MaskedCredential{
			ID:     cred.ID,
			Region: cred.Region,
			Key:    secret.Mask(plaintext),
			Voices: cred.Voices,
			Shared: cred.Shared,
		})
	}

	return masked, nil
}

// decrypt recovers the plaintext key, logging failures. A decrypt failure is
// an internal error and is never reported as not-found.
func (s *CredentialService) decrypt(cred model.Credential) (string, error) {
	plaintext, err := s.cipher.Decrypt(cred.EncryptedKey)
	if err != nil {
		s.logger.Error("failed to decrypt stored credential", "credential_id", cred.ID, "error", err)
		return "", fmt.Errorf("credential %s: %w", cred.ID, err)
	}
	return plaintext, nil
}

// requireUser maps an unknown user identity to model.ErrNotFound.
func (s *CredentialService) requireUser(ctx context.Context, userID string) error {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("user: %w", model.ErrNotFound)
	}
	return nil
}
