package model

import "errors"

// Domain error sentinels. The application layer returns these (possibly
// wrapped); the HTTP adapter maps them to status codes with errors.Is.
var (
	// ErrNotFound covers both genuinely missing entities and entities owned
	// by a different user. The two cases are deliberately indistinguishable
	// to callers.
	ErrNotFound = errors.New("not found")

	// ErrInvalidRegion means the region is not in the provider allow-list.
	ErrInvalidRegion = errors.New("invalid region")

	// ErrInvalidCredential means the provider rejected the key/region pair.
	ErrInvalidCredential = errors.New("credential rejected by provider")

	// ErrUpstreamUnavailable means the provider could not be reached or
	// timed out. Distinct from ErrInvalidCredential so callers can retry
	// without re-prompting for a new key.
	ErrUpstreamUnavailable = errors.New("speech provider unavailable")

	// ErrDecryption means stored ciphertext could not be decrypted. This is
	// an internal failure and must never be reported as not-found.
	ErrDecryption = errors.New("cannot decrypt stored credential")
)
