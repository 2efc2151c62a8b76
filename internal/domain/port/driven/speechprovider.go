package driven

import (
	"context"

	"github.com/spellcast/speechvault/internal/domain/model"
)

// SpeechProvider defines the driven port for the external speech service.
// Both operations are network round trips; implementations must bound them
// with a timeout and must keep the two failure modes apart: a rejected key
// is model.ErrInvalidCredential, an unreachable or erroring provider is
// model.ErrUpstreamUnavailable. Conflating them would force users to re-enter
// a perfectly good key whenever the provider has an outage.
type SpeechProvider interface {
	// Validate confirms that rawKey is accepted by the provider in region.
	Validate(ctx context.Context, region, rawKey string) error

	// FetchVoices returns the voices available in region.
	FetchVoices(ctx context.Context, region, rawKey string) ([]model.Voice, error)
}
