// Package azure implements the SpeechProvider port against the Azure
// Cognitive Services speech REST surface.
package azure

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gregjones/httpcache"

	"github.com/spellcast/speechvault/internal/domain/model"
	"github.com/spellcast/speechvault/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.SpeechProvider = (*Client)(nil)

const (
	// issueTokenURLFmt validates a subscription key by exchanging it for a
	// short-lived access token. The token itself is discarded; a 200 is the
	// only thing we care about.
	issueTokenURLFmt = "https://%s.api.cognitive.microsoft.com/sts/v1.0/issueToken"

	// voicesURLFmt lists the voices available in a region.
	voicesURLFmt = "https://%s.tts.speech.microsoft.com/cognitiveservices/voices/list"

	subscriptionKeyHeader = "Ocp-Apim-Subscription-Key"
)

// Client implements the driven.SpeechProvider port over plain HTTP with the
// following transport stack:
//  1. httpcache (conditional request caching for the voices endpoint)
//  2. net/http with a client-level timeout bounding every provider call
type Client struct {
	http          *http.Client
	issueTokenFmt string
	voicesFmt     string
}

// NewClient creates a speech client. timeout bounds each provider round trip;
// on expiry the call fails as model.ErrUpstreamUnavailable.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		http: &http.Client{
			Transport: httpcache.NewMemoryCacheTransport(),
			Timeout:   timeout,
		},
		issueTokenFmt: issueTokenURLFmt,
		voicesFmt:     voicesURLFmt,
	}
}

// NewClientWithURLFormats creates a Client with custom endpoint format
// strings (each containing one %s verb for the region) and http.Client.
// This constructor is intended for testing against httptest servers.
func NewClientWithURLFormats(httpClient *http.Client, issueTokenFmt, voicesFmt string) *Client {
	return &Client{
		http:          httpClient,
		issueTokenFmt: issueTokenFmt,
		voicesFmt:     voicesFmt,
	}
}

// Validate confirms that rawKey is accepted by the provider in region. A
// 401/403 from the token endpoint is model.ErrInvalidCredential; transport
// failures, timeouts, and unexpected statuses are model.ErrUpstreamUnavailable.
func (c *Client) Validate(ctx context.Context, region, rawKey string) error {
	url := fmt.Sprintf(c.issueTokenFmt, region)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set(subscriptionKeyHeader, rawKey)
	req.Header.Set("Content-Length", "0")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrUpstreamUnavailable, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: provider returned %d", model.ErrInvalidCredential, resp.StatusCode)
	default:
		return fmt.Errorf("%w: provider returned %d", model.ErrUpstreamUnavailable, resp.StatusCode)
	}
}

// FetchVoices returns the voices available in region. All failures surface as
// model.ErrUpstreamUnavailable; callers validate keys separately before this
// point.
func (c *Client) FetchVoices(ctx context.Context, region, rawKey string) ([]model.Voice, error) {
	url := fmt.Sprintf(c.voicesFmt, region)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build voices request: %w", err)
	}
	req.Header.Set(subscriptionKeyHeader, rawKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrUpstreamUnavailable, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: provider returned %d", model.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var voices []model.Voice
	if err := json.NewDecoder(resp.Body).Decode(&voices); err != nil {
		return nil, fmt.Errorf("%w: decode voices: %v", model.ErrUpstreamUnavailable, err)
	}

	slog.Debug("fetched voices from provider", "region", region, "count", len(voices))

	return voices, nil
}
