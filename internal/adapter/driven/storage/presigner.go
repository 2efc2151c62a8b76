// Package storage issues presigned upload URLs against an S3-compatible
// object store. Signing is HMAC-SHA256 over the object key and expiry, which
// the store's upload gateway verifies before accepting the PUT.
package storage

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const uploadTTL = 15 * time.Minute

// Presigner builds time-limited upload URLs under a fixed bucket base URL.
type Presigner struct {
	baseURL string
	secret  []byte
	now     func() time.Time
}

// New creates a Presigner. baseURL is the bucket root, without a trailing
// slash; secret is the shared signing key.
func New(baseURL string, secret []byte) *Presigner {
	return &Presigner{
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  secret,
		now:     time.Now,
	}
}

// PresignUpload returns a URL the client can PUT the object to. The URL is
// valid for fifteen minutes.
func (p *Presigner) PresignUpload(_ context.Context, key, contentType string) (string, error) {
	expires := p.now().Add(uploadTTL).Unix()

	mac := hmac.New(sha256.New, p.secret)
	fmt.Fprintf(mac, "PUT\n%s\n%s\n%d", key, contentType, expires)
	signature := hex.EncodeToString(mac.Sum(nil))

	q := url.Values{}
	q.Set("expires", strconv.FormatInt(expires, 10))
	q.Set("signature", signature)

	// Escape each path segment but keep the key's slashes.
	escaped := (&url.URL{Path: key}).EscapedPath()

	return fmt.Sprintf("%s/%s?%s", p.baseURL, strings.TrimPrefix(escaped, "/"), q.Encode()), nil
}
