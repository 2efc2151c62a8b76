package storage

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresignUpload(t *testing.T) {
	p := New("http://127.0.0.1:9000/speechvault/", []byte("signing-secret"))
	frozen := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return frozen }

	signed, err := p.PresignUpload(context.Background(), "pdf/doc-1-intro.pdf", "application/pdf")
	require.NoError(t, err)

	u, err := url.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "/speechvault/pdf/doc-1-intro.pdf", u.Path)

	expires := u.Query().Get("expires")
	assert.Equal(t, fmt.Sprintf("%d", frozen.Add(uploadTTL).Unix()), expires)

	mac := hmac.New(sha256.New, []byte("signing-secret"))
	fmt.Fprintf(mac, "PUT\npdf/doc-1-intro.pdf\napplication/pdf\n%s", expires)
	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), u.Query().Get("signature"))
}

func TestPresignUpload_EscapesKeySegments(t *testing.T) {
	p := New("http://127.0.0.1:9000/speechvault", []byte("signing-secret"))

	signed, err := p.PresignUpload(context.Background(), "text/plain/doc-2-my notes.txt", "text/plain")
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(signed, "http://127.0.0.1:9000/speechvault/text/plain/doc-2-my%20notes.txt?"),
		"got %s", signed)
}
