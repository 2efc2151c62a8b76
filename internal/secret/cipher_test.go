package secret

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spellcast/speechvault/internal/domain/model"
)

func testKey() []byte {
	return []byte("0123456789abcdef0123456789abcdef")
}

func TestNew_RejectsWrongKeyLength(t *testing.T) {
	_, err := New([]byte("too-short"))
	require.Error(t, err)

	_, err = New(nil)
	require.Error(t, err)
}

func TestCipher_RoundTrip(t *testing.T) {
	c, err := New(testKey())
	require.NoError(t, err)

	for _, plaintext := range []string{
		"",
		"k",
		"8f2a1c9e4b7d6a3f8e1b5c2d9a4e7f0b",
		strings.Repeat("x", 4096),
		"käy-ünïcode-密钥",
	} {
		encrypted, err := c.Encrypt(plaintext)
		require.NoError(t, err)
		assert.NotEqual(t, plaintext, encrypted)

		decrypted, err := c.Decrypt(encrypted)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	}
}

func TestCipher_EncryptIsNonDeterministic(t *testing.T) {
	c, err := New(testKey())
	require.NoError(t, err)

	first, err := c.Encrypt("same-secret")
	require.NoError(t, err)
	second, err := c.Encrypt("same-secret")
	require.NoError(t, err)

	// Random nonces mean two encryptions of one plaintext differ.
	assert.NotEqual(t, first, second)
}

func TestCipher_DecryptMalformed(t *testing.T) {
	c, err := New(testKey())
	require.NoError(t, err)

	for name, encoded := range map[string]string{
		"not base64":      "!!!not-base64!!!",
		"too short":       "YWJj", // "abc", shorter than a nonce
		"garbage payload": "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA",
	} {
		_, err := c.Decrypt(encoded)
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, model.ErrDecryption), name)
	}
}

func TestCipher_DecryptForeignCiphertext(t *testing.T) {
	a, err := New(testKey())
	require.NoError(t, err)
	b, err := New([]byte("fedcba9876543210fedcba9876543210"))
	require.NoError(t, err)

	encrypted, err := a.Encrypt("secret")
	require.NoError(t, err)

	_, err = b.Decrypt(encrypted)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrDecryption))
}

func TestMask(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ABCDEFGH12345678", "ABCD************"},
		{"ABCDE", "ABCD*"},
		{"ABCD", "****"},
		{"AB", "**"},
		{"A", "*"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Mask(tt.in), "Mask(%q)", tt.in)
	}
}

func TestMask_NeverEchoesSecret(t *testing.T) {
	for _, s := range []string{"abcde", "0123456789", strings.Repeat("k", 64)} {
		assert.NotEqual(t, s, Mask(s))
		assert.Len(t, Mask(s), len(s))
	}
}
