package config

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validKey() string {
	return base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))
}

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("SPEECHVAULT_SECRET_KEY", validKey())
	t.Setenv("SPEECHVAULT_AUTH_SECRET", "test-auth-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Len(t, cfg.SecretKey, 32)
	assert.Equal(t, []byte("test-auth-secret"), cfg.AuthSecret)
	assert.Equal(t, "127.0.0.1:8080", cfg.ListenAddr)
	assert.Equal(t, "speechvault.db", cfg.DBPath)
	assert.Equal(t, "http://127.0.0.1:9000/speechvault", cfg.StorageBaseURL)
	assert.Equal(t, 5*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, time.Hour, cfg.VoicesCacheTTL)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("SPEECHVAULT_LISTEN_ADDR", "0.0.0.0:9090")
	t.Setenv("SPEECHVAULT_DB_PATH", "/data/vault.db")
	t.Setenv("SPEECHVAULT_STORAGE_BASE_URL", "https://uploads.example.com/vault")
	t.Setenv("SPEECHVAULT_PROVIDER_TIMEOUT", "10s")
	t.Setenv("SPEECHVAULT_VOICES_CACHE_TTL", "30m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddr)
	assert.Equal(t, "/data/vault.db", cfg.DBPath)
	assert.Equal(t, "https://uploads.example.com/vault", cfg.StorageBaseURL)
	assert.Equal(t, 10*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, 30*time.Minute, cfg.VoicesCacheTTL)
}

func TestLoad_MissingSecretKey(t *testing.T) {
	t.Setenv("SPEECHVAULT_SECRET_KEY", "")
	t.Setenv("SPEECHVAULT_AUTH_SECRET", "s")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SPEECHVAULT_SECRET_KEY")
}

func TestLoad_SecretKeyNotBase64(t *testing.T) {
	t.Setenv("SPEECHVAULT_SECRET_KEY", "!!!not-base64!!!")
	t.Setenv("SPEECHVAULT_AUTH_SECRET", "s")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base64")
}

func TestLoad_SecretKeyWrongLength(t *testing.T) {
	t.Setenv("SPEECHVAULT_SECRET_KEY", base64.StdEncoding.EncodeToString([]byte("short")))
	t.Setenv("SPEECHVAULT_AUTH_SECRET", "s")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "32 bytes")
}

func TestLoad_MissingAuthSecret(t *testing.T) {
	t.Setenv("SPEECHVAULT_SECRET_KEY", validKey())
	t.Setenv("SPEECHVAULT_AUTH_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SPEECHVAULT_AUTH_SECRET")
}

func TestLoad_InvalidDuration(t *testing.T) {
	setRequired(t)
	t.Setenv("SPEECHVAULT_PROVIDER_TIMEOUT", "not-a-duration")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SPEECHVAULT_PROVIDER_TIMEOUT")
}
