// Package config loads application configuration from environment variables.
package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"time"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	// SecretKey is the 32-byte AES-256 key credentials are encrypted with.
	// Fixed for the process lifetime; there is no rotation path.
	SecretKey []byte
	// AuthSecret is the HS256 signing secret bearer tokens are verified with.
	AuthSecret      []byte
	ListenAddr      string
	DBPath          string
	StorageBaseURL  string
	ProviderTimeout time.Duration
	VoicesCacheTTL  time.Duration
}

// Load reads configuration from environment variables and returns a validated
// Config. Required: SPEECHVAULT_SECRET_KEY (base64, 32 bytes decoded) and
// SPEECHVAULT_AUTH_SECRET. Optional with defaults: SPEECHVAULT_LISTEN_ADDR
// (127.0.0.1:8080), SPEECHVAULT_DB_PATH (speechvault.db),
// SPEECHVAULT_STORAGE_BASE_URL (http://127.0.0.1:9000/speechvault),
// SPEECHVAULT_PROVIDER_TIMEOUT (5s), SPEECHVAULT_VOICES_CACHE_TTL (1h).
func Load() (*Config, error) {
	encodedKey := os.Getenv("SPEECHVAULT_SECRET_KEY")
	if encodedKey == "" {
		return nil, fmt.Errorf("SPEECHVAULT_SECRET_KEY is required")
	}
	secretKey, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("SPEECHVAULT_SECRET_KEY is not valid base64: %w", err)
	}
	if len(secretKey) != 32 {
		return nil, fmt.Errorf("SPEECHVAULT_SECRET_KEY must decode to 32 bytes, got %d", len(secretKey))
	}

	authSecret := os.Getenv("SPEECHVAULT_AUTH_SECRET")
	if authSecret == "" {
		return nil, fmt.Errorf("SPEECHVAULT_AUTH_SECRET is required")
	}

	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("SPEECHVAULT_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	dbPath := "speechvault.db"
	if v, ok := os.LookupEnv("SPEECHVAULT_DB_PATH"); ok {
		dbPath = v
	}

	storageBaseURL := "http://127.0.0.1:9000/speechvault"
	if v, ok := os.LookupEnv("SPEECHVAULT_STORAGE_BASE_URL"); ok {
		storageBaseURL = v
	}

	providerTimeout := 5 * time.Second
	if v, ok := os.LookupEnv("SPEECHVAULT_PROVIDER_TIMEOUT"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("SPEECHVAULT_PROVIDER_TIMEOUT has invalid duration %q: %w", v, err)
		}
		providerTimeout = parsed
	}

	voicesCacheTTL := time.Hour
	if v, ok := os.LookupEnv("SPEECHVAULT_VOICES_CACHE_TTL"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("SPEECHVAULT_VOICES_CACHE_TTL has invalid duration %q: %w", v, err)
		}
		voicesCacheTTL = parsed
	}

	return &Config{
		SecretKey:       secretKey,
		AuthSecret:      []byte(authSecret),
		ListenAddr:      listenAddr,
		DBPath:          dbPath,
		StorageBaseURL:  storageBaseURL,
		ProviderTimeout: providerTimeout,
		VoicesCacheTTL:  voicesCacheTTL,
	}, nil
}
