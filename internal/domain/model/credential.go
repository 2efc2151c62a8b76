package model

import "time"

// Credential is a stored speech-service API key bound to a cloud region.
// EncryptedKey holds the AES-GCM ciphertext of the raw key (base64); the
// plaintext exists only transiently inside the application layer and is
// never stored or logged.
type Credential struct {
	ID           string
	UserID       string
	EncryptedKey string
	Region       string
	Voices       []Voice // Cached voice snapshot; nil when never fetched.
	Shared       bool
	CreatedAt    time.Time
}

// Voice describes a single synthesis voice offered by the provider in a
// given region.
type Voice struct {
	Name      string `json:"Name"`
	ShortName string `json:"ShortName"`
	Locale    string `json:"Locale"`
	Gender    string `json:"Gender"`
}

// Subscription tracks which credential a user's subscription currently uses.
// CurrentCredential is empty until the user picks one.
type Subscription struct {
	UserID            string
	CurrentCredential string
}
