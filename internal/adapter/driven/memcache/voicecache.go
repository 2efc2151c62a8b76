// Package memcache implements the VoiceCache port with an in-process
// expirable LRU. Entries expire passively after the configured TTL; there is
// no active invalidation path. Concurrent writers to the same key race
// last-write-wins, which is fine for idempotent provider metadata.
package memcache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/spellcast/speechvault/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.VoiceCache = (*VoiceCache)(nil)

// maxEntries bounds the cache at one entry per region with room to spare.
const maxEntries = 128

// VoiceCache is an in-memory TTL cache of serialized voice lists keyed by
// "voices:<region>".
type VoiceCache struct {
	lru *expirable.LRU[string, string]
}

// New creates a VoiceCache whose entries expire after ttl.
func New(ttl time.Duration) *VoiceCache {
	return &VoiceCache{
		lru: expirable.NewLRU[string, string](maxEntries, nil, ttl),
	}
}

// Get returns the cached value for key and whether a live entry was present.
func (c *VoiceCache) Get(key string) (string, bool) {
	return c.lru.Get(key)
}

// Set stores value under key, replacing any existing entry and restarting
// its TTL.
func (c *VoiceCache) Set(key, value string) {
	c.lru.Add(key, value)
}
