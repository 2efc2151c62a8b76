package driven

// VoiceCache defines the driven port for the region-keyed provider-metadata
// cache. Keys follow the "voices:<region>" scheme and values are serialized
// voice lists; entries expire passively via the adapter's TTL. The cache is
// shared across credentials and users on purpose: it bounds provider calls
// per region, not per credential. Concurrent writers race last-write-wins.
type VoiceCache interface {
	// Get returns the cached value for key and whether it was present.
	Get(key string) (string, bool)

	// Set stores value under key, replacing any existing entry.
	Set(key, value string)
}
