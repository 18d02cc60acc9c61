package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for the byte-level cache backends
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error

	// Sweep purges expired entries. Backends that expire lazily use
	// this for the periodic retention pass.
	Sweep() error
}

// Key generates a cache key from a URL
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "trustlens:v1:" + hex.EncodeToString(hash[:])
}
