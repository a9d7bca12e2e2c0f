// Package cache provides the verdict cache used by the classifier
// capability. Keys are derived from provider, model, and sentence so a
// provider or model switch never serves stale verdicts.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable cache key from its parts
func Key(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return "negaposi:v1:" + hex.EncodeToString(hash[:])
}
