package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
)

// Store defines the category-partitioned cache used for external lookups.
// Each category carries its own TTL and capacity; entries older than their
// category TTL are treated as absent on read.
type Store interface {
	Get(category, key string) ([]byte, bool)
	Set(category, key string, value []byte)
	Invalidate(category, key string)
	Clear(category string) // Empty category clears everything
}

// Key derives a canonical cache key from lookup parameters. Fields are
// serialized in sorted order before hashing, so two logically identical
// queries always map to the same key regardless of field ordering.
func Key(category string, params map[string]string) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(category)
	for _, name := range names {
		b.WriteByte('|')
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(params[name])
	}

	hash := sha256.Sum256([]byte(b.String()))
	return "factly:v1:" + hex.EncodeToString(hash[:])
}

// GetJSON reads a cached value and unmarshals it into out
func GetJSON(s Store, category, key string, out any) bool {
	raw, ok := s.Get(category, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		// A corrupt entry is as good as a miss
		s.Invalidate(category, key)
		return false
	}
	return true
}

// SetJSON marshals a value and stores it. Marshal failures are dropped
// silently; caching is best effort.
func SetJSON(s Store, category, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	s.Set(category, key, raw)
}
