package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// keyPrefixLen is how many hex characters of the digest are used as the key.
const keyPrefixLen = 32

// KeyFor derives a filesystem-safe cache key from its parts. Parts are
// trimmed and joined with a NUL separator so ("a", "bc") and ("ab", "c")
// never collide.
func KeyFor(parts ...string) string {
	normalized := make([]string, len(parts))
	for i, p := range parts {
		normalized[i] = strings.TrimSpace(p)
	}
	sum := sha256.Sum256([]byte(strings.Join(normalized, "\x00")))
	return hex.EncodeToString(sum[:])[:keyPrefixLen]
}
