package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// keyPrefixLen is how many hex characters of a key are shown in listings.
const keyPrefixLen = 12

// Key derives the storage key for a command string: the lowercase hex
// SHA-256 digest of the exact command text. Identical text always maps to
// the same key; the 256-bit digest makes collisions between distinct
// commands cryptographically negligible.
func Key(command string) string {
	sum := sha256.Sum256([]byte(command))
	return hex.EncodeToString(sum[:])
}

// KeyPrefix returns a short display form of a key for listings and logs.
func KeyPrefix(key string) string {
	if len(key) <= keyPrefixLen {
		return key
	}
	return key[:keyPrefixLen]
}
