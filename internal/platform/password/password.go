// Package password implements the credential digest scheme: a hex-encoded
// SHA-256 of the plaintext, stored in place of the password and compared by
// digest equality.
package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// Hash returns the deterministic digest of plain.
func Hash(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

// Verify reports whether plain hashes to digest. An empty stored digest
// never matches.
func Verify(plain, digest string) bool {
	if digest == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(Hash(plain)), []byte(digest)) == 1
}
