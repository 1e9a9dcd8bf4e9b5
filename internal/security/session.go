package security

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NewSessionHandle generates an opaque session bearer handle. 32 random bytes
// make collisions a non-issue; uniqueness rests on entropy, not on a store
// constraint.
func NewSessionHandle() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session handle: %w", err)
	}
	return "session_" + hex.EncodeToString(buf), nil
}
