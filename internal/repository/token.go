package repository

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// newToken returns a 256-bit random opaque token, base64url encoded without
// padding so it survives cookies and query strings unescaped.
func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
