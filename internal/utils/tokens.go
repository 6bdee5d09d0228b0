package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateSecureToken returns a URL-safe random token built from n
// bytes of crypto/rand entropy.
func GenerateSecureToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("reading token entropy: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
