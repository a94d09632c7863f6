package token

import (
	"crypto/rand"
	"encoding/base64"
)

const tokenLength = 32

// New returns a URL-safe random token suitable for bearer auth.
func New() string {
	bytes := make([]byte, tokenLength)
	if _, err := rand.Read(bytes); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	return base64.RawURLEncoding.EncodeToString(bytes)
}
