package security

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const tokenByteLen = 16

// RandomTokenGenerator produces activation tokens from crypto/rand.
type RandomTokenGenerator struct{}

// NewRandomTokenGenerator creates a RandomTokenGenerator.
func NewRandomTokenGenerator() *RandomTokenGenerator {
	return &RandomTokenGenerator{}
}

// Generate returns a hex-encoded 128-bit random token.
func (g *RandomTokenGenerator) Generate() (string, error) {
	buf := make([]byte, tokenByteLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
