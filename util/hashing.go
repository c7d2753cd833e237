package util

import (
	"crypto/sha256"
	"encoding/base64"
)

// GetSha256Base64OfBytes is the content fingerprint used throughout the
// manifest and placeholder metadata.
func GetSha256Base64OfBytes(b []byte) string {
	hash := sha256.Sum256(b)
	return base64.StdEncoding.EncodeToString(hash[:])
}
