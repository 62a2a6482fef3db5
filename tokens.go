package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"

	"github.com/goliatone/go-errors"
)

const refreshSecretBytes = 32

// GenerateRefreshSecret returns a fresh 256-bit opaque refresh secret,
// hex encoded. This is the raw value handed to the caller at login; only
// its keyed hash is ever stored.
func GenerateRefreshSecret() (string, error) {
	buf := make([]byte, refreshSecretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to generate refresh secret")
	}
	return hex.EncodeToString(buf), nil
}

// HashRefreshSecret computes the keyed hash under which a refresh secret
// is stored and looked up. HMAC-SHA256 with the server-side key, so a
// leaked table of hashes is useless without the key.
func HashRefreshSecret(raw string, key []byte) string {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(raw))
	return hex.EncodeToString(mac.Sum(nil))
}
