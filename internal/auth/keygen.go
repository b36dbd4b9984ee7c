package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	errGenerateSecretFmt = "failed to generate secret: %w"
	errGenerateSaltFmt   = "failed to generate salt: %w"
)

// GenerateSecret returns a new raw API key secret. The secret is handed to
// the caller exactly once; only its hash and prefix are ever stored.
func GenerateSecret() (string, error) {
	buf := make([]byte, secretRandomBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf(errGenerateSecretFmt, err)
	}
	return SecretPrefix + base64.RawURLEncoding.EncodeToString(buf), nil
}

// GenerateSalt returns a new hex-encoded per-credential salt.
func GenerateSalt() (string, error) {
	buf := make([]byte, saltRandomBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf(errGenerateSaltFmt, err)
	}
	return hex.EncodeToString(buf), nil
}

// DeriveHash computes the hex-encoded PBKDF2-HMAC-SHA256 digest of a secret
// under the given salt and iteration count.
func DeriveHash(secret, salt string, iterations int) string {
	key := pbkdf2.Key([]byte(secret), []byte(salt), iterations, sha256.Size, sha256.New)
	return hex.EncodeToString(key)
}

// SecretPrefixOf returns the indexed lookup prefix of a raw secret.
func SecretPrefixOf(secret string, length int) string {
	if len(secret) < length {
		return secret
	}
	return secret[:length]
}

// constantTimeEquals compares two hex digests without leaking match position.
func constantTimeEquals(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
