package fieldcrypt

import (
	"crypto/sha512"

	"golang.org/x/crypto/pbkdf2"
)

// DefaultIterations is the PBKDF2 round count used when none is configured.
const DefaultIterations = 10000

// Labels passed to PBKDF2 in the salt position. They are fixed and public;
// their only job is to separate key derivation from IV derivation.
const (
	labelKey = "fieldcrypt-encryption-key"
	labelIV  = "fieldcrypt-initialisation-vector"
)

const (
	keySize = 32 // AES-256
	ivSize  = 16 // AES block size
)

// derive runs PBKDF2-HMAC-SHA512 over secret with the given label.
// Output is deterministic for identical inputs, which the deterministic IV
// mode depends on.
func derive(secret []byte, label string, iterations, length int) ([]byte, error) {
	if iterations < 1 {
		return nil, ErrInvalidIterations
	}
	return pbkdf2.Key(secret, []byte(label), iterations, length, sha512.New), nil
}

// deriveKey derives the 256-bit AES key from the configured secret.
// The caller owns the result and must wipe it.
func deriveKey(secret []byte, iterations int) ([]byte, error) {
	return derive(secret, labelKey, iterations, keySize)
}

// deriveIV derives a 16-byte IV from a tag or the configured global IV.
func deriveIV(source string, iterations int) ([]byte, error) {
	return derive([]byte(source), labelIV, iterations, ivSize)
}

// wipe zeroes a buffer holding key material or plaintext.
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
