package fieldcrypt

import (
	"crypto/aes"
	"encoding/base64"
	"fmt"
)

// Envelope layout before base64 (standard alphabet, padded):
//
//	deterministic mode: [ciphertext]
//	random mode:        [iv:16][ciphertext]
//
// ciphertext is AES-256-CBC with PKCS#7 padding, so it is always a non-zero
// multiple of 16 bytes. There is no version byte and no authentication tag.

// encodeEnvelope base64-encodes the assembled envelope.
func encodeEnvelope(envelope []byte) string {
	return base64.StdEncoding.EncodeToString(envelope)
}

// decodeEnvelope base64-decodes a stored value.
func decodeEnvelope(s string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return data, nil
}

// splitEnvelope separates the IV prefix from the ciphertext.
// In deterministic mode the IV is not stored and iv is nil.
func splitEnvelope(data []byte, mode ivMode) (iv, ciphertext []byte, err error) {
	if mode.deterministic() {
		if len(data) < aes.BlockSize {
			return nil, nil, ErrTruncated
		}
		return nil, data, nil
	}

	if len(data) < ivSize+aes.BlockSize {
		return nil, nil, ErrTruncated
	}
	return data[:ivSize], data[ivSize:], nil
}
