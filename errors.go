package fieldcrypt

import (
	"errors"
	"fmt"
)

// Kind classifies every error returned by this package.
// The set is closed: callers can switch on it exhaustively.
type Kind uint8

const (
	// KindUnknown is reported for errors that did not originate here
	// (for example a failing entropy source).
	KindUnknown Kind = iota

	// KindConfig covers invalid or unusable configuration. Fatal, not retried.
	KindConfig

	// KindDecode covers malformed base64 and truncated envelopes.
	KindDecode

	// KindDecryption covers padding, alignment and content failures after
	// decryption. Wrong key and corrupted data both land here.
	KindDecryption
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindDecode:
		return "decode"
	case KindDecryption:
		return "decryption"
	default:
		return "unknown"
	}
}

var (
	// ErrConfig is the parent of every configuration error.
	ErrConfig = errors.New("fieldcrypt: invalid configuration")

	// ErrDecode is the parent of every envelope decoding error.
	ErrDecode = errors.New("fieldcrypt: malformed ciphertext")

	// ErrDecryptionFailed indicates a padding or block alignment failure
	// (wrong key, wrong tag, or corrupted data).
	ErrDecryptionFailed = errors.New("fieldcrypt: decryption failed")
)

var (
	// ErrEmptySecret indicates no secret passphrase was configured.
	ErrEmptySecret = fmt.Errorf("%w: secret must not be empty", ErrConfig)

	// ErrInvalidIterations indicates a non-positive KDF iteration count.
	ErrInvalidIterations = fmt.Errorf("%w: iterations must be at least 1", ErrConfig)

	// ErrCipherClosed indicates the cipher was used after Close() was called.
	ErrCipherClosed = fmt.Errorf("%w: cipher is closed", ErrConfig)

	// ErrInvalidSchema indicates a field declaration that cannot be used.
	ErrInvalidSchema = fmt.Errorf("%w: invalid field schema", ErrConfig)

	// ErrNotSearchable indicates an equality search on a protected column
	// that is encrypted with random IVs.
	ErrNotSearchable = fmt.Errorf("%w: column is not searchable", ErrConfig)

	// ErrTruncated indicates the decoded envelope is too short to hold a ciphertext.
	ErrTruncated = fmt.Errorf("%w: envelope truncated", ErrDecode)

	// ErrDecompressionFailed indicates zstd decompression of a decrypted value failed.
	ErrDecompressionFailed = fmt.Errorf("%w: decompression failed", ErrDecryptionFailed)
)

// KindOf reports the Kind of err, looking through wrapped errors.
// A nil error is KindUnknown.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrConfig):
		return KindConfig
	case errors.Is(err, ErrDecode):
		return KindDecode
	case errors.Is(err, ErrDecryptionFailed):
		return KindDecryption
	default:
		return KindUnknown
	}
}
