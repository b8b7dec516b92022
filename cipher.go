package fieldcrypt

import (
	"crypto/aes"
	"log/slog"
	"sync/atomic"
	"unicode/utf8"
)

// Cipher protects and unprotects individual text values for storage.
// It is safe for concurrent use: configuration is read-only after New, and
// every call derives its own key and block cipher.
//
// No key material is cached. The AES key (and a deterministic IV, when one is
// used) is derived with PBKDF2 on each call and wiped before the call returns.
type Cipher struct {
	config *config
	closed atomic.Bool // true after Close() called
}

// config holds cipher configuration options.
type config struct {
	secret            []byte
	globalIV          string
	iterations        int
	compression       bool
	emptyStringAsNull bool
	logger            *slog.Logger
}

// defaultConfig returns the default configuration.
func defaultConfig() *config {
	return &config{
		iterations: DefaultIterations,
		logger:     slog.New(slog.DiscardHandler),
	}
}

// New creates a new Cipher with the given options.
// A secret must be provided via WithSecret.
//
// Example:
//
//	cipher, err := fieldcrypt.New(
//	    fieldcrypt.WithSecret(os.Getenv("DATABASE_KEY")),
//	    fieldcrypt.WithIterations(10000),
//	)
func New(opts ...Option) (*Cipher, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if len(cfg.secret) == 0 {
		return nil, ErrEmptySecret
	}
	if cfg.iterations < 1 {
		wipe(cfg.secret)
		return nil, ErrInvalidIterations
	}

	return &Cipher{config: cfg}, nil
}

// Protect encrypts value for storage. A non-empty tag forces deterministic
// encryption keyed on that exact string; otherwise the global IV (if
// configured) is used, and failing that a random IV is embedded.
//
// Returns nil, nil if value is nil (NULL preservation).
func (c *Cipher) Protect(value *string, tag string) (*string, error) {
	if c.closed.Load() {
		return nil, ErrCipherClosed
	}
	if value == nil {
		return nil, nil // NULL preservation
	}
	if c.config.emptyStringAsNull && *value == "" {
		return nil, nil
	}

	out, err := c.protect(*value, tag)
	if err != nil {
		c.logFailure("protect", tag, err)
		return nil, err
	}
	return &out, nil
}

// Unprotect decrypts a stored value. tag must be the one used by Protect;
// a different tag yields ErrDecryptionFailed or, since the format is not
// authenticated, occasionally a different string.
//
// Returns nil, nil if value is nil (NULL preservation).
func (c *Cipher) Unprotect(value *string, tag string) (*string, error) {
	if c.closed.Load() {
		return nil, ErrCipherClosed
	}
	if value == nil {
		return nil, nil // NULL preservation
	}

	out, err := c.unprotect(*value, tag)
	if err != nil {
		c.logFailure("unprotect", tag, err)
		return nil, err
	}
	return &out, nil
}

// IsDeterministic reports whether values protected with tag produce the same
// ciphertext on every call, which is what equality search needs.
func (c *Cipher) IsDeterministic(tag string) bool {
	return resolveIV(tag, c.config.globalIV).deterministic()
}

// Close wipes the secret from memory.
// After calling Close, the Cipher is no longer usable. Close must not be
// called while other calls are in flight.
func (c *Cipher) Close() {
	c.closed.Store(true)
	wipe(c.config.secret)
	c.config.secret = nil
}

// protect performs the actual encryption.
func (c *Cipher) protect(value, tag string) (string, error) {
	mode := resolveIV(tag, c.config.globalIV)

	key, err := deriveKey(c.config.secret, c.config.iterations)
	if err != nil {
		return "", err
	}
	defer wipe(key)

	iv, err := mode.iv(c.config.iterations)
	if err != nil {
		return "", err
	}
	defer wipe(iv)

	plaintext := []byte(value)
	defer wipe(plaintext)

	toEncrypt := plaintext
	if c.config.compression {
		compressed, err := compressZstd(plaintext)
		if err != nil {
			return "", err
		}
		defer wipe(compressed)
		toEncrypt = compressed
	}

	// Random IVs travel with the data; deterministic ones are rebuilt on read.
	envelope := make([]byte, 0, ivSize+len(toEncrypt)+aes.BlockSize)
	if !mode.deterministic() {
		envelope = append(envelope, iv...)
	}

	envelope, err = encryptCBC(envelope, key, iv, toEncrypt)
	if err != nil {
		return "", err
	}
	return encodeEnvelope(envelope), nil
}

// unprotect performs the actual decryption.
func (c *Cipher) unprotect(value, tag string) (string, error) {
	mode := resolveIV(tag, c.config.globalIV)

	data, err := decodeEnvelope(value)
	if err != nil {
		return "", err
	}

	iv, ciphertext, err := splitEnvelope(data, mode)
	if err != nil {
		return "", err
	}

	key, err := deriveKey(c.config.secret, c.config.iterations)
	if err != nil {
		return "", err
	}
	defer wipe(key)

	if mode.deterministic() {
		iv, err = mode.iv(c.config.iterations)
		if err != nil {
			return "", err
		}
		defer wipe(iv)
	}

	plaintext, err := decryptCBC(key, iv, ciphertext)
	if err != nil {
		return "", err
	}
	defer wipe(plaintext)

	if c.config.compression {
		decompressed, err := decompressZstd(plaintext)
		if err != nil {
			return "", err
		}
		defer wipe(decompressed)
		plaintext = decompressed
	}

	// Values are stored as UTF-8; anything else came from the wrong key or IV path.
	if !utf8.Valid(plaintext) {
		return "", ErrDecryptionFailed
	}
	return string(plaintext), nil
}

// logFailure records a failed call without exposing the value, the tag or key material.
func (c *Cipher) logFailure(op, tag string, err error) {
	c.config.logger.Debug("fieldcrypt: "+op+" failed",
		slog.String("mode", resolveIV(tag, c.config.globalIV).String()),
		slog.Bool("tagged", tag != ""),
		slog.String("kind", KindOf(err).String()),
		slog.Any("error", err),
	)
}
