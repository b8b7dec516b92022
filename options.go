package fieldcrypt

import "log/slog"

// Option is a functional option for configuring a Cipher.
type Option func(*config)

// WithSecret sets the passphrase the AES key is derived from.
// The secret is copied internally and wiped by Close().
//
// Once values have been stored, the secret must never change.
func WithSecret(secret string) Option {
	return func(c *config) {
		wipe(c.secret)
		c.secret = []byte(secret)
	}
}

// WithGlobalIV sets a store-wide IV source. When set, every field without its
// own tag is encrypted deterministically and no IV is embedded in the output.
//
// Like the secret, the global IV must never change once values are stored.
func WithGlobalIV(source string) Option {
	return func(c *config) {
		c.globalIV = source
	}
}

// WithIterations sets the PBKDF2 round count for key and IV derivation.
// Default is DefaultIterations. Values below 1 make New fail.
func WithIterations(n int) Option {
	return func(c *config) {
		c.iterations = n
	}
}

// WithCompression enables zstd compression of every plaintext before
// encryption. This is a property of the data store: values written with
// compression on cannot be read with it off, and vice versa.
func WithCompression() Option {
	return func(c *config) {
		c.compression = true
	}
}

// WithEmptyStringAsNull configures the cipher to treat empty strings as NULL.
// By default, empty strings are encrypted like any other value.
// With this option, Protect(&"") returns nil.
func WithEmptyStringAsNull() Option {
	return func(c *config) {
		c.emptyStringAsNull = true
	}
}

// WithLogger sets the logger used for failure diagnostics.
// Values, keys and IVs are never logged.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}
