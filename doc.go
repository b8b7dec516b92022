// Package fieldcrypt encrypts individual text values before they are written
// to a database column and decrypts them when they are read back.
//
// # Encryption
//
// Values are encrypted with AES-256-CBC and PKCS#7 padding. The key is
// derived from a secret passphrase with PBKDF2-HMAC-SHA512 on every call;
// nothing is cached and per-call key material is wiped before returning.
// The result is standard base64, suitable for a text column.
//
// # IV Modes
//
// Each call resolves its IV with a fixed precedence:
//
//  1. a non-empty per-field tag: the IV is derived from the tag;
//  2. otherwise a configured global IV: the IV is derived from it;
//  3. otherwise a random IV, stored in front of the ciphertext.
//
// The first two modes are deterministic. The same plaintext always produces
// the same ciphertext, so the column can be searched by equality at the cost
// of revealing which rows share a value.
//
// # Basic Usage
//
//	cipher, err := fieldcrypt.New(
//	    fieldcrypt.WithSecret(secret),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Encrypt (random IV)
//	stored, err := cipher.ProtectString("sensitive data", "")
//
//	// Encrypt a searchable field
//	stored, err = cipher.ProtectString("alice@example.com", "users.email")
//
//	// Decrypt with the same tag used on write
//	plaintext, err := cipher.UnprotectString(stored, "users.email")
//
// # Schemas
//
// A Schema declares once which columns are protected and which are
// searchable. ProtectRow and UnprotectRow apply it to whole rows, and
// SearchCondition builds equality predicates that match the stored form.
//
// # NULL Handling
//
// NULL values are preserved:
//   - cipher.Protect(nil, tag) returns nil, nil
//   - cipher.Unprotect(nil, tag) returns nil, nil
//
// Empty strings are encrypted by default. Use WithEmptyStringAsNull() to treat
// empty strings as NULL.
//
// # Limitations
//
// The stored format has no version byte and no authentication tag. A wrong
// key, a wrong tag, or corrupted data usually fails with ErrDecryptionFailed,
// but may instead decrypt to a different string.
//
// The secret, the global IV, the iteration count and the compression setting
// are properties of the data store. Changing any of them after values have
// been written makes those values unreadable; this package cannot detect it.
package fieldcrypt
