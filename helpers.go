package fieldcrypt

import "encoding/json"

// ProtectString encrypts a non-NULL string.
// Returns "" only if configured with WithEmptyStringAsNull and s is "".
func (c *Cipher) ProtectString(s, tag string) (string, error) {
	out, err := c.Protect(&s, tag)
	if err != nil || out == nil {
		return "", err
	}
	return *out, nil
}

// UnprotectString decrypts a non-NULL stored string.
// With WithEmptyStringAsNull, "" decrypts to "".
func (c *Cipher) UnprotectString(s, tag string) (string, error) {
	if c.config.emptyStringAsNull && s == "" && !c.closed.Load() {
		return "", nil
	}
	out, err := c.Unprotect(&s, tag)
	if err != nil {
		return "", err
	}
	return *out, nil
}

// ProtectJSON encrypts the JSON serialization of a value.
func ProtectJSON[T any](c *Cipher, data T, tag string) (string, error) {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	defer wipe(jsonBytes)
	return c.ProtectString(string(jsonBytes), tag)
}

// UnprotectJSON decrypts and unmarshals JSON data.
func UnprotectJSON[T any](c *Cipher, s string, tag string) (T, error) {
	var zero T

	plaintext, err := c.UnprotectString(s, tag)
	if err != nil {
		return zero, err
	}

	var result T
	if err := json.Unmarshal([]byte(plaintext), &result); err != nil {
		return zero, err
	}
	return result, nil
}
