package fieldcrypt

import (
	"strings"
	"unicode"
)

// Normalizer maps a value to a canonical form before it is protected and
// before it is searched for. The stored value is the normalized form, so only
// attach one to a field where losing case or formatting is acceptable.
//
// A Field carries its normalizer, so writes and searches always agree.
type Normalizer func(string) string

// NormalizeEmail lowercases and trims an email address.
//
// Example: " Alice@Example.COM " -> "alice@example.com"
var NormalizeEmail Normalizer = func(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeUsername lowercases and trims a username.
var NormalizeUsername Normalizer = NormalizeEmail

// NormalizePhone keeps ASCII digits only.
//
// Example: "+1 (555) 123-4567" -> "15551234567"
var NormalizePhone Normalizer = func(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// NormalizeWhitespace trims the value and collapses inner runs of whitespace
// to a single space. Case is preserved.
//
// Example: "  Jane \t  Doe " -> "Jane Doe"
var NormalizeWhitespace Normalizer = func(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

// NormalizeTrim trims leading and trailing whitespace only.
var NormalizeTrim Normalizer = strings.TrimSpace

// NormalizeLower lowercases without trimming.
var NormalizeLower Normalizer = strings.ToLower
