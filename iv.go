package fieldcrypt

import (
	"crypto/rand"
	"fmt"
	"io"
)

// ivMode is the outcome of IV resolution for one call.
type ivMode struct {
	// source is the string the IV is derived from; empty means random mode.
	source string
}

// deterministic reports whether the IV can be rebuilt on read.
func (m ivMode) deterministic() bool {
	return m.source != ""
}

func (m ivMode) String() string {
	if m.deterministic() {
		return "deterministic"
	}
	return "random"
}

// resolveIV applies the fixed precedence: a per-field tag beats the global IV,
// which beats a random IV. Empty strings count as absent.
func resolveIV(tag, globalIV string) ivMode {
	if tag != "" {
		return ivMode{source: tag}
	}
	if globalIV != "" {
		return ivMode{source: globalIV}
	}
	return ivMode{}
}

// iv returns the IV for encryption. Random mode draws fresh bytes from
// crypto/rand; deterministic mode derives them from the source.
func (m ivMode) iv(iterations int) ([]byte, error) {
	if m.deterministic() {
		return deriveIV(m.source, iterations)
	}
	iv := make([]byte, ivSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, fmt.Errorf("fieldcrypt: generating IV: %w", err)
	}
	return iv, nil
}
