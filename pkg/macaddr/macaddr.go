// Package macaddr provides MAC address normalization into the canonical
// colon-separated lowercase form used throughout the tool and by the AKIPS
// Switch Port Mapper API.
package macaddr

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalidFormat is wrapped by every normalization failure so callers can
// classify with errors.Is.
var ErrInvalidFormat = errors.New("invalid MAC address format")

// Normalize canonicalizes a MAC address to six lowercase hex byte-pairs
// joined by colons. Accepts colon, dash, dot, or no separators, with any
// surrounding or embedded whitespace. The stripped input must reduce to
// exactly 12 hex characters. Normalize is idempotent: feeding its output
// back in yields the same string.
func Normalize(input string) (string, error) {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r == ':' || r == '.' || r == '-':
			return -1
		case unicode.IsSpace(r):
			return -1
		}
		return r
	}, strings.ToLower(input))

	if len(clean) != 12 {
		return "", fmt.Errorf("%w: %q reduces to %d characters, want 12", ErrInvalidFormat, input, len(clean))
	}
	for i := 0; i < len(clean); i++ {
		if !isHexDigit(clean[i]) {
			return "", fmt.Errorf("%w: %q contains non-hex characters", ErrInvalidFormat, input)
		}
	}
	return Format(clean), nil
}

// Format inserts colon separators into a bare 12-character hex string.
// Example: "001122334455" -> "00:11:22:33:44:55". Inputs of any other
// length are returned unchanged.
func Format(clean string) string {
	clean = strings.ToLower(clean)
	if len(clean) != 12 {
		return clean
	}
	var b strings.Builder
	b.Grow(17)
	for i := 0; i < 12; i += 2 {
		if i > 0 {
			b.WriteByte(':')
		}
		b.WriteString(clean[i : i+2])
	}
	return b.String()
}

// isHexDigit checks if a byte is a valid hexadecimal digit (0-9, A-F, a-f).
func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'A' && b <= 'F') || (b >= 'a' && b <= 'f')
}
