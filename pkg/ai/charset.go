package ai

import (
	"fmt"
	"strings"
)

// CharSet restricts the characters an AI value may contain
type CharSet int

const (
	Numeric CharSet = iota
	Alphanumeric
	Any
)

// alphanumericPunct is the punctuation allowed next to digits, A-Z and space
const alphanumericPunct = "!\"#$%&'()*+,-./:;<=>?_"

var charSetNames = [...]string{
	Numeric:      "numeric",
	Alphanumeric: "alphanumeric",
	Any:          "any",
}

func (c CharSet) String() string {
	if c < 0 || int(c) >= len(charSetNames) {
		return fmt.Sprintf("CharSet(%d)", int(c))
	}
	return charSetNames[c]
}

// MarshalText implements encoding.TextMarshaler
func (c CharSet) MarshalText() ([]byte, error) {
	if c < 0 || int(c) >= len(charSetNames) {
		return nil, fmt.Errorf("invalid character set %d", int(c))
	}
	return []byte(charSetNames[c]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *CharSet) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	for i, n := range charSetNames {
		if n == name {
			*c = CharSet(i)
			return nil
		}
	}
	return fmt.Errorf("unknown character set %q", string(text))
}

// Allows reports whether every byte of s belongs to the set. Numeric needs
// at least one digit; the other sets accept the empty string.
func (c CharSet) Allows(s string) bool {
	switch c {
	case Numeric:
		return s != "" && isDigits(s)
	case Alphanumeric:
		for i := 0; i < len(s); i++ {
			if !isAlphanumeric(s[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func isAlphanumeric(b byte) bool {
	switch {
	case b >= '0' && b <= '9', b >= 'A' && b <= 'Z', b == ' ':
		return true
	default:
		return strings.IndexByte(alphanumericPunct, b) >= 0
	}
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
