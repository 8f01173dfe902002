package parser

import "fmt"

// Mode is the compliance level applied uniformly to every field of a parse
type Mode int

const (
	// Lenient tolerates a missing leading separator, skips max length and
	// check digit enforcement.
	Lenient Mode = iota
	// Strict enforces every GS1 rule the decoder knows about.
	Strict
)

func (m Mode) String() string {
	if m == Strict {
		return "strict"
	}
	return "lenient"
}

// MarshalText implements encoding.TextMarshaler
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *Mode) UnmarshalText(text []byte) error {
	mode, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// ParseMode parses "strict" or "lenient"
func ParseMode(s string) (Mode, error) {
	switch s {
	case "strict":
		return Strict, nil
	case "lenient", "":
		return Lenient, nil
	default:
		return Lenient, fmt.Errorf("invalid compliance mode %q: want strict or lenient", s)
	}
}
