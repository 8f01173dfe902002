package ai

import (
	"fmt"

	"github.com/ssargent/gs1kit/pkg/checkdigit"
	"github.com/ssargent/gs1kit/pkg/gs1err"
)

// Spec describes one Application Identifier: how long its value is, which
// characters it may contain, whether it ends in a check digit and how it is
// decoded. Specs are plain values and safe to copy.
type Spec struct {
	Code       string
	Title      string
	Length     Length
	CharSet    CharSet
	CheckDigit bool
	Decoder    Decoder
}

// DecimalPlaces returns the number of implied decimal places of a variable
// measure AI, taken from the final digit of its code. It is 0 for every
// other decoder.
func (s Spec) DecimalPlaces() int {
	if s.Decoder != VariableMeasure || s.Code == "" {
		return 0
	}
	return int(s.Code[len(s.Code)-1] - '0')
}

// Validate checks that the spec is well formed
func (s Spec) Validate() error {
	if len(s.Code) < 2 || len(s.Code) > 4 || !isDigits(s.Code) {
		return gs1err.New(gs1err.InvalidSpec, "AI code %q must be 2-4 digits", s.Code)
	}
	if !s.Length.valid() {
		return gs1err.New(gs1err.InvalidSpec, "AI %s has an invalid length rule", s.Code)
	}
	if s.CharSet < Numeric || s.CharSet > Any {
		return gs1err.New(gs1err.InvalidSpec, "AI %s has an invalid character set", s.Code)
	}
	if s.Decoder < Identity || s.Decoder > VariableMeasure {
		return gs1err.New(gs1err.InvalidSpec, "AI %s has an invalid decoder", s.Code)
	}
	if s.Decoder == VariableMeasure && s.DecimalPlaces() > MaxDecimalPlaces {
		return gs1err.New(gs1err.InvalidSpec, "variable measure AI %s must end in 0-%d", s.Code, MaxDecimalPlaces)
	}
	if s.Decoder == Date {
		if n, ok := s.Length.Size(); !ok || n != 6 {
			return gs1err.New(gs1err.InvalidSpec, "date AI %s must have a fixed length of 6", s.Code)
		}
	}
	return nil
}

// Decode validates raw against the spec and decodes it. Maximum length and
// check digit are only enforced when strict is set.
func (s Spec) Decode(raw string, strict bool) (Value, error) {
	if n, ok := s.Length.Size(); ok && len(raw) != n {
		return Value{}, gs1err.New(gs1err.LengthMismatch,
			"expected length %d but got %d", n, len(raw))
	}

	if max, ok := s.Length.Max(); strict && ok && len(raw) > max {
		return Value{}, gs1err.New(gs1err.LengthExceeded,
			"value length %d exceeds max length %d", len(raw), max)
	}

	if !s.CharSet.Allows(raw) {
		return Value{}, gs1err.New(gs1err.CharacterSetViolation,
			"AI %s must contain only %s characters, got %q", s.Code, s.CharSet, raw)
	}

	if strict && s.CheckDigit {
		ok, err := checkdigit.Validate(raw)
		if err != nil {
			return Value{}, err
		}
		if !ok {
			return Value{}, gs1err.New(gs1err.CheckDigitInvalid,
				"invalid check digit in %q", raw)
		}
	}

	return s.Decoder.decode(raw, s.DecimalPlaces())
}

// FormatString renders the GS1 format notation of the value, e.g. "N14" or "X..20"
func (s Spec) FormatString() string {
	prefix := "X"
	switch s.CharSet {
	case Numeric:
		prefix = "N"
	case Any:
		prefix = "*"
	}
	return prefix + s.Length.String()
}

func (s Spec) String() string {
	return fmt.Sprintf("(%s) %s %s", s.Code, s.FormatString(), s.Title)
}
