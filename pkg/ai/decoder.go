package ai

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ssargent/gs1kit/pkg/gs1err"
)

// Decoder selects how a validated raw value is turned into a Value
type Decoder int

const (
	// Identity keeps the raw string
	Identity Decoder = iota
	// Integer parses the raw string as a base-10 integer
	Integer
	// Date parses YYMMDD with the GS1 century window
	Date
	// VariableMeasure inserts a decimal point implied by the AI code's final digit
	VariableMeasure
)

// MaxDecimalPlaces is the largest decimal-place count a variable measure AI can imply
const MaxDecimalPlaces = 5

var decoderNames = [...]string{
	Identity:        "identity",
	Integer:         "integer",
	Date:            "date",
	VariableMeasure: "measure",
}

func (d Decoder) String() string {
	if d < 0 || int(d) >= len(decoderNames) {
		return fmt.Sprintf("Decoder(%d)", int(d))
	}
	return decoderNames[d]
}

// MarshalText implements encoding.TextMarshaler
func (d Decoder) MarshalText() ([]byte, error) {
	if d < 0 || int(d) >= len(decoderNames) {
		return nil, fmt.Errorf("invalid decoder %d", int(d))
	}
	return []byte(decoderNames[d]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Decoder) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	for i, n := range decoderNames {
		if n == name {
			*d = Decoder(i)
			return nil
		}
	}
	return fmt.Errorf("unknown decoder %q", string(text))
}

// decode dispatches on the decoder tag. places is only used by VariableMeasure.
func (d Decoder) decode(raw string, places int) (Value, error) {
	switch d {
	case Integer:
		return DecodeInteger(raw)
	case Date:
		return DecodeDate(raw)
	case VariableMeasure:
		return DecodeMeasure(places, raw)
	default:
		return StringValue(raw), nil
	}
}

// DecodeInteger parses raw as an unsigned base-10 integer
func DecodeInteger(raw string) (Value, error) {
	if raw == "" || !isDigits(raw) {
		return Value{}, gs1err.New(gs1err.NotNumeric, "value %q is not numeric", raw)
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return Value{}, gs1err.New(gs1err.NotNumeric, "value %q is out of integer range", raw)
	}
	return IntValue(n), nil
}

// DecodeDate parses a YYMMDD date. Years 00-50 map to 2000-2050 and 51-99
// to 1951-1999.
func DecodeDate(raw string) (Value, error) {
	if len(raw) != 6 || !isDigits(raw) {
		return Value{}, gs1err.New(gs1err.InvalidDate, "invalid date %q (expected YYMMDD)", raw)
	}

	yy := int(raw[0]-'0')*10 + int(raw[1]-'0')
	mm := int(raw[2]-'0')*10 + int(raw[3]-'0')
	dd := int(raw[4]-'0')*10 + int(raw[5]-'0')

	year := 1900 + yy
	if yy <= 50 {
		year = 2000 + yy
	}

	if mm < 1 || mm > 12 || dd < 1 || dd > daysIn(time.Month(mm), year) {
		return Value{}, gs1err.New(gs1err.InvalidDate, "invalid date %q (expected YYMMDD)", raw)
	}

	return DateValue(year, time.Month(mm), dd), nil
}

func daysIn(m time.Month, year int) int {
	// day 0 of the next month is the last day of m
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DecodeMeasure renders the digit string raw divided by 10^places with exactly
// places digits after the decimal point. The arithmetic is done on the digit
// string, so values of any length keep full precision.
func DecodeMeasure(places int, raw string) (Value, error) {
	if places < 0 || places > MaxDecimalPlaces {
		return Value{}, gs1err.New(gs1err.InvalidSpec, "decimal places %d outside 0-%d", places, MaxDecimalPlaces)
	}
	if raw == "" || !isDigits(raw) {
		return Value{}, gs1err.New(gs1err.NotNumeric, "measure %q is not numeric", raw)
	}

	if len(raw) <= places {
		raw = strings.Repeat("0", places-len(raw)+1) + raw
	}

	split := len(raw) - places
	intPart := strings.TrimLeft(raw[:split], "0")
	if intPart == "" {
		intPart = "0"
	}

	if places == 0 {
		return DecimalValue(intPart), nil
	}
	return DecimalValue(intPart + "." + raw[split:]), nil
}
