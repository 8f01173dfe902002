package ai

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// ValueKind identifies which member of Value is set
type ValueKind int

const (
	StringKind ValueKind = iota
	IntKind
	DateKind
	DecimalKind
)

func (k ValueKind) String() string {
	switch k {
	case StringKind:
		return "string"
	case IntKind:
		return "integer"
	case DateKind:
		return "date"
	case DecimalKind:
		return "decimal"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
}

// dateLayout is used to render dates
const dateLayout = "2006-01-02"

// Value is a decoded AI value: a string, an integer, a calendar date or a
// fixed-point decimal string. Values are comparable with ==.
type Value struct {
	kind ValueKind
	text string
	num  int64
	date time.Time
}

// StringValue returns a string value
func StringValue(s string) Value {
	return Value{kind: StringKind, text: s}
}

// IntValue returns an integer value
func IntValue(n int64) Value {
	return Value{kind: IntKind, num: n}
}

// DateValue returns a calendar date value at UTC midnight
func DateValue(year int, month time.Month, day int) Value {
	return Value{kind: DateKind, date: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DecimalValue returns a fixed-point decimal value such as "12.50"
func DecimalValue(s string) Value {
	return Value{kind: DecimalKind, text: s}
}

// Kind returns the kind of the value
func (v Value) Kind() ValueKind {
	return v.kind
}

// Text returns the string or decimal text of the value
func (v Value) Text() (string, bool) {
	return v.text, v.kind == StringKind || v.kind == DecimalKind
}

// Int returns the integer of an integer value
func (v Value) Int() (int64, bool) {
	return v.num, v.kind == IntKind
}

// Date returns the date of a date value
func (v Value) Date() (time.Time, bool) {
	return v.date, v.kind == DateKind
}

// String renders the value canonically: dates as YYYY-MM-DD, integers in
// base 10, strings and decimals verbatim.
func (v Value) String() string {
	switch v.kind {
	case IntKind:
		return strconv.FormatInt(v.num, 10)
	case DateKind:
		return v.date.Format(dateLayout)
	default:
		return v.text
	}
}

// MarshalJSON renders integers as JSON numbers and everything else as strings
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == IntKind {
		return json.Marshal(v.num)
	}
	return json.Marshal(v.String())
}

// MarshalYAML renders integers as YAML integers and everything else as strings
func (v Value) MarshalYAML() (interface{}, error) {
	if v.kind == IntKind {
		return v.num, nil
	}
	return v.String(), nil
}
