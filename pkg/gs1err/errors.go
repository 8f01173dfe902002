// Package gs1err defines the single error type reported by every stage of
// GS1 payload decoding.
package gs1err

import (
	"errors"
	"fmt"
)

// Kind classifies a decoding failure
type Kind int

const (
	Unknown Kind = iota

	// Structural / tokenizing errors
	EmptyInput
	InputTooLong
	UnterminatedAI
	UnknownAI
	EmptyValue
	AIResolutionFailure
	TruncatedValue
	MissingSeparator
	DuplicateAI

	// Per-field value errors
	LengthMismatch
	LengthExceeded
	CharacterSetViolation
	CheckDigitInvalid
	InvalidDate
	NotNumeric

	// Construction errors
	InvalidSpec
)

var kindNames = map[Kind]string{
	Unknown:               "unknown",
	EmptyInput:            "empty_input",
	InputTooLong:          "input_too_long",
	UnterminatedAI:        "unterminated_ai",
	UnknownAI:             "unknown_ai",
	EmptyValue:            "empty_value",
	AIResolutionFailure:   "ai_resolution_failure",
	TruncatedValue:        "truncated_value",
	MissingSeparator:      "missing_separator",
	DuplicateAI:           "duplicate_ai",
	LengthMismatch:        "length_mismatch",
	LengthExceeded:        "length_exceeded",
	CharacterSetViolation: "character_set_violation",
	CheckDigitInvalid:     "check_digit_invalid",
	InvalidDate:           "invalid_date",
	NotNumeric:            "not_numeric",
	InvalidSpec:           "invalid_spec",
}

// String returns the snake_case name used in logs and metric labels
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[Unknown]
}

// Structural reports whether the kind belongs to the tokenizing tier
func (k Kind) Structural() bool {
	return k >= EmptyInput && k <= DuplicateAI
}

// Error is a decoding failure with its kind, the AI it concerns (if any) and
// the byte offset in the source payload. Pos is -1 until the error has been
// positioned by the tokenizer or parser.
type Error struct {
	Kind    Kind
	AI      string
	Message string
	Pos     int
}

func (e *Error) Error() string {
	if e.Message == "" {
		return "gs1: " + e.Kind.String()
	}
	msg := "gs1: " + e.Message
	if e.AI != "" {
		msg += " (AI " + e.AI + ")"
	}
	if e.Pos >= 0 {
		msg += fmt.Sprintf(" at position %d", e.Pos)
	}
	return msg
}

// Is matches sentinel errors by kind, so errors.Is(err, ErrDuplicateAI)
// holds for every duplicate failure regardless of message or position.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

// New creates an unpositioned error
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: -1}
}

// At creates an error positioned at pos
func At(kind Kind, pos int, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos}
}

// Locate returns a copy of err attributed to the given AI and offset. Errors
// that are not *Error are wrapped as Unknown.
func Locate(err error, ai string, pos int) *Error {
	var e *Error
	if !errors.As(err, &e) {
		return &Error{Kind: Unknown, AI: ai, Message: err.Error(), Pos: pos}
	}
	located := *e
	located.AI = ai
	if located.Pos < 0 {
		located.Pos = pos
	}
	return &located
}

// KindOf classifies err, returning Unknown for nil or foreign errors
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// Sentinels for errors.Is
var (
	ErrEmptyInput            = &Error{Kind: EmptyInput}
	ErrInputTooLong          = &Error{Kind: InputTooLong}
	ErrUnterminatedAI        = &Error{Kind: UnterminatedAI}
	ErrUnknownAI             = &Error{Kind: UnknownAI}
	ErrEmptyValue            = &Error{Kind: EmptyValue}
	ErrAIResolutionFailure   = &Error{Kind: AIResolutionFailure}
	ErrTruncatedValue        = &Error{Kind: TruncatedValue}
	ErrMissingSeparator      = &Error{Kind: MissingSeparator}
	ErrDuplicateAI           = &Error{Kind: DuplicateAI}
	ErrLengthMismatch        = &Error{Kind: LengthMismatch}
	ErrLengthExceeded        = &Error{Kind: LengthExceeded}
	ErrCharacterSetViolation = &Error{Kind: CharacterSetViolation}
	ErrCheckDigitInvalid     = &Error{Kind: CheckDigitInvalid}
	ErrInvalidDate           = &Error{Kind: InvalidDate}
	ErrNotNumeric            = &Error{Kind: NotNumeric}
	ErrInvalidSpec           = &Error{Kind: InvalidSpec}
)
