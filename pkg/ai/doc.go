// Package ai holds the GS1 Application Identifier table and the per-AI value
// contract used by the tokenizer and parser.
//
// # Specifications
//
// Each AI is described by a Spec:
//
//	Spec{Code: "01", Title: "GTIN", Length: Fixed(14), CharSet: Numeric, CheckDigit: true}
//	Spec{Code: "10", Title: "BATCH/LOT", Length: Variable(20), CharSet: Alphanumeric}
//	Spec{Code: "3102", Title: "NET WEIGHT (kg)", Length: Fixed(6), CharSet: Numeric, Decoder: VariableMeasure}
//
// Length is either Fixed(n) or Variable(max) (Unbounded for no max). The
// Decoder is a tag rather than a function, so a Registry stays a plain value
// that can be inspected and written to YAML. The implied decimal places of a
// VariableMeasure AI come from the final digit of its code (3102 -> 2).
//
// # Decoding
//
// Spec.Decode checks, in order:
//   - fixed length (LengthMismatch)
//   - maximum length, strict only (LengthExceeded)
//   - character set (CharacterSetViolation)
//   - check digit, strict only (CheckDigitInvalid)
//
// and then runs the decoder:
//   - Identity: the raw string
//   - Integer: base-10 integer (NotNumeric)
//   - Date: YYMMDD, 00-50 -> 20xx, 51-99 -> 19xx (InvalidDate)
//   - VariableMeasure: decimal string, e.g. 3102 "001250" -> "12.50"
//
// Variable measures are computed on the digit string and never pass through
// floating point.
//
// # Registries
//
// Default returns the standard table. NewBuilder starts from the same table
// and lets callers add or replace AIs; WithoutDefaults starts empty:
//
//	reg, err := ai.NewBuilder().
//	    Register(ai.Spec{Code: "99", Title: "INTERNAL", Length: ai.Variable(30), CharSet: ai.Alphanumeric}).
//	    Build()
//
// A Registry is never modified after Build and is safe for concurrent use.
package ai
