// Package tokenizer splits GS1 payloads into (AI, raw value, offset) tokens.
//
// Two notations are recognised, chosen by the first byte of the input:
//
//	(01)09501101530003(17)251231(10)ABC123     parenthesis (GS1-128 HRI)
//	<GS>01095011015300031725123110ABC123       concatenated (DataMatrix, GS1-128 data)
//
// In the concatenated form AI codes are not delimited, so each one is
// resolved against the registry by trying 4, 3 and then 2 digits. Fixed
// length values end after their size; variable length values end at a GS
// separator (0x1D) or at the end of the input.
package tokenizer

import (
	"fmt"
	"strings"

	"github.com/ssargent/gs1kit/pkg/ai"
	"github.com/ssargent/gs1kit/pkg/gs1err"
)

// Separator is the GS control character that ends a variable length field
// in concatenated payloads (FNC1 once scanned).
const Separator = '\x1d'

// DefaultMaxInputLength bounds the payload size accepted by Tokenize
const DefaultMaxInputLength = 10000

// Format is the notation of a payload
type Format int

const (
	FormatParenthesis Format = iota
	FormatConcatenated
)

func (f Format) String() string {
	if f == FormatParenthesis {
		return "parenthesis"
	}
	return "concatenated"
}

// Token is one AI field of a payload. Pos is the byte offset of Raw.
type Token struct {
	Code string
	Raw  string
	Pos  int
}

// Config holds tokenizer settings
type Config struct {
	Strict         bool // require the leading separator in concatenated payloads
	MaxInputLength int  // 0 means DefaultMaxInputLength

	// SeparatorHeuristic enables the missing separator diagnostic for
	// unterminated variable length values. It is lossy: a legitimate last
	// value such as LOT2024 ends in what reads as a fixed field (AI 20) and
	// is rejected. Ignored in strict mode.
	SeparatorHeuristic bool
}

// Tokenizer splits payloads using the AIs of a registry. It holds no per-call
// state and is safe for concurrent use.
type Tokenizer struct {
	registry  *ai.Registry
	strict    bool
	maxLen    int
	heuristic bool
}

// New creates a tokenizer over registry
func New(registry *ai.Registry, config Config) *Tokenizer {
	maxLen := config.MaxInputLength
	if maxLen <= 0 {
		maxLen = DefaultMaxInputLength
	}
	return &Tokenizer{
		registry:  registry,
		strict:    config.Strict,
		maxLen:    maxLen,
		heuristic: config.SeparatorHeuristic && !config.Strict,
	}
}

// DetectFormat returns the notation of input
func DetectFormat(input string) Format {
	if strings.HasPrefix(input, "(") {
		return FormatParenthesis
	}
	return FormatConcatenated
}

// Tokenize splits input into tokens in encounter order
func (t *Tokenizer) Tokenize(input string) ([]Token, Format, error) {
	if input == "" {
		return nil, FormatConcatenated, gs1err.At(gs1err.EmptyInput, 0, "input is empty")
	}

	format := DetectFormat(input)
	if len(input) > t.maxLen {
		return nil, format, gs1err.At(gs1err.InputTooLong, t.maxLen,
			"input length %d exceeds maximum of %d", len(input), t.maxLen)
	}

	var (
		tokens []Token
		err    error
	)
	if format == FormatParenthesis {
		tokens, err = t.tokenizeParenthesis(input)
	} else {
		tokens, err = t.tokenizeConcatenated(input)
	}
	return tokens, format, err
}

func (t *Tokenizer) tokenizeParenthesis(input string) ([]Token, error) {
	var tokens []Token
	i := 0

	for i < len(input) {
		// input[i] is always '(' here: the first byte was checked by
		// DetectFormat and every value runs up to the next '('
		closing := strings.IndexByte(input[i+1:], ')')
		if closing < 0 {
			return nil, gs1err.At(gs1err.UnterminatedAI, i, "unterminated AI: missing ')'")
		}
		code := input[i+1 : i+1+closing]
		if _, ok := t.registry.Find(code); !ok {
			return nil, &gs1err.Error{Kind: gs1err.UnknownAI, AI: code, Message: "unknown AI " + code, Pos: i + 1}
		}

		start := i + closing + 2
		end := len(input)
		if next := strings.IndexByte(input[start:], '('); next >= 0 {
			end = start + next
		}
		if end == start {
			return nil, &gs1err.Error{Kind: gs1err.EmptyValue, AI: code, Message: "empty value for AI " + code, Pos: start}
		}

		tokens = append(tokens, Token{Code: code, Raw: input[start:end], Pos: start})
		i = end
	}

	return tokens, nil
}

func (t *Tokenizer) tokenizeConcatenated(input string) ([]Token, error) {
	var tokens []Token
	i := 0

	if input[0] == Separator {
		i = 1
	} else if t.strict {
		return nil, gs1err.At(gs1err.MissingSeparator, 0, "payload must start with a separator in strict mode")
	}

	for i < len(input) {
		code, spec, ok := t.resolve(input, i)
		if !ok {
			return nil, gs1err.At(gs1err.AIResolutionFailure, i, "unable to resolve AI at position %d", i)
		}

		start := i + len(code)

		if n, fixed := spec.Length.Size(); fixed {
			end := start + n
			window := input[start:min(end, len(input))]
			if sep := strings.IndexByte(window, Separator); sep >= 0 {
				return nil, truncated(code, start, n, sep)
			}
			if end > len(input) {
				return nil, truncated(code, start, n, len(window))
			}
			tokens = append(tokens, Token{Code: code, Raw: input[start:end], Pos: start})
			i = end
			if i < len(input) && input[i] == Separator {
				i++
			}
			continue
		}

		end := len(input)
		terminated := false
		if sep := strings.IndexByte(input[start:], Separator); sep >= 0 {
			end = start + sep
			terminated = true
		}
		if end == start {
			return nil, &gs1err.Error{Kind: gs1err.EmptyValue, AI: code, Message: "empty value for AI " + code, Pos: start}
		}

		if !terminated && t.heuristic {
			if at := t.embeddedFields(input, start+1, end); at >= 0 {
				return nil, &gs1err.Error{Kind: gs1err.MissingSeparator, AI: code, Pos: at,
					Message: "likely missing separator after variable-length AI " + code}
			}
		}

		tokens = append(tokens, Token{Code: code, Raw: input[start:end], Pos: start})
		i = end
		if terminated {
			i++
		}
	}

	return tokens, nil
}

// resolve finds the AI starting at pos, preferring the longest registered code
func (t *Tokenizer) resolve(input string, pos int) (string, ai.Spec, bool) {
	for _, n := range [...]int{4, 3, 2} {
		if pos+n > len(input) {
			continue
		}
		code := input[pos : pos+n]
		if spec, ok := t.registry.Find(code); ok {
			return code, spec, true
		}
	}
	return "", ai.Spec{}, false
}

// embeddedFields reports the earliest offset in [from, end) from which the
// rest of the input reads as one or more complete fixed length fields, or -1.
// A variable length value ending there most likely swallowed those fields
// because its separator was left out. The check is advisory: a legitimate
// value can contain such a run and a malformed one can avoid it.
func (t *Tokenizer) embeddedFields(input string, from, end int) int {
	cover := make([]bool, end-from+1)
	cover[end-from] = true
	at := -1

	for k := end - 1; k >= from; k-- {
		code, spec, ok := t.resolve(input[:end], k)
		if !ok {
			continue
		}
		n, fixed := spec.Length.Size()
		next := k + len(code) + n
		if !fixed || next > end || !cover[next-from] {
			continue
		}
		if !spec.CharSet.Allows(input[k+len(code) : next]) {
			continue
		}
		cover[k-from] = true
		at = k
	}

	return at
}

func truncated(code string, pos, want, got int) *gs1err.Error {
	return &gs1err.Error{
		Kind:    gs1err.TruncatedValue,
		AI:      code,
		Message: fmt.Sprintf("truncated value for AI %s: expected %d characters, got %d", code, want, got),
		Pos:     pos,
	}
}
