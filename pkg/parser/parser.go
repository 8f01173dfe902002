// Package parser decodes GS1 payloads into a Result of typed AI values.
package parser

import (
	"context"
	"log/slog"
	"time"

	"github.com/ssargent/gs1kit/pkg/ai"
	"github.com/ssargent/gs1kit/pkg/gs1err"
	"github.com/ssargent/gs1kit/pkg/tokenizer"
)

// Recorder receives the outcome of every Parse call. *metrics.Metrics
// implements it.
type Recorder interface {
	RecordParse(format, mode string, codes []string, err error, duration time.Duration)
}

// Config holds parser settings
type Config struct {
	Mode     Mode
	Registry *ai.Registry // nil means ai.Default()

	MaxInputLength int // 0 means tokenizer.DefaultMaxInputLength

	// SeparatorHeuristic reports "likely missing separator" for lenient
	// concatenated payloads whose last variable value ends in complete fixed
	// fields. Advisory and lossy, so off unless set. Strict parsers never run it.
	SeparatorHeuristic bool

	Logger  *slog.Logger // nil disables logging
	Metrics Recorder     // nil disables metrics
}

// Parser decodes payloads under a fixed compliance mode. It holds no per-call
// state and is safe for concurrent use.
type Parser struct {
	mode      Mode
	registry  *ai.Registry
	tokenizer *tokenizer.Tokenizer
	logger    *slog.Logger
	metrics   Recorder
}

// New creates a parser
func New(config Config) *Parser {
	registry := config.Registry
	if registry == nil {
		registry = ai.Default()
	}

	var logger *slog.Logger
	if config.Logger != nil {
		logger = config.Logger.With(slog.String("component", "parser"))
	}

	p := &Parser{
		mode:     config.Mode,
		registry: registry,
		tokenizer: tokenizer.New(registry, tokenizer.Config{
			Strict:             config.Mode == Strict,
			MaxInputLength:     config.MaxInputLength,
			SeparatorHeuristic: config.SeparatorHeuristic,
		}),
		logger:  logger,
		metrics: config.Metrics,
	}
	p.log(slog.LevelDebug, "parser initialized",
		slog.String("mode", p.mode.String()),
		slog.Int("ais", registry.Len()))
	return p
}

// DefaultParser returns a lenient parser over the standard AI table
func DefaultParser() *Parser {
	return New(Config{Mode: Lenient})
}

// StrictParser returns a strict parser over the standard AI table
func StrictParser() *Parser {
	return New(Config{Mode: Strict})
}

// Mode returns the compliance mode of the parser
func (p *Parser) Mode() Mode {
	return p.mode
}

// Registry returns the AI table the parser resolves codes against
func (p *Parser) Registry() *ai.Registry {
	return p.registry
}

// Parse decodes input. It returns either the complete result or the first
// error encountered, never both.
func (p *Parser) Parse(input string) (*Result, error) {
	start := time.Now()

	result, format, err := p.parse(input)

	if p.metrics != nil {
		var codes []string
		if result != nil {
			codes = result.Codes()
		}
		p.metrics.RecordParse(format.String(), p.mode.String(), codes, err, time.Since(start))
	}

	if err != nil {
		kind := gs1err.KindOf(err)
		p.log(slog.LevelDebug, "parse failed",
			slog.String("format", format.String()),
			slog.String("kind", kind.String()),
			slog.Bool("structural", kind.Structural()),
			slog.Any("error", err))
		return nil, err
	}

	p.log(slog.LevelDebug, "parsed payload",
		slog.String("format", format.String()),
		slog.Int("fields", result.Len()))
	return result, nil
}

func (p *Parser) parse(input string) (*Result, tokenizer.Format, error) {
	tokens, format, err := p.tokenizer.Tokenize(input)
	if err != nil {
		return nil, format, err
	}

	strict := p.mode == Strict
	result := newResult(len(tokens))

	for _, tok := range tokens {
		if result.Contains(tok.Code) {
			return nil, format, &gs1err.Error{
				Kind:    gs1err.DuplicateAI,
				AI:      tok.Code,
				Message: "duplicate AI " + tok.Code,
				Pos:     tok.Pos,
			}
		}

		spec, ok := p.registry.Find(tok.Code)
		if !ok {
			return nil, format, &gs1err.Error{
				Kind:    gs1err.UnknownAI,
				AI:      tok.Code,
				Message: "unknown AI " + tok.Code,
				Pos:     tok.Pos,
			}
		}

		value, err := spec.Decode(tok.Raw, strict)
		if err != nil {
			return nil, format, gs1err.Locate(err, tok.Code, tok.Pos)
		}

		result.add(Element{Code: tok.Code, Raw: tok.Raw, Value: value, Pos: tok.Pos})
	}

	return result, format, nil
}

func (p *Parser) log(level slog.Level, msg string, attrs ...slog.Attr) {
	if p.logger == nil {
		return
	}
	p.logger.LogAttrs(context.Background(), level, msg, attrs...)
}
