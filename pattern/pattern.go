package pattern

import "errors"

// ErrNoParser is returned when a pattern without a parse rule is evaluated.
var ErrNoParser = errors.New("pattern has no parser")

// Parser builds a typed result from the finalized values of a matched pattern.
// values holds one entry per token of the pattern in left-to-right order;
// skipped optional tokens contribute an empty string.
type Parser interface {
	Parse(ctx *Context, values []any) (any, error)
}

// ParserFunc adapts an ordinary function to the Parser interface.
type ParserFunc func(ctx *Context, values []any) (any, error)

// Parse calls f(ctx, values).
func (f ParserFunc) Parse(ctx *Context, values []any) (any, error) {
	return f(ctx, values)
}

// Pattern is an immutable token sequence derived from a source string.
type Pattern struct {
	// Source is the pattern string the tokens were derived from.
	Source string

	// Tokens is the ordered token sequence.
	Tokens []*Token

	parser Parser
}

// New tokenizes source and returns the pattern.
func New(source string, parser Parser) *Pattern {
	return &Pattern{
		Source: source,
		Tokens: Tokenize(source),
		parser: parser,
	}
}

// NewFunc is a convenience wrapper around New for function parse rules.
func NewFunc(source string, fn func(ctx *Context, values []any) (any, error)) *Pattern {
	return New(source, ParserFunc(fn))
}

// Tokenize splits a pattern string into exact and placeholder tokens.
func Tokenize(source string) []*Token {
	var tokens []*Token

	start := 0
	for i := 0; i < len(source); i++ {
		switch source[i] {
		case '{':
			if i > start {
				tokens = append(tokens, NewExactToken(source[start:i]))
			}
			start = i + 1
		case '}':
			tokens = append(tokens, ParseToken(source[start:i]))
			start = i + 1
		}
	}

	if start < len(source) {
		tokens = append(tokens, NewExactToken(source[start:]))
	}
	return tokens
}

// Parse evaluates the parse rule of the pattern.
func (p *Pattern) Parse(ctx *Context, values []any) (any, error) {
	if p.parser == nil {
		return nil, ErrNoParser
	}
	return p.parser.Parse(ctx, values)
}

// Equal reports whether both patterns were built from the same source.
func (p *Pattern) Equal(other *Pattern) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.Source == other.Source
}

// String returns the pattern source.
func (p *Pattern) String() string {
	return p.Source
}

// Clone returns a copy of the pattern with its own tokens.
// The parse rule is shared.
func (p *Pattern) Clone() *Pattern {
	tokens := make([]*Token, len(p.Tokens))
	for i, t := range p.Tokens {
		tokens[i] = t.clone()
	}
	return &Pattern{
		Source: p.Source,
		Tokens: tokens,
		parser: p.parser,
	}
}
