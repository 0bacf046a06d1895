package matcher

import (
	"strconv"
	"testing"
	"unicode"

	"github.com/gofhir/dataparser/pattern"
	"github.com/gofhir/dataparser/pkg/logger"
)

// digits accepts runs of ASCII digits and finalizes them to int.
type digits struct{}

func (digits) Name() string { return "digits" }

func (digits) ValidateToken(_ *pattern.Context, tok *pattern.Token, text string, _ bool) bool {
	if len(text) > tok.MaxCount {
		return false
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (digits) FinalizeValue(_ *pattern.Context, _ *pattern.Token, text string) any {
	n, _ := strconv.Atoi(text)
	return n
}

// letters accepts runs of letters and finalizes to the text itself.
type letters struct{}

func (letters) ValidateToken(_ *pattern.Context, _ *pattern.Token, text string, _ bool) bool {
	for _, r := range text {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func (letters) FinalizeValue(_ *pattern.Context, _ *pattern.Token, text string) any {
	return text
}

// constant returns a parse rule that ignores its values.
func constant(v any) pattern.ParserFunc {
	return func(*pattern.Context, []any) (any, error) {
		return v, nil
	}
}

// first returns a parse rule yielding the value of token i.
func first(i int) pattern.ParserFunc {
	return func(_ *pattern.Context, values []any) (any, error) {
		return values[i], nil
	}
}

func newTestMatcher(t *testing.T) *Matcher {
	t.Helper()
	m := New(WithLogger(logger.Discard()))
	m.RegisterValidator("d", digits{})
	m.RegisterValidator("w", letters{})
	return m
}

func mustAdd(t *testing.T, m *Matcher, tag string, patterns ...*pattern.Pattern) {
	t.Helper()
	if err := m.AddPatterns(tag, patterns...); err != nil {
		t.Fatalf("AddPatterns(%q) error = %v", tag, err)
	}
}

func noTrim() *pattern.Context {
	pc := pattern.NewContext()
	pc.TrimWhitespace = false
	return pc
}

func withReasons() *pattern.Context {
	pc := pattern.NewContext()
	pc.Reasons = true
	return pc
}
