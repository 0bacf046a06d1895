// Package boolean recognises truth values written as words of the active
// locale ("true", "no", "ja", ...).
package boolean

import (
	"fmt"
	"strings"

	"github.com/armon/go-radix"

	"github.com/gofhir/dataparser/module/locale"
	"github.com/gofhir/dataparser/pattern"
	"github.com/gofhir/dataparser/value"
)

// Tag is the token tag validated by the module.
const Tag = "bool"

// Module validates {bool} tokens and parses them into value.Boolean.
type Module struct {
	words    *radix.Tree
	patterns []*pattern.Pattern
}

// New builds the module for loc. Words are matched case-insensitively.
// A word listed as both truthy and falsy keeps its truthy meaning.
func New(loc *locale.Locale) *Module {
	words := radix.New()
	for _, w := range loc.Falsy {
		words.Insert(strings.ToLower(w), false)
	}
	for _, w := range loc.Truthy {
		words.Insert(strings.ToLower(w), true)
	}

	m := &Module{words: words}
	m.patterns = []*pattern.Pattern{
		pattern.NewFunc("{"+Tag+"}", parse),
	}
	return m
}

func parse(_ *pattern.Context, values []any) (any, error) {
	b, ok := values[0].(bool)
	if !ok {
		return nil, fmt.Errorf("boolean: unexpected value %T", values[0])
	}
	return value.Boolean{Value: b}, nil
}

// Name returns "boolean".
func (m *Module) Name() string { return "boolean" }

// PatternTags returns the root tag.
func (m *Module) PatternTags() []string { return []string{""} }

// TokenTags returns the bool tag.
func (m *Module) TokenTags() []string { return []string{Tag} }

// Patterns returns the boolean patterns for tag.
func (m *Module) Patterns(tag string) []*pattern.Pattern {
	if tag != "" {
		return nil
	}
	return m.patterns
}

// ValidateToken accepts prefixes of known words and, when final, whole words.
func (m *Module) ValidateToken(_ *pattern.Context, _ *pattern.Token, text string, isFinal bool) bool {
	key := strings.ToLower(text)
	if isFinal {
		_, ok := m.words.Get(key)
		return ok
	}

	found := false
	m.words.WalkPrefix(key, func(string, interface{}) bool {
		found = true
		return true
	})
	return found
}

// FinalizeValue returns the bool for text, or nil for unknown words.
func (m *Module) FinalizeValue(_ *pattern.Context, _ *pattern.Token, text string) any {
	v, ok := m.words.Get(strings.ToLower(text))
	if !ok {
		return nil
	}
	return v.(bool)
}

// Words returns the number of known words.
func (m *Module) Words() int {
	return m.words.Len()
}
