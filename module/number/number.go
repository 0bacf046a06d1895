// Package number recognises integers and decimal numbers with optional
// digit grouping, exponent and unit, following the separators of a locale.
package number

import (
	"unicode/utf8"

	"github.com/gofhir/dataparser/module/locale"
	"github.com/gofhir/dataparser/module/unit"
	"github.com/gofhir/dataparser/pattern"
)

// Token tags validated by the module. The grouped digits tag is "#"
// followed by the group separator of the locale, e.g. "#," or "#.".
const (
	SignTag   = "-+"
	DigitsTag = "#"
	HexTag    = "X"
	SpaceTag  = " "
	UnitTag   = "unit"
)

// Module validates number tokens and ships the number patterns.
type Module struct {
	decimalSep string
	groupSep   string
	groupRune  rune
	groupTag   string

	units    *unit.Catalog
	patterns map[string][]*pattern.Pattern
}

// Option configures a Module.
type Option func(*Module)

// WithUnits restricts units to expressions known by c. Without it any
// expression matching the unit grammar is accepted.
func WithUnits(c *unit.Catalog) Option {
	return func(m *Module) {
		m.units = c
	}
}

// New builds the module for the separators of loc.
func New(loc *locale.Locale, opts ...Option) *Module {
	groupRune, _ := utf8.DecodeRuneInString(loc.GroupSeparator)
	m := &Module{
		decimalSep: loc.DecimalSeparator,
		groupSep:   loc.GroupSeparator,
		groupRune:  groupRune,
		groupTag:   DigitsTag + loc.GroupSeparator,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.patterns = m.buildPatterns()
	return m
}

// Name returns "number".
func (m *Module) Name() string { return "number" }

// PatternTags returns the root, int and float tags.
func (m *Module) PatternTags() []string {
	return []string{"", TagInt, TagFloat}
}

// TokenTags returns the tags validated by the module.
func (m *Module) TokenTags() []string {
	return []string{SignTag, DigitsTag, m.groupTag, HexTag, SpaceTag, UnitTag}
}

// GroupTag returns the grouped digits tag of the module's locale.
func (m *Module) GroupTag() string {
	return m.groupTag
}

// Patterns returns the patterns registered under tag.
func (m *Module) Patterns(tag string) []*pattern.Pattern {
	return m.patterns[tag]
}

// ValidateToken checks text against the token's character class and count.
func (m *Module) ValidateToken(_ *pattern.Context, tok *pattern.Token, text string, isFinal bool) bool {
	switch tok.Value {
	case SignTag:
		return counted(tok, text, isFinal, isSign)
	case DigitsTag:
		return counted(tok, text, isFinal, isDigit)
	case HexTag:
		return counted(tok, text, isFinal, isHex)
	case SpaceTag:
		return counted(tok, text, isFinal, isSpace)
	case m.groupTag:
		return validGrouped(text, m.groupRune, isFinal)
	case UnitTag:
		if !unit.Valid(text, isFinal) {
			return false
		}
		if isFinal && m.units != nil {
			return m.units.Known(text)
		}
		return true
	}
	return false
}

// FinalizeValue returns the text unchanged; the parse rule interprets it.
func (m *Module) FinalizeValue(_ *pattern.Context, _ *pattern.Token, text string) any {
	return text
}

// counted reports whether every rune of text satisfies class and the rune
// count fits the token's bounds.
func counted(tok *pattern.Token, text string, isFinal bool, class func(rune) bool) bool {
	if text == "" {
		return false
	}
	n := 0
	for _, r := range text {
		if !class(r) {
			return false
		}
		n++
	}
	if n > tok.MaxCount {
		return false
	}
	return !isFinal || n >= tok.MinCount
}

// validGrouped checks digits grouped by sep: a first group of one to three
// digits followed by groups of exactly three.
func validGrouped(text string, sep rune, isFinal bool) bool {
	group, groups := 0, 0
	for _, r := range text {
		switch {
		case isDigit(r):
			group++
			if group > 3 {
				return false
			}
		case r == sep:
			if group == 0 || (groups > 0 && group != 3) {
				return false
			}
			groups++
			group = 0
		default:
			return false
		}
	}

	if !isFinal {
		return true
	}
	if group == 0 {
		return false
	}
	return groups == 0 || group == 3
}

func isSign(r rune) bool  { return r == '-' || r == '+' }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }
func isSpace(r rune) bool { return r == ' ' || r == '\u00a0' }

func isHex(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
