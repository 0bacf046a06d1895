// Package date recognises calendar dates written in ISO 8601 form or in the
// day/month/year order of a locale.
package date

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofhir/fhirpath"

	"github.com/gofhir/dataparser/cache"
	"github.com/gofhir/dataparser/module/locale"
	"github.com/gofhir/dataparser/pattern"
	"github.com/gofhir/dataparser/value"
)

// Token tags validated by the module.
const (
	YearTag  = "yyyy"
	MonthTag = "MM"
	DayTag   = "dd"
)

// ISOPattern is accepted regardless of locale.
const ISOPattern = "{" + YearTag + "}-{" + MonthTag + "}-{" + DayTag + "}"

var (
	// ErrInvalidDate is returned when the parts do not form a calendar date.
	ErrInvalidDate = errors.New("invalid calendar date")

	// ErrInvalidLiteral is returned when an ISO date is not a valid
	// FHIRPath date literal.
	ErrInvalidLiteral = errors.New("invalid date literal")
)

// Module validates date tokens and ships the date patterns.
type Module struct {
	order    locale.DateOrder
	patterns []*pattern.Pattern
	literals *cache.Cache[string, bool]
}

// New builds the module for the date order and separators of loc.
func New(loc *locale.Locale) *Module {
	m := &Module{
		order:    loc.DateOrder,
		literals: cache.New[string, bool](256),
	}

	m.patterns = []*pattern.Pattern{pattern.New(ISOPattern, rule{module: m, year: 0, month: 2, day: 4, iso: true})}
	for _, sep := range loc.DateSeparators {
		var body string
		var rl rule
		switch loc.DateOrder {
		case locale.DMY:
			body = "{" + DayTag + "}" + sep + "{" + MonthTag + "}" + sep + "{" + YearTag + "}"
			rl = rule{module: m, day: 0, month: 2, year: 4}
		case locale.MDY:
			body = "{" + MonthTag + "}" + sep + "{" + DayTag + "}" + sep + "{" + YearTag + "}"
			rl = rule{module: m, month: 0, day: 2, year: 4}
		default:
			body = "{" + YearTag + "}" + sep + "{" + MonthTag + "}" + sep + "{" + DayTag + "}"
			rl = rule{module: m, year: 0, month: 2, day: 4}
		}
		if body == ISOPattern {
			continue
		}
		m.patterns = append(m.patterns, pattern.New(body, rl))
	}
	return m
}

// Name returns "date".
func (m *Module) Name() string { return "date" }

// Order returns the locale date order the module was built for.
func (m *Module) Order() locale.DateOrder { return m.order }

// PatternTags returns the root tag.
func (m *Module) PatternTags() []string { return []string{""} }

// TokenTags returns the year, month and day tags.
func (m *Module) TokenTags() []string { return []string{YearTag, MonthTag, DayTag} }

// Patterns returns the date patterns for the root tag.
func (m *Module) Patterns(tag string) []*pattern.Pattern {
	if tag != "" {
		return nil
	}
	return m.patterns
}

// ValidateToken checks digit counts and value ranges.
func (m *Module) ValidateToken(_ *pattern.Context, tok *pattern.Token, text string, isFinal bool) bool {
	switch tok.Value {
	case YearTag:
		return validNumber(text, 4, 4, 0, 9999, isFinal)
	case MonthTag:
		return validNumber(text, 1, 2, 1, 12, isFinal)
	case DayTag:
		return validNumber(text, 1, 2, 1, 31, isFinal)
	}
	return false
}

// FinalizeValue returns the text unchanged.
func (m *Module) FinalizeValue(_ *pattern.Context, _ *pattern.Token, text string) any {
	return text
}

// validNumber checks a run of digits. Partial text may be shorter than
// minDigits and is range checked only once it reaches maxDigits.
func validNumber(text string, minDigits, maxDigits, lo, hi int, isFinal bool) bool {
	if text == "" || len(text) > maxDigits {
		return false
	}
	for i := 0; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			return false
		}
	}
	if !isFinal && len(text) < maxDigits {
		return true
	}
	if len(text) < minDigits {
		return false
	}
	n, _ := strconv.Atoi(text)
	return n >= lo && n <= hi
}

// validLiteral reports whether iso compiles as a FHIRPath date literal.
func (m *Module) validLiteral(iso string) bool {
	ok, _ := m.literals.GetOrCreate(iso, func() (bool, error) {
		_, err := fhirpath.Compile("@" + iso)
		return err == nil, nil
	})
	return ok
}

// rule builds a value.Date from token indices.
type rule struct {
	module           *Module
	year, month, day int
	iso              bool
}

// Parse implements pattern.Parser.
func (r rule) Parse(_ *pattern.Context, values []any) (any, error) {
	ys, ms, ds := text(values, r.year), text(values, r.month), text(values, r.day)

	y, _ := strconv.Atoi(ys)
	mo, _ := strconv.Atoi(ms)
	d, _ := strconv.Atoi(ds)

	date, ok := value.NewDate(y, mo, d)
	if !ok {
		return nil, fmt.Errorf("%w: %s-%s-%s", ErrInvalidDate, ys, ms, ds)
	}
	if r.iso {
		lit := ys + "-" + ms + "-" + ds
		if !r.module.validLiteral(lit) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidLiteral, lit)
		}
	}
	return date, nil
}

func text(values []any, i int) string {
	if i < 0 || i >= len(values) {
		return ""
	}
	s, _ := values[i].(string)
	return s
}
