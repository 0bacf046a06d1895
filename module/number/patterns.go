package number

import (
	"strings"

	"github.com/gofhir/dataparser/pattern"
)

// Pattern tags registered by the module. The root tag accepts numbers with
// an optional unit; "int" and "float" accept bare numbers.
const (
	TagInt   = "int"
	TagFloat = "float"
)

const absent = -1

// shape describes one pattern. The body uses {G} for the grouped digits
// token and {D} for the decimal separator; rule holds the token indices the
// parse rule reads.
type shape struct {
	body string
	rule rule
}

func r(sign, integral, fraction, expSign, exponent, expFraction int, grouped bool) rule {
	return rule{
		sign:        sign,
		integral:    integral,
		fraction:    fraction,
		expSign:     expSign,
		exponent:    exponent,
		expFraction: expFraction,
		unit:        absent,
		grouped:     grouped,
	}
}

var floatShapes = []shape{
	{"{-+:?}{G}{D}{#:*}", r(0, 1, 3, absent, absent, absent, true)},
	{"{-+:?}{#:*}{D}{#:+}", r(0, 1, 3, absent, absent, absent, false)},
	{"{-+:?}{G}{D}{#:*}e{-+:?}{#:+}", r(0, 1, 3, 5, 6, absent, true)},
	{"{-+:?}{G}{D}{#:*}e{-+:?}{#:+}{D}{#:+}", r(0, 1, 3, 5, 6, 8, true)},
	{"{-+:?}{#:+}{D}{#:*}e{-+:?}{#:+}", r(0, 1, 3, 5, 6, absent, false)},
	{"{-+:?}{#:+}{D}{#:*}e{-+:?}{#:+}{D}{#:+}", r(0, 1, 3, 5, 6, 8, false)},
}

var intShapes = []shape{
	{"{-+:?}{#:+}", r(0, 1, absent, absent, absent, absent, false)},
	{"{-+:?}{G}", r(0, 1, absent, absent, absent, absent, true)},
	{"{-+:?}{#:+}e{-+:?}{#:+}", r(0, 1, absent, 3, 4, absent, false)},
	{"{-+:?}{#:+}e{-+:?}{#:+}{D}{#:+}", r(0, 1, absent, 3, 4, 6, false)},
	{"{-+:?}{G}e{-+:?}{#:+}", r(0, 1, absent, 3, 4, absent, true)},
	{"{-+:?}{G}e{-+:?}{#:+}{D}{#:+}", r(0, 1, absent, 3, 4, 6, true)},
}

// unitSuffix follows every root pattern.
const unitSuffix = "{" + SpaceTag + ":*}{" + UnitTag + ":*}"

func (m *Module) buildPatterns() map[string][]*pattern.Pattern {
	replacer := strings.NewReplacer(
		"{G}", "{"+m.groupTag+":+}",
		"{D}", m.decimalSep,
	)

	build := func(shapes []shape, withUnit bool) []*pattern.Pattern {
		out := make([]*pattern.Pattern, 0, len(shapes))
		for _, s := range shapes {
			body := replacer.Replace(s.body)
			rl := s.rule
			rl.module = m
			if withUnit {
				// the suffix adds a space token and a unit token
				rl.unit = len(pattern.Tokenize(body)) + 1
				body += unitSuffix
			}
			out = append(out, pattern.New(body, rl))
		}
		return out
	}

	root := append(build(floatShapes, true), build(intShapes, true)...)
	root = append(root, pattern.New("0x{"+HexTag+":+}", hexRule{}))

	return map[string][]*pattern.Pattern{
		"":       root,
		TagInt:   build(intShapes, false),
		TagFloat: build(floatShapes, false),
	}
}
