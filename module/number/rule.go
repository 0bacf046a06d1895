package number

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/gofhir/dataparser/pattern"
	"github.com/gofhir/dataparser/value"
)

// MaxExponent bounds the magnitude of accepted exponents.
const MaxExponent = 1000

// ErrExponentRange is returned for exponents beyond MaxExponent.
var ErrExponentRange = errors.New("exponent out of range")

// rule builds a value.Number from the values of a matched pattern.
// Fields hold token indices, absent when the pattern has no such token.
type rule struct {
	module *Module

	sign        int
	integral    int
	fraction    int
	expSign     int
	exponent    int
	expFraction int
	unit        int
	grouped     bool
}

// Parse implements pattern.Parser.
func (r rule) Parse(_ *pattern.Context, values []any) (any, error) {
	exponent := ""
	if r.exponent != absent {
		exponent = str(values, r.expSign) + str(values, r.exponent)
		if r.expFraction != absent {
			exponent += "." + str(values, r.expFraction)
		}
	}

	groupSep := ""
	if r.grouped {
		groupSep = r.module.groupSep
	}

	n, err := Make(str(values, r.sign), str(values, r.integral), exponent, str(values, r.fraction), groupSep, str(values, r.unit))
	if err != nil {
		return nil, err
	}
	return n, nil
}

// str returns values[i] as a string, or "" when i is absent or the value
// is not a string.
func str(values []any, i int) string {
	if i < 0 || i >= len(values) {
		return ""
	}
	s, _ := values[i].(string)
	return s
}

// Make assembles a number from its written parts. integral and fraction are
// digit strings, integral may contain groupSep, exponent is an optional
// signed decimal ("-3", "+2.5").
//
// Decimals is the length of fraction, reduced by a positive exponent and
// increased by a negative one, never below zero.
func Make(sign, integral, exponent, fraction, groupSep, unit string) (value.Number, error) {
	decimals := utf8.RuneCountInString(fraction)

	if integral == "" {
		integral = "0"
	} else if groupSep != "" {
		integral = strings.ReplaceAll(integral, groupSep, "")
	}
	if fraction == "" {
		fraction = "0"
	}

	v, err := decimal.NewFromString(integral + "." + fraction)
	if err != nil {
		return value.Number{}, fmt.Errorf("number %q.%q: %w", integral, fraction, err)
	}
	if sign == "-" {
		v = v.Neg()
	}

	if exponent != "" {
		exp, err := decimal.NewFromString(strings.TrimPrefix(exponent, "+"))
		if err != nil {
			return value.Number{}, fmt.Errorf("exponent %q: %w", exponent, err)
		}
		if exp.Abs().GreaterThan(decimal.NewFromInt(MaxExponent)) {
			return value.Number{}, fmt.Errorf("%w: %s", ErrExponentRange, exponent)
		}

		f := exp.InexactFloat64()
		if exp.IsInteger() {
			v = v.Shift(int32(exp.IntPart()))
		} else {
			v = v.Mul(decimal.NewFromFloat(math.Pow(10, f)))
		}

		d := math.Floor(float64(decimals) - f + 0.5)
		if d < 0 {
			d = 0
		}
		decimals = int(d)
	}

	return value.Number{Value: v, Unit: unit, Decimals: decimals}, nil
}

// hexRule parses "0x" followed by hexadecimal digits into an integer.
type hexRule struct{}

// Parse implements pattern.Parser.
func (hexRule) Parse(_ *pattern.Context, values []any) (any, error) {
	digits := str(values, 1)
	b, ok := new(big.Int).SetString(digits, 16)
	if !ok {
		return nil, fmt.Errorf("hex number %q: invalid digits", digits)
	}
	return value.Number{Value: decimal.NewFromBigInt(b, 0)}, nil
}
