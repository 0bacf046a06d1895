package value

import "github.com/shopspring/decimal"

// Number is a parsed decimal number with an optional unit.
type Number struct {
	Value decimal.Decimal `json:"value"`

	// Unit is the unit expression following the number, if any.
	Unit string `json:"unit,omitempty"`

	// Decimals is the number of significant fractional digits written.
	Decimals int `json:"decimals"`
}

// Kind returns KindNumber.
func (n Number) Kind() Kind { return KindNumber }

// String formats the number with its written precision and unit.
func (n Number) String() string {
	s := n.Value.StringFixed(int32(n.Decimals))
	if n.Unit != "" {
		s += " " + n.Unit
	}
	return s
}

// Float64 returns the nearest float64 value.
func (n Number) Float64() float64 {
	f, _ := n.Value.Float64()
	return f
}

// IsInteger reports whether the number has no fractional part.
func (n Number) IsInteger() bool {
	return n.Value.IsInteger()
}

// Equal reports whether other is a Number with the same value, unit and
// precision.
func (n Number) Equal(other any) bool {
	o, ok := other.(Number)
	return ok && n.Value.Equal(o.Value) && n.Unit == o.Unit && n.Decimals == o.Decimals
}
