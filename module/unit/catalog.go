package unit

import (
	"sort"

	ac "github.com/petar-dambovaliev/aho-corasick"
)

// Symbols is the default list of known unit symbols and names.
var Symbols = []string{
	// length
	"m", "km", "cm", "mm", "um", "nm", "in", "ft", "yd", "mi",
	"meter", "metre", "kilometer", "kilometre", "mile", "inch", "foot", "feet",
	// mass
	"g", "kg", "mg", "ug", "t", "lb", "lbs", "oz", "gram", "kilogram", "ton", "pound",
	// volume
	"l", "ml", "dl", "cl", "L", "gal", "liter", "litre",
	// time
	"s", "ms", "us", "ns", "min", "h", "hr", "d", "wk", "mo", "a", "y", "yr",
	"sec", "second", "minute", "hour", "day", "week", "month", "year",
	// data
	"B", "KB", "MB", "GB", "TB", "PB", "bit", "byte", "kbit", "Mbit", "Gbit",
	// derived
	"N", "J", "W", "kW", "MW", "Pa", "kPa", "bar", "Hz", "kHz", "MHz", "GHz",
	"V", "A", "mA", "Ohm", "C", "K", "mol", "mmol", "cd", "lm", "lx",
	"cal", "kcal", "Wh", "kWh", "eV", "pct",
}

// Catalog recognises unit expressions built from known symbols. A factor is
// known when it can be tiled completely by catalogue symbols, so compounds
// such as "kWh" or "Nm" are accepted.
type Catalog struct {
	automaton *ac.AhoCorasick
	symbols   []string
}

// NewCatalog builds a case-insensitive catalogue from symbols.
func NewCatalog(symbols []string) *Catalog {
	builder := ac.NewAhoCorasickBuilder(ac.Opts{
		AsciiCaseInsensitive: true,
		MatchKind:            ac.LeftMostLongestMatch,
	})
	automaton := builder.Build(symbols)
	return &Catalog{
		automaton: &automaton,
		symbols:   append([]string(nil), symbols...),
	}
}

// DefaultCatalog returns a catalogue of Symbols.
func DefaultCatalog() *Catalog {
	return NewCatalog(Symbols)
}

// Len returns the number of symbols.
func (c *Catalog) Len() int {
	return len(c.symbols)
}

// Known reports whether every factor of the expression is known.
func (c *Catalog) Known(expr string) bool {
	if !Valid(expr, true) {
		return false
	}
	for _, f := range Factors(expr) {
		if !c.tiles(f) {
			return false
		}
	}
	return true
}

// tiles reports whether factor can be split into catalogue symbols.
// Matches may overlap ("kg" yields "kg" and "g"); a position is reachable
// when some match from a reachable position ends there.
func (c *Catalog) tiles(factor string) bool {
	matches := c.automaton.FindAll(factor)
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Start() < matches[j].Start()
	})

	reachable := make([]bool, len(factor)+1)
	reachable[0] = true
	for _, m := range matches {
		if reachable[m.Start()] {
			reachable[m.End()] = true
		}
	}
	return reachable[len(factor)]
}
