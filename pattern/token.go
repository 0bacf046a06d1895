package pattern

import (
	"math"
	"strconv"
	"strings"
)

// Max is the repetition bound used for unbounded quantifiers (+ and *).
const Max = math.MaxInt32

// Token is a quantified unit of a pattern.
type Token struct {
	// Value is the literal text of an exact token, or the tag name of a placeholder.
	Value string

	// MinCount and MaxCount bound the number of repetitions.
	MinCount int
	MaxCount int

	// ExactMatch is true for literal text and false for tag placeholders.
	ExactMatch bool

	// IsSubMatch is true when Value names a tag that has its own compiled
	// patterns. It is derived by the matcher that owns the token.
	IsSubMatch bool
}

// NewExactToken creates a literal token. The text is used verbatim, colons included.
func NewExactToken(text string) *Token {
	return &Token{
		Value:      text,
		MinCount:   1,
		MaxCount:   1,
		ExactMatch: true,
	}
}

// ParseToken parses the contents of a placeholder ("name" or "name:quantifier").
func ParseToken(s string) *Token {
	t := &Token{Value: s, MinCount: 1, MaxCount: 1}

	idx := strings.LastIndexByte(s, ':')
	if idx < 0 {
		return t
	}

	t.Value = s[:idx]
	t.MinCount, t.MaxCount = parseQuantifier(s[idx+1:])
	return t
}

// parseQuantifier expands a quantifier into its (min, max) bounds.
func parseQuantifier(q string) (int, int) {
	switch q {
	case "":
		return 1, 1
	case "+":
		return 1, Max
	case "*":
		return 0, Max
	case "?":
		return 0, 1
	}

	dash := strings.IndexByte(q, '-')
	if dash < 0 {
		n := atoiDefault(q, 1)
		return n, n
	}

	minCount := 0
	if left := q[:dash]; left != "" {
		minCount = atoiDefault(left, 1)
	}

	maxCount := minCount
	if right := q[dash+1:]; right != "" {
		maxCount = atoiDefault(right, minCount)
	}
	if maxCount < minCount {
		maxCount = minCount
	}
	return minCount, maxCount
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return def
	}
	return n
}

// Equal reports whether two tokens are structurally equal.
// The quantifier spelling and the derived sub-match flag do not matter.
func (t *Token) Equal(other *Token) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.Value == other.Value &&
		t.ExactMatch == other.ExactMatch &&
		t.MinCount == other.MinCount &&
		t.MaxCount == other.MaxCount
}

// String returns the canonical form of the token.
// Placeholders always render the expanded "value:min-max" form.
func (t *Token) String() string {
	if t.ExactMatch {
		return t.Value
	}
	var b strings.Builder
	b.Grow(len(t.Value) + 24)
	b.WriteString(t.Value)
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(t.MinCount))
	b.WriteByte('-')
	b.WriteString(strconv.Itoa(t.MaxCount))
	return b.String()
}

// clone returns a copy of the token.
func (t *Token) clone() *Token {
	c := *t
	return &c
}
