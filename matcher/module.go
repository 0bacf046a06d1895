package matcher

import (
	"fmt"

	"github.com/gofhir/dataparser/pattern"
)

// Validator checks and converts the text matched by a placeholder token.
type Validator interface {
	// ValidateToken reports whether text is acceptable for tok. With isFinal
	// false, text is a prefix and the validator only rejects it when no
	// continuation could become valid.
	ValidateToken(ctx *pattern.Context, tok *pattern.Token, text string, isFinal bool) bool

	// FinalizeValue converts fully matched text into the value handed to
	// parse rules. text is empty for a skipped optional token.
	FinalizeValue(ctx *pattern.Context, tok *pattern.Token, text string) any
}

// Module is a Validator that also ships the patterns using its tokens.
type Module interface {
	Validator

	// PatternTags lists the tags the module registers patterns for.
	// The empty tag is the root tag matched by Match.
	PatternTags() []string

	// TokenTags lists the token values the module validates.
	TokenTags() []string

	// Patterns returns the patterns registered under tag.
	Patterns(tag string) []*pattern.Pattern
}

// Namer is implemented by validators that want a readable name in reasons.
type Namer interface {
	Name() string
}

func validatorName(v Validator) string {
	if n, ok := v.(Namer); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", v)
}
