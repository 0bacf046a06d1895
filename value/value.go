// Package value defines the typed results produced by the bundled modules.
package value

import (
	"fmt"
	"reflect"
)

// Kind names the type of a parsed value.
type Kind string

// Value kinds.
const (
	KindBoolean Kind = "boolean"
	KindNumber  Kind = "number"
	KindDate    Kind = "date"
	KindOther   Kind = "other"
)

// Value is implemented by all typed results.
type Value interface {
	fmt.Stringer
	Kind() Kind
}

// KindOf returns the kind of v, or KindOther for values of other types.
func KindOf(v any) Kind {
	if tv, ok := v.(Value); ok {
		return tv.Kind()
	}
	return KindOther
}

type equaler interface {
	Equal(other any) bool
}

// Equal reports whether a and b are structurally equal. Types with an
// Equal(any) bool method decide for themselves.
func Equal(a, b any) bool {
	if e, ok := a.(equaler); ok {
		return e.Equal(b)
	}
	return reflect.DeepEqual(a, b)
}
