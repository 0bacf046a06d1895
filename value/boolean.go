package value

import "strconv"

// Boolean is a parsed truth value.
type Boolean struct {
	Value bool `json:"value"`
}

// Kind returns KindBoolean.
func (b Boolean) Kind() Kind { return KindBoolean }

func (b Boolean) String() string {
	return strconv.FormatBool(b.Value)
}

// Equal reports whether other is a Boolean with the same value.
func (b Boolean) Equal(other any) bool {
	o, ok := other.(Boolean)
	return ok && o.Value == b.Value
}
