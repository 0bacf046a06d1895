package pattern

// DefaultLanguage is the language assumed when a context does not name one.
const DefaultLanguage = "en"

// Context configures one matching session.
// The engine reads it but never modifies it; validators and parse rules
// may interpret the locale fields and Values.
type Context struct {
	// TrimWhitespace skips leading and trailing spaces, tabs and line breaks.
	TrimWhitespace bool

	// Reasons enables the per-candidate diagnostic trace.
	Reasons bool

	// Language selects the locale tables used by value modules (e.g. "en", "de").
	Language string

	// Culture is an optional region refinement of Language (e.g. "en-GB").
	Culture string

	// Values carries free-form settings for custom validators.
	Values map[string]any
}

// NewContext returns the default context: whitespace trimming on, no reasons,
// default language.
func NewContext() *Context {
	return &Context{
		TrimWhitespace: true,
		Language:       DefaultLanguage,
	}
}

// Lang returns the configured language or the default one.
func (c *Context) Lang() string {
	if c == nil || c.Language == "" {
		return DefaultLanguage
	}
	return c.Language
}

// Get returns a free-form value.
func (c *Context) Get(key string) (any, bool) {
	if c == nil || c.Values == nil {
		return nil, false
	}
	v, ok := c.Values[key]
	return v, ok
}

// Clone returns a copy of the context. The Values map is copied as well.
func (c *Context) Clone() *Context {
	if c == nil {
		return NewContext()
	}
	clone := *c
	if c.Values != nil {
		clone.Values = make(map[string]any, len(c.Values))
		for k, v := range c.Values {
			clone.Values[k] = v
		}
	}
	return &clone
}

// With returns a copy of the context with key set to v.
func (c *Context) With(key string, v any) *Context {
	clone := c.Clone()
	if clone.Values == nil {
		clone.Values = make(map[string]any, 1)
	}
	clone.Values[key] = v
	return clone
}
