// Package locale holds the language dependent tables used by the value
// modules: separators, boolean words and date order.
package locale

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// DefaultLanguage is used when a lookup finds no better match.
const DefaultLanguage = "en"

// DateOrder is the order of day, month and year in short dates.
type DateOrder string

// Supported date orders.
const (
	MDY DateOrder = "MDY"
	DMY DateOrder = "DMY"
	YMD DateOrder = "YMD"
)

// ErrInvalidLocale is returned when a catalogue entry is incomplete.
var ErrInvalidLocale = errors.New("invalid locale")

// Locale is the table of one language or culture.
type Locale struct {
	Name             string    `yaml:"-"`
	Parent           string    `yaml:"parent,omitempty"`
	DecimalSeparator string    `yaml:"decimalSeparator,omitempty"`
	GroupSeparator   string    `yaml:"groupSeparator,omitempty"`
	Truthy           []string  `yaml:"truthy,omitempty"`
	Falsy            []string  `yaml:"falsy,omitempty"`
	DateOrder        DateOrder `yaml:"dateOrder,omitempty"`
	DateSeparators   []string  `yaml:"dateSeparators,omitempty"`
}

// inherit fills unset fields from parent.
func (l *Locale) inherit(parent *Locale) {
	if l.DecimalSeparator == "" {
		l.DecimalSeparator = parent.DecimalSeparator
	}
	if l.GroupSeparator == "" {
		l.GroupSeparator = parent.GroupSeparator
	}
	if len(l.Truthy) == 0 {
		l.Truthy = parent.Truthy
	}
	if len(l.Falsy) == 0 {
		l.Falsy = parent.Falsy
	}
	if l.DateOrder == "" {
		l.DateOrder = parent.DateOrder
	}
	if len(l.DateSeparators) == 0 {
		l.DateSeparators = parent.DateSeparators
	}
}

func (l *Locale) validate() error {
	switch {
	case utf8.RuneCountInString(l.DecimalSeparator) != 1:
		return fmt.Errorf("%w %q: decimalSeparator must be a single character", ErrInvalidLocale, l.Name)
	case utf8.RuneCountInString(l.GroupSeparator) != 1:
		return fmt.Errorf("%w %q: groupSeparator must be a single character", ErrInvalidLocale, l.Name)
	case l.DecimalSeparator == l.GroupSeparator:
		return fmt.Errorf("%w %q: decimal and group separator are both %q", ErrInvalidLocale, l.Name, l.DecimalSeparator)
	}
	switch l.DateOrder {
	case MDY, DMY, YMD:
	default:
		return fmt.Errorf("%w %q: unknown dateOrder %q", ErrInvalidLocale, l.Name, l.DateOrder)
	}
	return nil
}

// Catalog maps language and culture names to locales.
type Catalog struct {
	locales map[string]*Locale
}

//go:embed locales.yaml
var builtin []byte

// Builtin returns the catalogue shipped with the module.
func Builtin() *Catalog {
	c, err := Parse(builtin)
	if err != nil {
		panic("locale: invalid builtin catalogue: " + err.Error())
	}
	return c
}

// Load reads a YAML catalogue.
func Load(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalogue and resolves parent references.
func Parse(data []byte) (*Catalog, error) {
	var raw map[string]*Locale
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse locales: %w", err)
	}

	c := &Catalog{locales: make(map[string]*Locale, len(raw))}
	for name, l := range raw {
		if l == nil {
			return nil, fmt.Errorf("%w %q: empty entry", ErrInvalidLocale, name)
		}
		l.Name = name
		c.locales[normalize(name)] = l
	}

	for _, l := range c.locales {
		if err := c.resolve(l, nil); err != nil {
			return nil, err
		}
	}
	for _, l := range c.locales {
		if err := l.validate(); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) resolve(l *Locale, seen []string) error {
	if l.Parent == "" {
		return nil
	}
	for _, s := range seen {
		if s == l.Name {
			return fmt.Errorf("%w %q: parent cycle", ErrInvalidLocale, l.Name)
		}
	}
	parent, ok := c.locales[normalize(l.Parent)]
	if !ok {
		return fmt.Errorf("%w %q: unknown parent %q", ErrInvalidLocale, l.Name, l.Parent)
	}
	if err := c.resolve(parent, append(seen, l.Name)); err != nil {
		return err
	}
	l.inherit(parent)
	l.Parent = ""
	return nil
}

// Merge returns a catalogue with the entries of other added to c.
// Entries of other win.
func (c *Catalog) Merge(other *Catalog) *Catalog {
	merged := &Catalog{locales: make(map[string]*Locale, len(c.locales)+len(other.locales))}
	for k, v := range c.locales {
		merged.locales[k] = v
	}
	for k, v := range other.locales {
		merged.locales[k] = v
	}
	return merged
}

// Lookup returns the most specific locale for culture and language.
// It tries the culture ("de-AT"), its language part, language, and finally
// DefaultLanguage.
func (c *Catalog) Lookup(language, culture string) *Locale {
	candidates := []string{culture}
	if i := strings.IndexAny(culture, "-_"); i > 0 {
		candidates = append(candidates, culture[:i])
	}
	candidates = append(candidates, language, DefaultLanguage)

	for _, name := range candidates {
		if name == "" {
			continue
		}
		if l, ok := c.locales[normalize(name)]; ok {
			return l
		}
	}
	return nil
}

// Names returns the sorted locale names.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.locales))
	for _, l := range c.locales {
		names = append(names, l.Name)
	}
	sort.Strings(names)
	return names
}

func normalize(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "_", "-"))
}
