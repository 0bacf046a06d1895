package dataparser

import (
	"runtime"

	"github.com/gofhir/dataparser/module/locale"
	"github.com/gofhir/dataparser/pattern"
	"github.com/gofhir/dataparser/pkg/logger"
)

// Option configures the Parser.
type Option func(*Options)

// Options holds all configuration for the Parser.
type Options struct {
	// Modules lists the value modules to load
	Modules []ModuleName

	// Locale selection
	Language string
	Culture  string

	// Matching
	TrimWhitespace bool
	Reasons        bool
	StrictUnits    bool

	// Locales extends the built-in locale catalogue. Its entries win.
	Locales *locale.Catalog

	// Performance
	WorkerCount int

	// Registry and RegistryName share one matcher between parsers built
	// with the same name. An empty name builds a private matcher.
	Registry     *Registry
	RegistryName string

	// Observability
	Logger  *logger.Logger
	Metrics *Metrics
}

// DefaultOptions returns the default configuration.
func DefaultOptions() *Options {
	return &Options{
		Modules:        DefaultModules(),
		Language:       pattern.DefaultLanguage,
		TrimWhitespace: true,
		WorkerCount:    runtime.NumCPU(),
	}
}

// context returns the pattern context described by o.
func (o *Options) context() *pattern.Context {
	pc := pattern.NewContext()
	pc.TrimWhitespace = o.TrimWhitespace
	pc.Reasons = o.Reasons
	if o.Language != "" {
		pc.Language = o.Language
	}
	pc.Culture = o.Culture
	return pc
}

// --- Module Options ---

// WithModules sets the value modules to load.
// Unknown names make New fail with ErrUnknownModule.
func WithModules(names ...ModuleName) Option {
	return func(o *Options) {
		o.Modules = names
	}
}

// WithStrictUnits accepts only units whose symbols are in the unit catalogue.
func WithStrictUnits(enable bool) Option {
	return func(o *Options) {
		o.StrictUnits = enable
	}
}

// --- Locale Options ---

// WithLanguage sets the language used to pick locale tables.
func WithLanguage(lang string) Option {
	return func(o *Options) {
		o.Language = lang
	}
}

// WithCulture sets the culture, e.g. "en-GB". It takes precedence over
// the language when the catalogue has an entry for it.
func WithCulture(culture string) Option {
	return func(o *Options) {
		o.Culture = culture
	}
}

// WithLocales adds a locale catalogue on top of the built-in one.
func WithLocales(c *locale.Catalog) Option {
	return func(o *Options) {
		o.Locales = c
	}
}

// --- Matching Options ---

// WithTrimWhitespace skips leading and trailing whitespace of the input.
func WithTrimWhitespace(enable bool) Option {
	return func(o *Options) {
		o.TrimWhitespace = enable
	}
}

// WithReasons records why each candidate was kept or dropped.
// Reasons are returned by Explain.
func WithReasons(enable bool) Option {
	return func(o *Options) {
		o.Reasons = enable
	}
}

// --- Performance Options ---

// WithWorkerCount sets the number of goroutines used by ParseBatch.
// Values <= 0 select runtime.NumCPU().
func WithWorkerCount(count int) Option {
	return func(o *Options) {
		if count <= 0 {
			count = runtime.NumCPU()
		}
		o.WorkerCount = count
	}
}

// WithRegistry shares the matcher built for name through reg.
func WithRegistry(reg *Registry, name string) Option {
	return func(o *Options) {
		o.Registry = reg
		o.RegistryName = name
	}
}

// --- Observability Options ---

// WithLogger sets the logger. The default is logger.Default().
func WithLogger(l *logger.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithMetrics records parse metrics into m.
func WithMetrics(m *Metrics) Option {
	return func(o *Options) {
		o.Metrics = m
	}
}

// --- Presets ---

// StrictOptions returns options for strict input.
// Whitespace is significant and units must be known.
func StrictOptions() []Option {
	return []Option{
		WithTrimWhitespace(false),
		WithStrictUnits(true),
	}
}

// DebugOptions returns options useful for debugging.
// Enables reasons and metrics and uses a single worker.
func DebugOptions() []Option {
	return []Option{
		WithReasons(true),
		WithMetrics(NewMetrics()),
		WithWorkerCount(1),
	}
}
