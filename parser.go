package dataparser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gofhir/dataparser/matcher"
	"github.com/gofhir/dataparser/module/locale"
	"github.com/gofhir/dataparser/pattern"
	"github.com/gofhir/dataparser/pkg/logger"
	"github.com/gofhir/dataparser/value"
	"github.com/gofhir/dataparser/worker"
)

// ErrCancelled is returned by ParseContext when its context is done.
var ErrCancelled = matcher.ErrCancelled

// Parser turns text into every value it can be read as.
// A Parser is safe for concurrent use.
type Parser struct {
	opts    *Options
	locale  *locale.Locale
	context *pattern.Context
	matcher *matcher.Matcher
	batch   *worker.Batch
	logger  *logger.Logger
	metrics *Metrics

	dateOnce    sync.Once
	dateMatcher *matcher.Matcher
	dateErr     error
}

// New creates a Parser.
func New(opts ...Option) (*Parser, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.Logger == nil {
		o.Logger = logger.Default()
	}
	if len(o.Modules) == 0 {
		o.Modules = DefaultModules()
	}

	catalog := locale.Builtin()
	if o.Locales != nil {
		catalog = catalog.Merge(o.Locales)
	}
	loc := catalog.Lookup(o.Language, o.Culture)
	if loc == nil {
		return nil, fmt.Errorf("%w: no entry for %q", locale.ErrInvalidLocale, o.Language)
	}

	mods, err := buildModules(o.Modules, loc, o)
	if err != nil {
		return nil, err
	}

	p := &Parser{
		opts:    o,
		locale:  loc,
		context: o.context(),
		logger:  o.Logger,
		metrics: o.Metrics,
	}

	build := func() (*matcher.Matcher, error) {
		return buildMatcher(p.logger, p.context, mods)
	}
	if o.Registry == nil {
		p.matcher, err = build()
	} else {
		p.matcher, err = p.shared(o.Registry, o.RegistryName, build)
	}
	if err != nil {
		return nil, err
	}

	p.batch = worker.NewBatch(p.ParseContext, o.WorkerCount)

	p.logger.Debug("parser ready: locale %s, modules %v", loc.Name, o.Modules)
	return p, nil
}

func (p *Parser) shared(reg *Registry, name string, build func() (*matcher.Matcher, error)) (*matcher.Matcher, error) {
	m, built, err := reg.lookup(name, build)
	if err != nil {
		return nil, err
	}
	if p.metrics != nil && name != "" {
		if built {
			p.metrics.RecordCacheMiss()
		} else {
			p.metrics.RecordCacheHit()
		}
	}
	return m, nil
}

// Locale returns the locale the modules were built for.
func (p *Parser) Locale() *locale.Locale {
	return p.locale
}

// Context returns a copy of the default pattern context.
func (p *Parser) Context() *pattern.Context {
	return p.context.Clone()
}

// Matcher returns the underlying matcher.
func (p *Parser) Matcher() *matcher.Matcher {
	return p.matcher
}

// Metrics returns the metrics recorder, or nil.
func (p *Parser) Metrics() *Metrics {
	return p.metrics
}

// Parse returns every value text can be read as, most specific first.
// No match yields an empty list.
func (p *Parser) Parse(text string) []any {
	return p.ParseWithContext(nil, text)
}

// ParseWithContext is like Parse with an explicit pattern context.
// A nil context selects the parser's default.
func (p *Parser) ParseWithContext(pc *pattern.Context, text string) []any {
	res, _ := p.match(context.Background(), p.matcher, pc, text)
	return res.Values
}

// ParseContext is like Parse but stops when ctx is done, returning an
// error wrapping ErrCancelled.
func (p *Parser) ParseContext(ctx context.Context, text string) ([]any, error) {
	res, err := p.match(ctx, p.matcher, nil, text)
	if err != nil {
		return nil, err
	}
	return res.Values, nil
}

// Explain parses text with reasons enabled and returns the values together
// with the trace of every surviving candidate.
func (p *Parser) Explain(text string) matcher.Result {
	pc := p.context.Clone()
	pc.Reasons = true
	res, _ := p.match(context.Background(), p.matcher, pc, text)
	return res
}

// ParseDate returns the first date text can be read as.
// Only the number and date modules take part, whatever the parser loads.
func (p *Parser) ParseDate(text string) (value.Date, bool) {
	p.dateOnce.Do(func() {
		var mods []matcher.Module
		mods, p.dateErr = buildModules(dateModules, p.locale, p.opts)
		if p.dateErr == nil {
			p.dateMatcher, p.dateErr = buildMatcher(p.logger, p.context, mods)
		}
		if p.dateErr != nil {
			p.logger.Error("date matcher: %v", p.dateErr)
		}
	})
	if p.dateErr != nil {
		return value.Date{}, false
	}

	res, _ := p.match(context.Background(), p.dateMatcher, nil, text)
	for _, v := range res.Values {
		if d, ok := v.(value.Date); ok {
			return d, true
		}
	}
	return value.Date{}, false
}

// ParseBatch parses values in parallel and returns one result per value,
// in input order.
func (p *Parser) ParseBatch(ctx context.Context, values []string) []*ParseResult {
	if p.metrics != nil {
		p.metrics.RecordBatch()
	}
	br := p.batch.Run(ctx, values)

	out := make([]*ParseResult, len(br.Results))
	for i, r := range br.Results {
		out[i] = fromJob(r)
	}
	return out
}

func (p *Parser) match(ctx context.Context, m *matcher.Matcher, pc *pattern.Context, text string) (matcher.Result, error) {
	if pc == nil {
		pc = p.context
	}

	start := time.Now()
	res, err := m.MatchContext(ctx, pc, text)
	if p.metrics != nil {
		if err != nil {
			p.metrics.RecordCancelled()
		} else {
			p.metrics.RecordParse(time.Since(start), res.Values)
		}
	}
	return res, err
}
