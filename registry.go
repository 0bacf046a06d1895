package dataparser

import (
	"fmt"

	"github.com/gofhir/dataparser/cache"
	"github.com/gofhir/dataparser/matcher"
	"github.com/gofhir/dataparser/pattern"
	"github.com/gofhir/dataparser/pkg/logger"
)

// DefaultRegistryCapacity is used when NewRegistry is given a non-positive
// capacity.
const DefaultRegistryCapacity = cache.DefaultCapacity

// Registry shares built matchers by name.
// A name is built once and reused until it is evicted or removed.
type Registry struct {
	matchers *cache.Cache[string, *matcher.Matcher]
	logger   *logger.Logger
}

// NewRegistry creates a registry holding at most capacity matchers.
func NewRegistry(capacity int) *Registry {
	if capacity <= 0 {
		capacity = DefaultRegistryCapacity
	}
	r := &Registry{
		matchers: cache.New[string, *matcher.Matcher](capacity),
		logger:   logger.Default().Named("registry"),
	}
	r.matchers.OnEvict(func(name string, _ *matcher.Matcher) {
		r.logger.Debug("evicted matcher %q", name)
	})
	return r
}

// SetLogger sets the logger used for build messages.
func (r *Registry) SetLogger(l *logger.Logger) {
	r.logger = l
}

// Matcher returns the matcher registered as name, building it from modules
// on first use. pc becomes the matcher's default context. An empty name
// always builds a new, unshared matcher.
func (r *Registry) Matcher(name string, pc *pattern.Context, modules ...matcher.Module) (*matcher.Matcher, error) {
	m, _, err := r.lookup(name, func() (*matcher.Matcher, error) {
		return buildMatcher(r.logger, pc, modules)
	})
	return m, err
}

// lookup returns the matcher for name and whether it was built by this call.
func (r *Registry) lookup(name string, build func() (*matcher.Matcher, error)) (*matcher.Matcher, bool, error) {
	if name == "" {
		m, err := build()
		return m, true, err
	}

	built := false
	m, err := r.matchers.GetOrCreate(name, func() (*matcher.Matcher, error) {
		built = true
		m, err := build()
		if err != nil {
			return nil, fmt.Errorf("build matcher %q: %w", name, err)
		}
		r.logger.Debug("built matcher %q with %d tags", name, len(m.Tags()))
		return m, nil
	})
	return m, built, err
}

// Has reports whether a matcher is registered as name.
func (r *Registry) Has(name string) bool {
	_, ok := r.matchers.Peek(name)
	return ok
}

// Remove drops the matcher registered as name.
func (r *Registry) Remove(name string) {
	r.matchers.Delete(name)
}

// Clear drops every named matcher. Matchers already handed out keep working.
func (r *Registry) Clear() {
	r.matchers.Clear()
}

// Names returns the registered names, most recently used first.
func (r *Registry) Names() []string {
	return r.matchers.Keys()
}

// Len returns the number of registered matchers.
func (r *Registry) Len() int {
	return r.matchers.Len()
}

// Stats returns the hit and miss counts of the registry.
func (r *Registry) Stats() cache.Stats {
	return r.matchers.Stats()
}

// buildMatcher creates a matcher and registers modules in order.
func buildMatcher(l *logger.Logger, pc *pattern.Context, modules []matcher.Module) (*matcher.Matcher, error) {
	opts := []matcher.Option{matcher.WithLogger(l)}
	if pc != nil {
		opts = append(opts, matcher.WithContext(pc))
	}
	m := matcher.New(opts...)
	for _, mod := range modules {
		if err := m.Register(mod); err != nil {
			return nil, err
		}
	}
	return m, nil
}
