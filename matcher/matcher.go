package matcher

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/gofhir/dataparser/pattern"
	"github.com/gofhir/dataparser/pkg/logger"
)

// RootTag is the tag whose patterns Match starts from.
const RootTag = ""

// Matcher matches text against registered patterns.
type Matcher struct {
	mu         sync.RWMutex
	patterns   map[string][]*pattern.Pattern
	compiled   map[string]*pattern.Path
	validators map[string]Validator

	context *pattern.Context
	logger  *logger.Logger
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithLogger sets the logger used for registration messages.
func WithLogger(l *logger.Logger) Option {
	return func(m *Matcher) {
		m.logger = l
	}
}

// WithContext sets the context used when Match is called with nil.
func WithContext(pc *pattern.Context) Option {
	return func(m *Matcher) {
		m.context = pc
	}
}

// New creates an empty matcher.
func New(opts ...Option) *Matcher {
	m := &Matcher{
		patterns:   make(map[string][]*pattern.Pattern),
		compiled:   make(map[string]*pattern.Path),
		validators: make(map[string]Validator),
		context:    pattern.NewContext(),
		logger:     logger.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RegisterValidator sets the validator for tokens whose value is tag.
// A later registration for the same tag replaces the earlier one.
func (m *Matcher) RegisterValidator(tag string, v Validator) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.validators[tag] = v
}

// Register adds the patterns of mod and registers it as the validator of its
// token tags.
func (m *Matcher) Register(mod Module) error {
	for _, tag := range mod.PatternTags() {
		if err := m.AddPatterns(tag, mod.Patterns(tag)...); err != nil {
			return fmt.Errorf("register %s: %w", validatorName(mod), err)
		}
	}
	for _, tag := range mod.TokenTags() {
		m.RegisterValidator(tag, mod)
	}
	return nil
}

// AddPatterns compiles patterns into the trie of tag. Patterns whose source
// is already registered under tag are skipped. The matcher keeps its own copy
// of every pattern.
//
// If the new patterns would introduce a cyclic tag reference nothing is
// added and an error wrapping ErrCyclicPattern is returned.
func (m *Matcher) AddPatterns(tag string, patterns ...*pattern.Pattern) error {
	if len(patterns) == 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkCycles(tag, patterns); err != nil {
		m.logger.Warn("rejected patterns for tag %q: %v", tag, err)
		return err
	}

	target := m.patterns[tag]
	root := m.compiled[tag]
	if root == nil {
		root = pattern.NewPath()
	}

	added := 0
	for _, p := range patterns {
		if p == nil || containsSource(target, p) {
			continue
		}
		c := p.Clone()
		target = append(target, c)
		root.AddPattern(c)
		added++
	}

	m.patterns[tag] = target
	m.compiled[tag] = root
	m.markSubMatches()

	m.logger.Debug("registered %d patterns for tag %q (%d nodes)", added, tag, root.Size())
	return nil
}

// ClearPatterns drops all patterns and tries. Validators are kept.
func (m *Matcher) ClearPatterns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.patterns = make(map[string][]*pattern.Pattern)
	m.compiled = make(map[string]*pattern.Path)
}

// Patterns returns the patterns registered under tag.
func (m *Matcher) Patterns(tag string) []*pattern.Pattern {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.patterns[tag])
}

// Tags returns the sorted pattern tags.
func (m *Matcher) Tags() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tags := make([]string, 0, len(m.patterns))
	for tag := range m.patterns {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Path returns the compiled trie of tag, or nil.
func (m *Matcher) Path(tag string) *pattern.Path {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.compiled[tag]
}

// HasValidator reports whether a validator is registered for tag.
func (m *Matcher) HasValidator(tag string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.validators[tag]
	return ok
}

// Match returns all values text can be parsed into.
// A nil context selects the matcher's default context.
func (m *Matcher) Match(pc *pattern.Context, text string) Result {
	res, _ := m.MatchContext(context.Background(), pc, text)
	return res
}

// MatchContext is like Match but stops when ctx is done. The error then
// wraps both ErrCancelled and ctx.Err().
func (m *Matcher) MatchContext(ctx context.Context, pc *pattern.Context, text string) (Result, error) {
	if text == "" {
		return Result{}, nil
	}
	if pc == nil {
		pc = m.context
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	s := acquireSession(m, pc)
	defer releaseSession(s)

	root := s.start(RootTag)
	if root == noState {
		return Result{}, nil
	}

	runes := []rune(text)
	start, end := 0, len(runes)-1
	if pc.TrimWhitespace {
		for start < end && isBlank(runes[start]) {
			start++
		}
		for end > start && isBlank(runes[end]) {
			end--
		}
	}

	for i := start; i <= end; i++ {
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("%w: %w", ErrCancelled, err)
		}
		if !s.next(root, runes[i], i == end) {
			return Result{Reasons: s.dropTraces(root)}, nil
		}
	}

	values := s.results(root)
	slices.Reverse(values)
	return Result{
		Values:  values,
		Reasons: s.states[root].traces,
	}, nil
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

func containsSource(list []*pattern.Pattern, p *pattern.Pattern) bool {
	for _, existing := range list {
		if existing.Equal(p) {
			return true
		}
	}
	return false
}

// markSubMatches flags every placeholder token naming a compiled tag.
// Flags are only ever set, so tags registered later make earlier patterns
// eligible. Caller holds the write lock.
func (m *Matcher) markSubMatches() {
	for _, list := range m.patterns {
		for _, p := range list {
			for _, tok := range p.Tokens {
				if tok.ExactMatch {
					continue
				}
				if _, ok := m.compiled[tok.Value]; ok {
					tok.IsSubMatch = true
				}
			}
		}
	}
}

// checkCycles reports a cycle in the tag reference graph formed by the
// registered patterns plus patterns added under tag. Caller holds the lock.
func (m *Matcher) checkCycles(tag string, patterns []*pattern.Pattern) error {
	tagPatterns := make(map[string][]*pattern.Pattern, len(m.patterns)+1)
	for t, list := range m.patterns {
		tagPatterns[t] = list
	}
	tagPatterns[tag] = append(slices.Clone(tagPatterns[tag]), patterns...)

	edges := make(map[string][]string, len(tagPatterns))
	for t, list := range tagPatterns {
		seen := make(map[string]bool)
		for _, p := range list {
			if p == nil {
				continue
			}
			for _, tok := range p.Tokens {
				if tok.ExactMatch || seen[tok.Value] {
					continue
				}
				if _, ok := tagPatterns[tok.Value]; ok {
					seen[tok.Value] = true
					edges[t] = append(edges[t], tok.Value)
				}
			}
		}
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(edges))
	var stack []string

	var visit func(t string) error
	visit = func(t string) error {
		state[t] = visiting
		stack = append(stack, t)
		for _, next := range edges[t] {
			switch state[next] {
			case visiting:
				idx := slices.Index(stack, next)
				cycle := append(slices.Clone(stack[idx:]), next)
				return fmt.Errorf("%w: %s", ErrCyclicPattern, formatCycle(cycle))
			case unvisited:
				if err := visit(next); err != nil {
					return err
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[t] = done
		return nil
	}

	tags := make([]string, 0, len(edges))
	for t := range edges {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	for _, t := range tags {
		if state[t] != unvisited {
			continue
		}
		if err := visit(t); err != nil {
			return err
		}
	}
	return nil
}

func formatCycle(tags []string) string {
	quoted := make([]string, len(tags))
	for i, t := range tags {
		quoted[i] = fmt.Sprintf("%q", t)
	}
	return strings.Join(quoted, " -> ")
}
