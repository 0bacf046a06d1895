// Package pool provides typed wrappers around sync.Pool used by the matcher
// to recycle per-session scratch memory.
package pool

import "sync"

// Pool is a typed sync.Pool. Objects are passed through reset before they
// are handed out again.
type Pool[T any] struct {
	pool  sync.Pool
	reset func(*T)
}

// New creates a pool. newFn must not return nil; reset may be nil.
func New[T any](newFn func() *T, reset func(*T)) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any { return newFn() },
		},
		reset: reset,
	}
}

// Get returns a reset object from the pool.
func (p *Pool[T]) Get() *T {
	v := p.pool.Get().(*T)
	if p.reset != nil {
		p.reset(v)
	}
	return v
}

// Put returns an object to the pool.
func (p *Pool[T]) Put(v *T) {
	if v == nil {
		return
	}
	p.pool.Put(v)
}

// SlicePool recycles slices of T with a bounded capacity.
type SlicePool[T any] struct {
	pool   sync.Pool
	maxCap int
}

// NewSlicePool creates a slice pool. Slices start with initialCap and are
// dropped on release when they have grown beyond maxCap.
func NewSlicePool[T any](initialCap, maxCap int) *SlicePool[T] {
	return &SlicePool[T]{
		pool: sync.Pool{
			New: func() any {
				s := make([]T, 0, initialCap)
				return &s
			},
		},
		maxCap: maxCap,
	}
}

// Acquire gets an empty slice from the pool.
func (p *SlicePool[T]) Acquire() *[]T {
	s := p.pool.Get().(*[]T)
	*s = (*s)[:0]
	return s
}

// Release returns a slice to the pool. The elements are zeroed so pooled
// slices do not keep references alive.
func (p *SlicePool[T]) Release(s *[]T) {
	if s == nil {
		return
	}
	if cap(*s) > p.maxCap {
		return
	}
	clear(*s)
	*s = (*s)[:0]
	p.pool.Put(s)
}
