package matcher

import "errors"

var (
	// ErrCyclicPattern is returned when registering patterns would make a tag
	// reference itself, directly or through other tags.
	ErrCyclicPattern = errors.New("cyclic pattern reference")

	// ErrCancelled is returned by MatchContext when the context ends before
	// the input is consumed.
	ErrCancelled = errors.New("match cancelled")
)
