package dataparser

import (
	"fmt"

	"github.com/gofhir/dataparser/value"
	"github.com/gofhir/dataparser/worker"
)

// ParseResult is the outcome of parsing one value of a batch.
type ParseResult struct {
	// Input is the text that was parsed
	Input string `json:"input"`

	// Values holds every interpretation, most specific first
	Values []any `json:"values"`

	// Error is set when parsing was cancelled
	Error error `json:"-"`
}

// Matched returns true if at least one value was found.
func (r *ParseResult) Matched() bool {
	return r != nil && r.Error == nil && len(r.Values) > 0
}

// First returns the most specific value, or nil.
func (r *ParseResult) First() any {
	if r == nil || len(r.Values) == 0 {
		return nil
	}
	return r.Values[0]
}

// Kinds returns the kind of each value, in order.
func (r *ParseResult) Kinds() []value.Kind {
	if r == nil {
		return nil
	}
	kinds := make([]value.Kind, len(r.Values))
	for i, v := range r.Values {
		kinds[i] = value.KindOf(v)
	}
	return kinds
}

// OfKind returns the values of kind k.
func (r *ParseResult) OfKind(k value.Kind) []any {
	if r == nil {
		return nil
	}
	var out []any
	for _, v := range r.Values {
		if value.KindOf(v) == k {
			out = append(out, v)
		}
	}
	return out
}

// Strings returns the String form of each value.
func (r *ParseResult) Strings() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.Values))
	for i, v := range r.Values {
		out[i] = fmt.Sprint(v)
	}
	return out
}

// fromJob converts a worker result.
func fromJob(j *worker.JobResult) *ParseResult {
	return &ParseResult{
		Input:  j.Input,
		Values: j.Values,
		Error:  j.Error,
	}
}
