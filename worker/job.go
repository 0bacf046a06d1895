package worker

import "time"

// JobResult is the outcome of parsing one input.
type JobResult struct {
	// Index is the position of the input in the batch.
	Index int

	// Input is the text that was parsed.
	Input string

	// Values holds every interpretation found, most specific first.
	Values []any

	// Error is set when parsing was cancelled or failed.
	Error error

	// Duration is the time taken to parse the input.
	Duration time.Duration

	ran bool
}

// Matched reports whether the input produced at least one value.
func (r *JobResult) Matched() bool {
	return r != nil && r.Error == nil && len(r.Values) > 0
}

// BatchResult aggregates results from multiple jobs.
type BatchResult struct {
	// Results holds one entry per input, in input order.
	Results []*JobResult

	// TotalJobs is the number of inputs submitted.
	TotalJobs int

	// CompletedJobs is the number of inputs parsed (including errors).
	CompletedJobs int

	// FailedJobs is the number of inputs that failed with an error.
	FailedJobs int

	// TotalDuration is the summed parse time of all inputs.
	TotalDuration time.Duration
}

// HasErrors returns true if any job failed.
func (br *BatchResult) HasErrors() bool {
	return br.FailedJobs > 0
}

// MatchedCount returns the number of inputs that produced a value.
func (br *BatchResult) MatchedCount() int {
	count := 0
	for _, r := range br.Results {
		if r.Matched() {
			count++
		}
	}
	return count
}
