package worker

import (
	"context"
	"runtime"
	"sync"
	"time"
)

// Func parses one input.
type Func func(ctx context.Context, input string) ([]any, error)

// Batch parses inputs with a fixed number of goroutines.
type Batch struct {
	parse   Func
	workers int
}

// NewBatch creates a batch parser. If workers <= 0, it defaults to
// runtime.NumCPU().
func NewBatch(parse Func, workers int) *Batch {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Batch{
		parse:   parse,
		workers: workers,
	}
}

// Workers returns the number of goroutines used for large batches.
func (b *Batch) Workers() int {
	return b.workers
}

// Run parses all inputs and returns their results in input order.
func (b *Batch) Run(ctx context.Context, inputs []string) *BatchResult {
	if len(inputs) == 0 {
		return &BatchResult{Results: make([]*JobResult, 0)}
	}

	// For small batches, don't use parallelism
	if len(inputs) <= 2 || b.workers == 1 {
		return b.runSequential(ctx, inputs)
	}
	return b.runParallel(ctx, inputs)
}

func (b *Batch) runSequential(ctx context.Context, inputs []string) *BatchResult {
	results := make([]*JobResult, len(inputs))
	for i, input := range inputs {
		results[i] = b.process(ctx, i, input)
	}
	return summarize(results)
}

func (b *Batch) runParallel(ctx context.Context, inputs []string) *BatchResult {
	numWorkers := min(b.workers, len(inputs))

	jobs := make(chan int, len(inputs))
	for i := range inputs {
		jobs <- i
	}
	close(jobs)

	// Each index is written by exactly one worker
	results := make([]*JobResult, len(inputs))

	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = b.process(ctx, i, inputs[i])
			}
		}()
	}
	wg.Wait()

	return summarize(results)
}

func (b *Batch) process(ctx context.Context, index int, input string) *JobResult {
	r := &JobResult{Index: index, Input: input}
	if err := ctx.Err(); err != nil {
		r.Error = err
		return r
	}

	r.ran = true
	start := time.Now()
	r.Values, r.Error = b.parse(ctx, input)
	r.Duration = time.Since(start)
	return r
}

func summarize(results []*JobResult) *BatchResult {
	br := &BatchResult{
		Results:   results,
		TotalJobs: len(results),
	}
	for _, r := range results {
		br.TotalDuration += r.Duration
		if r.Error != nil {
			br.FailedJobs++
		}
		if r.ran {
			br.CompletedJobs++
		}
	}
	return br
}

// RunSimple is a convenience function using runtime.NumCPU() workers.
func RunSimple(ctx context.Context, parse Func, inputs []string) *BatchResult {
	return NewBatch(parse, runtime.NumCPU()).Run(ctx, inputs)
}
