// Package worker parses batches of values in parallel.
//
// Results come back in input order regardless of which goroutine parsed
// them. Inputs not reached before the context is done carry its error.
//
// Example usage:
//
//	b := worker.NewBatch(func(ctx context.Context, s string) ([]any, error) {
//	    return p.ParseContext(ctx, s)
//	}, 4)
//
//	res := b.Run(ctx, []string{"true", "1,234.5", "2024-01-15"})
//	for _, r := range res.Results {
//	    if r.Error != nil {
//	        // Handle error
//	    }
//	    // Process r.Values
//	}
package worker
