// Package fanout runs a function over a set of inputs concurrently and
// waits for every call to settle before reporting anything. It never
// cancels siblings when one call fails; callers decide what a partial
// outcome means.
package fanout

import (
	"context"
	"sync"
)

// Settle calls fn once per input, concurrently, and blocks until all calls
// have finished. Successes are returned in input order; every failure is
// collected into errs. limit caps the number of in-flight calls; a limit
// <= 0 means unbounded.
func Settle[In, Out any](ctx context.Context, inputs []In, limit int, fn func(ctx context.Context, in In) (Out, error)) (oks []Out, errs []error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	outs := make([]Out, len(inputs))
	fails := make([]error, len(inputs))

	var sem chan struct{}
	if limit > 0 {
		sem = make(chan struct{}, limit)
	}

	var wg sync.WaitGroup
	for i, in := range inputs {
		wg.Add(1)
		go func(i int, in In) {
			defer wg.Done()
			if sem != nil {
				select {
				case sem <- struct{}{}:
					defer func() { <-sem }()
				case <-ctx.Done():
					fails[i] = ctx.Err()
					return
				}
			}
			outs[i], fails[i] = fn(ctx, in)
		}(i, in)
	}
	wg.Wait()

	oks = make([]Out, 0, len(inputs))
	for i := range inputs {
		if fails[i] != nil {
			errs = append(errs, fails[i])
			continue
		}
		oks = append(oks, outs[i])
	}
	return oks, errs
}
