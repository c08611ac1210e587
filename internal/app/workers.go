package app

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"shopcart_sentiment/internal/domain"
)

// runBounded calls fn for each id with at most n calls in flight. Slot i of
// the returned slices belongs to ids[i]. After the first failure no new calls
// start, the remaining slots get errSkipped and first holds the index of the
// failure (-1 when every call succeeded).
func runBounded(ctx context.Context, ids []domain.ProductID, n int, fn func(context.Context, domain.ProductID) (int, error)) (scores []int, errs []error, first int) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	scores = make([]int, len(ids))
	errs = make([]error, len(ids))
	first = -1
	var once sync.Once
	sem := semaphore.NewWeighted(int64(n))
	var wg sync.WaitGroup

	for i, id := range ids {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			for j := i; j < len(ids); j++ {
				errs[j] = errSkipped
			}
			break
		}

		wg.Add(1)
		go func(i int, id domain.ProductID) {
			defer wg.Done()
			defer sem.Release(1)

			score, err := fn(ctx, id)
			if err != nil {
				errs[i] = err
				once.Do(func() {
					first = i
					cancel()
				})
				return
			}
			scores[i] = score
		}(i, id)
	}

	wg.Wait()
	return scores, errs, first
}
