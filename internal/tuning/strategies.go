package tuning

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// probe fights one trial at a boost.
type probe func(ctx context.Context, boost int) (Trial, error)

// searchLinear tries 1, 2, 3, ... up to maxBoost.
func searchLinear(ctx context.Context, maxBoost int, try probe) (Result, error) {
	trials := 0
	for boost := 1; boost <= maxBoost; boost++ {
		t, err := try(ctx, boost)
		trials++
		if err != nil {
			return Result{Trials: trials}, err
		}
		if t.Success {
			return resultFrom(t, trials), nil
		}
	}
	return Result{Trials: trials}, ErrNoWinningBoost
}

// searchBinary gallops 1, 2, 4, ... up to the first success, then bisects the gap between the
// last failure and that success.
func searchBinary(ctx context.Context, maxBoost int, try probe) (Result, error) {
	trials := 0
	run := func(boost int) (Trial, error) {
		trials++
		return try(ctx, boost)
	}

	lo := 0 // largest boost known to fail; 0 is never tried
	var best Trial
	for boost := 1; ; boost *= 2 {
		if boost > maxBoost {
			boost = maxBoost
		}
		t, err := run(boost)
		if err != nil {
			return Result{Trials: trials}, err
		}
		if t.Success {
			best = t
			break
		}
		lo = boost
		if boost >= maxBoost {
			return Result{Trials: trials}, ErrNoWinningBoost
		}
	}

	for hi := best.Boost; hi-lo > 1; {
		mid := lo + (hi-lo)/2
		t, err := run(mid)
		if err != nil {
			return Result{Trials: trials}, err
		}
		if t.Success {
			hi, best = mid, t
		} else {
			lo = mid
		}
	}
	return resultFrom(best, trials), nil
}

// searchParallel evaluates windows of consecutive boosts concurrently. The answer is the
// smallest successful boost of the first window that has one.
func searchParallel(ctx context.Context, maxBoost, width int, try probe) (Result, error) {
	if width < 1 {
		width = 1
	}
	trials := 0
	for start := 1; start <= maxBoost; start += width {
		end := start + width - 1
		if end > maxBoost {
			end = maxBoost
		}

		window := make([]Trial, end-start+1)
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(width)
		for i := range window {
			i := i
			g.Go(func() error {
				t, err := try(gctx, start+i)
				if err != nil {
					return err
				}
				window[i] = t
				return nil
			})
		}
		err := g.Wait()
		trials += len(window)
		if err != nil {
			return Result{Trials: trials}, err
		}

		for _, t := range window {
			if t.Success {
				return resultFrom(t, trials), nil
			}
		}
	}
	return Result{Trials: trials}, ErrNoWinningBoost
}
