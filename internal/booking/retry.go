package booking

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"appointment-booking-api/internal/store"
)

type RetryPolicy struct {
	Attempts  int
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: 3, BaseDelay: 50 * time.Millisecond, MaxDelay: time.Second}
}

// Backoff is the wait after the given failed attempt (1-based): the
// exponential step capped at MaxDelay (a minute when unset), half of it
// randomized.
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := p.BaseDelay
	if p.MaxDelay > 0 && d > p.MaxDelay {
		d = p.MaxDelay
	}
	for i := 1; i < attempt && d > 0; i++ {
		d *= 2
		if p.MaxDelay > 0 && d >= p.MaxDelay {
			d = p.MaxDelay
			break
		}
		if p.MaxDelay <= 0 && d > time.Minute {
			d = time.Minute
			break
		}
	}
	if d <= 0 {
		return 0
	}
	half := d / 2
	return half + time.Duration(rand.Int63n(int64(d-half)))
}

// Do runs fn until it succeeds, fails with anything other than
// store.ErrContention, or the attempt budget is spent. The wait between
// attempts is abandoned when ctx is done.
func (p RetryPolicy) Do(ctx context.Context, fn func(context.Context) error) error {
	attempts := max(p.Attempts, 1)
	for attempt := 1; ; attempt++ {
		err := fn(ctx)
		if err == nil || !errors.Is(err, store.ErrContention) {
			return err
		}
		if attempt >= attempts {
			return &TransientError{Attempts: attempt, Err: err}
		}

		t := time.NewTimer(p.Backoff(attempt))
		select {
		case <-ctx.Done():
			t.Stop()
			return fmt.Errorf("gave up after %d attempts: %w", attempt, ctx.Err())
		case <-t.C:
		}
	}
}
