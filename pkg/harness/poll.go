package harness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ben-windsurf/crypto-web-application/pkg/harness/internal"
)

// Poller bounds a Poll loop.
type Poller struct {
	Interval time.Duration  // Delay between probes
	Timeout  time.Duration  // Total budget, measured from the first probe
	Clock    internal.Clock // Defaults to the monotonic clock
}

// PollTimeout is returned by Poll when the condition did not hold before
// the deadline.
type PollTimeout[T any] struct {
	Last     T     // Last value the probe returned successfully
	LastErr  error // Error of the final probe, nil if it succeeded
	Attempts int
	Elapsed  time.Duration
}

func (e *PollTimeout[T]) Error() string {
	msg := fmt.Sprintf("condition not met after %v (%d attempts), last value %v", e.Elapsed, e.Attempts, e.Last)
	if e.LastErr != nil {
		msg += ", last error: " + e.LastErr.Error()
	}
	return msg
}

// Poll evaluates probe until cond accepts its value or the timeout elapses.
//
// The first probe runs immediately, so a state that is only present for a
// short window right after an action is observed without waiting for an
// interval. Probe errors are treated as transient: the element may be
// mid-render or detached. Context cancellation ends the loop with the
// context's error.
func Poll[T any](ctx context.Context, p Poller, probe func() (T, error), cond func(T) bool) (T, error) {
	clock := p.Clock
	if clock == nil {
		clock = internal.MonotonicClock{}
	}

	start := clock.Now()
	deadline := start.Add(p.Timeout)

	var (
		last     T
		lastErr  error
		attempts int
	)
	for {
		attempts++
		v, err := probe()
		switch {
		case err == nil:
			last, lastErr = v, nil
			if cond(v) {
				return v, nil
			}
		case errors.Is(err, context.Canceled):
			return last, err
		default:
			lastErr = err
		}

		now := clock.Now()
		if !now.Before(deadline) {
			return last, &PollTimeout[T]{
				Last:     last,
				LastErr:  lastErr,
				Attempts: attempts,
				Elapsed:  now.Sub(start),
			}
		}

		wait := p.Interval
		if remaining := deadline.Sub(now); remaining < wait {
			wait = remaining
		}
		if err := clock.Sleep(ctx, wait); err != nil {
			return last, err
		}
	}
}
