package harness

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ben-windsurf/crypto-web-application/pkg/harness/internal"
)

func mockPoller(clock *internal.MockClock) Poller {
	return Poller{Interval: 50 * time.Millisecond, Timeout: time.Second, Clock: clock}
}

func TestPoll_ImmediateSuccessDoesNotSleep(t *testing.T) {
	clock := internal.NewMockClock(time.Time{})

	got, err := Poll(context.Background(), mockPoller(clock),
		func() (string, error) { return "ui green button loading", nil },
		func(s string) bool { return s != "" },
	)
	require.NoError(t, err)
	assert.Equal(t, "ui green button loading", got)
	assert.Empty(t, clock.Slept())
}

func TestPoll_EventualSuccess(t *testing.T) {
	clock := internal.NewMockClock(time.Time{})
	calls := 0

	got, err := Poll(context.Background(), mockPoller(clock),
		func() (int, error) {
			calls++
			return calls, nil
		},
		func(n int) bool { return n == 4 },
	)
	require.NoError(t, err)
	assert.Equal(t, 4, got)
	assert.Equal(t, []time.Duration{50 * time.Millisecond, 50 * time.Millisecond, 50 * time.Millisecond}, clock.Slept())
}

func TestPoll_TimeoutReportsLastValue(t *testing.T) {
	clock := internal.NewMockClock(time.Time{})
	calls := 0

	got, err := Poll(context.Background(), mockPoller(clock),
		func() (int, error) {
			calls++
			return 3, nil
		},
		func(n int) bool { return n == 4 },
	)
	require.Error(t, err)
	assert.Equal(t, 3, got)

	var timeout *PollTimeout[int]
	require.ErrorAs(t, err, &timeout)
	assert.Equal(t, 3, timeout.Last)
	assert.NoError(t, timeout.LastErr)
	assert.Equal(t, calls, timeout.Attempts)
	assert.Equal(t, time.Second, timeout.Elapsed)
	// One attempt at t=0 plus one per 50ms interval up to the deadline.
	assert.Equal(t, 21, calls)
}

func TestPoll_LastSleepClampedToDeadline(t *testing.T) {
	clock := internal.NewMockClock(time.Time{})
	p := Poller{Interval: 300 * time.Millisecond, Timeout: time.Second, Clock: clock}

	_, err := Poll(context.Background(), p,
		func() (bool, error) { return false, nil },
		func(v bool) bool { return v },
	)
	require.Error(t, err)
	assert.Equal(t, []time.Duration{
		300 * time.Millisecond, 300 * time.Millisecond, 300 * time.Millisecond, 100 * time.Millisecond,
	}, clock.Slept())
}

func TestPoll_ProbeErrorsAreTransient(t *testing.T) {
	clock := internal.NewMockClock(time.Time{})
	calls := 0
	detached := errors.New("element detached")

	got, err := Poll(context.Background(), mockPoller(clock),
		func() (string, error) {
			calls++
			if calls < 3 {
				return "", detached
			}
			return "Ethereum (ETH)", nil
		},
		func(s string) bool { return s == "Ethereum (ETH)" },
	)
	require.NoError(t, err)
	assert.Equal(t, "Ethereum (ETH)", got)
}

func TestPoll_TimeoutKeepsLastProbeError(t *testing.T) {
	clock := internal.NewMockClock(time.Time{})
	missing := errors.New("matched no elements")

	_, err := Poll(context.Background(), mockPoller(clock),
		func() (string, error) { return "", missing },
		func(string) bool { return true },
	)
	var timeout *PollTimeout[string]
	require.ErrorAs(t, err, &timeout)
	assert.ErrorIs(t, timeout.LastErr, missing)
	assert.Contains(t, err.Error(), "matched no elements")
}

func TestPoll_ContextCanceled(t *testing.T) {
	clock := internal.NewMockClock(time.Time{})
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	_, err := Poll(ctx, mockPoller(clock),
		func() (int, error) {
			calls++
			if calls == 2 {
				cancel()
			}
			return calls, nil
		},
		func(int) bool { return false },
	)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, calls)
}

func TestPoll_RealClock(t *testing.T) {
	start := time.Now()
	p := Poller{Interval: 10 * time.Millisecond, Timeout: 50 * time.Millisecond}

	_, err := Poll(context.Background(), p,
		func() (bool, error) { return false, nil },
		func(v bool) bool { return v },
	)
	require.Error(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}
