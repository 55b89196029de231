package internal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockClock_SleepAdvances(t *testing.T) {
	c := NewMockClock(time.Time{})
	start := c.Now()

	require.NoError(t, c.Sleep(context.Background(), 50*time.Millisecond))
	require.NoError(t, c.Sleep(context.Background(), 25*time.Millisecond))

	assert.Equal(t, 75*time.Millisecond, c.Now().Sub(start))
	assert.Equal(t, []time.Duration{50 * time.Millisecond, 25 * time.Millisecond}, c.Slept())
}

func TestMockClock_SleepCanceled(t *testing.T) {
	c := NewMockClock(time.Time{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Sleep(ctx, time.Second)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, c.Slept())
}

func TestMockClock_AdvanceNegativePanics(t *testing.T) {
	c := NewMockClock(time.Time{})
	assert.Panics(t, func() { c.Advance(-time.Second) })
}

func TestMonotonicClock_SleepHonorsContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := MonotonicClock{}.Sleep(ctx, time.Minute)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestMonotonicClock_Sleep(t *testing.T) {
	start := time.Now()
	require.NoError(t, MonotonicClock{}.Sleep(context.Background(), 20*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}
