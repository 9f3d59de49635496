package debounce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBurstCoalescesIntoOneCall(t *testing.T) {
	t.Parallel()

	calls := 0
	d := New(300*time.Millisecond, func() { calls++ })
	start := time.Unix(0, 0)

	d.Trigger(start)
	d.Trigger(start.Add(100 * time.Millisecond))
	d.Trigger(start.Add(250 * time.Millisecond))

	require.False(t, d.Fire(start.Add(400*time.Millisecond)))
	require.Equal(t, start.Add(550*time.Millisecond), d.Deadline())
	require.True(t, d.Fire(start.Add(550*time.Millisecond)))
	require.False(t, d.Fire(start.Add(time.Second)))
	require.Equal(t, 1, calls)
	require.False(t, d.Pending())
	require.True(t, d.Deadline().IsZero())
}

func TestFlushAndCancel(t *testing.T) {
	t.Parallel()

	calls := 0
	d := New(time.Hour, func() { calls++ })
	now := time.Now()

	require.False(t, d.Flush())
	d.Trigger(now)
	require.True(t, d.Flush())
	require.Equal(t, 1, calls)

	d.Trigger(now)
	d.Cancel()
	require.False(t, d.Fire(now.Add(2*time.Hour)))
	require.Equal(t, 1, calls)
}

func TestZeroDelayIsDueImmediately(t *testing.T) {
	t.Parallel()

	calls := 0
	d := New(-time.Second, func() { calls++ })
	now := time.Now()

	require.Zero(t, d.Delay())
	d.Trigger(now)
	require.True(t, d.Fire(now))
	require.Equal(t, 1, calls)
}
