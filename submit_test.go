package futures

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSubmit(t *testing.T) {
	q := NewConcurrentQueue(WithMaxConcurrent(10))

	t.Run("delivers result", func(t *testing.T) {
		f, err := Submit(q, func() string { return "future" })
		require.NoError(t, err)

		require.Equal(t, "future", f.Wait())
	})

	t.Run("closed queue", func(t *testing.T) {
		closed := NewSerialQueue()
		require.NoError(t, closed.Shutdown(context.Background()))

		_, err := Submit(closed, func() int { return 1 })
		require.ErrorIs(t, err, ErrClosed)
	})

	_ = q.Shutdown(context.Background())
}

func TestSubmitBarrier(t *testing.T) {
	q := NewConcurrentQueue(WithMaxConcurrent(10))

	var before int64
	for i := 0; i < 3; i++ {
		_ = q.Submit(func() {
			time.Sleep(50 * time.Millisecond)
			atomic.AddInt64(&before, 1)
		})
	}

	f, err := SubmitBarrier(q, func() int64 {
		return atomic.LoadInt64(&before)
	})
	require.NoError(t, err)

	require.EqualValues(t, 3, f.Wait())

	_ = q.Shutdown(context.Background())
}

func TestSubmitAfter(t *testing.T) {
	q := NewConcurrentQueue(WithMaxConcurrent(10))

	start := time.Now()
	f, err := SubmitAfter(q, 200*time.Millisecond, func() string { return "later" })
	require.NoError(t, err)

	require.Equal(t, "later", f.Wait())
	require.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)

	_ = q.Shutdown(context.Background())
}

func TestSubmitNotify(t *testing.T) {
	q := NewConcurrentQueue(WithMaxConcurrent(10))
	g := NewGroup()

	g.Enter()

	f := SubmitNotify(g, q, func() string { return "joined" })

	_, ok := f.WaitTimeout(100 * time.Millisecond)
	require.False(t, ok)

	g.Leave()

	require.Equal(t, "joined", f.Wait())

	_ = q.Shutdown(context.Background())
}

func TestSubmit_NilCallable(t *testing.T) {
	q := NewSerialQueue()
	g := NewGroup()

	require.Panics(t, func() { _, _ = Submit[int](q, nil) })
	require.Panics(t, func() { _, _ = SubmitBarrier[int](q, nil) })
	require.Panics(t, func() { _, _ = SubmitAfter[int](q, time.Millisecond, nil) })
	require.Panics(t, func() { _ = SubmitNotify[int](g, q, nil) })

	_ = q.Shutdown(context.Background())
}
