package futures

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSemaphore_Wait(t *testing.T) {
	t.Run("given initial value, will not block", func(t *testing.T) {
		s := NewSemaphore(2)

		s.Wait()
		s.Wait()

		require.False(t, s.WaitTimeout(50*time.Millisecond))
	})

	t.Run("given signal before wait, will not block", func(t *testing.T) {
		s := NewSemaphore(0)

		s.Signal()

		require.True(t, s.WaitTimeout(50*time.Millisecond))
	})
}

func TestSemaphore_Signal(t *testing.T) {
	s := NewSemaphore(0)

	var counter atomic.Int32

	go func() {
		s.Wait()
		counter.Add(10)
	}()

	time.Sleep(100 * time.Millisecond)
	require.Equal(t, int32(0), counter.Load())

	s.Signal()

	time.Sleep(100 * time.Millisecond)
	require.Equal(t, int32(10), counter.Load())
}

func TestSemaphore_SignalOrder(t *testing.T) {
	s := NewSemaphore(0)

	first := make(chan struct{})
	second := make(chan struct{})

	go func() {
		s.Wait()
		close(first)
	}()
	time.Sleep(100 * time.Millisecond)

	go func() {
		s.Wait()
		close(second)
	}()
	time.Sleep(100 * time.Millisecond)

	s.Signal()

	// the oldest waiter wakes first
	select {
	case <-first:
	case <-second:
		require.FailNow(t, "second waiter woke before first")
	}

	s.Signal()
	<-second
}

func TestSemaphore_WaitTimeout(t *testing.T) {
	t.Run("given no signal, will time out", func(t *testing.T) {
		s := NewSemaphore(0)

		start := time.Now()
		ok := s.WaitTimeout(100 * time.Millisecond)

		require.False(t, ok)
		require.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
	})

	t.Run("given signal after timeout, will keep the wakeup", func(t *testing.T) {
		s := NewSemaphore(0)

		require.False(t, s.WaitTimeout(50*time.Millisecond))

		s.Signal()

		require.True(t, s.WaitTimeout(50*time.Millisecond))
	})
}

func TestNewSemaphore(t *testing.T) {
	require.Panics(t, func() {
		NewSemaphore(-1)
	})
}
