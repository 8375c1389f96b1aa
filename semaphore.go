package futures

import (
	"sync"
	"time"

	"github.com/zyedidia/generic/queue"
)

// Semaphore is a counting semaphore.
// Waiters are woken in FIFO order.
type Semaphore struct {
	mu      sync.Mutex
	value   int
	waiters *queue.Queue[*semWaiter]
}

type semWaiter struct {
	// buffered so Signal never blocks while holding the lock
	ch chan struct{}

	// set under the semaphore lock once the waiter timed out;
	// Signal skips abandoned waiters instead of losing the wakeup
	abandoned bool
}

func NewSemaphore(value int) *Semaphore {
	if value < 0 {
		panic("futures: negative semaphore value")
	}
	return &Semaphore{
		value:   value,
		waiters: queue.New[*semWaiter](),
	}
}

// Signal wakes the oldest waiter, or retains the wakeup in the count
// if nobody waits.
func (s *Semaphore) Signal() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for !s.waiters.Empty() {
		w := s.waiters.Dequeue()
		if w.abandoned {
			continue
		}
		w.ch <- struct{}{}
		return
	}
	s.value++
}

// Wait blocks until a wakeup is available.
func (s *Semaphore) Wait() {
	w := s.acquire()
	if w == nil {
		return
	}
	<-w.ch
}

// WaitTimeout blocks until a wakeup is available or timeout elapses,
// and reports whether the wait succeeded. A signal racing with the
// timeout is either consumed here or kept in the count, never lost.
func (s *Semaphore) WaitTimeout(timeout time.Duration) bool {
	w := s.acquire()
	if w == nil {
		return true
	}

	select {
	case <-w.ch:
		return true
	case <-time.After(timeout):
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-w.ch:
		// signaled between the deadline and the lock
		return true
	default:
	}
	w.abandoned = true
	return false
}

func (s *Semaphore) acquire() *semWaiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.value > 0 {
		s.value--
		return nil
	}
	w := &semWaiter{ch: make(chan struct{}, 1)}
	s.waiters.Enqueue(w)
	return w
}
