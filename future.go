package futures

import (
	"time"
)

// Future is a read-only handle for a value that will eventually be
// produced. It wraps a single registration capability: given a
// reaction, arrange for it to be invoked exactly once with the value.
//
// Futures are values; copies observe the same completion. The zero
// Future is invalid and panics on use.
type Future[T any] struct {
	register func(h func(T))
}

// OnComplete registers h to be invoked exactly once with the eventual
// value. Registration never blocks; delivery happens through the
// queue of the underlying promise, except for futures constructed by
// Of, which invoke h synchronously.
func (f Future[T]) OnComplete(h func(T)) {
	if h == nil {
		panic("futures: nil completion handler")
	}
	if f.register == nil {
		panic("futures: uninitialized future")
	}
	f.register(h)
}

// Wait blocks the calling goroutine until the value is delivered.
//
// Do not call Wait from a reaction, or from any worker the delivery of
// this future depends on: with nothing left to run the completion, the
// wait can never be signaled.
func (f Future[T]) Wait() T {
	var v T
	sem := NewSemaphore(0)
	f.OnComplete(func(res T) {
		v = res
		sem.Signal()
	})
	sem.Wait()
	return v
}

// WaitTimeout blocks until the value is delivered or timeout elapses.
// On timeout it reports false; the registered reaction may still fire
// later, its result is discarded.
func (f Future[T]) WaitTimeout(timeout time.Duration) (T, bool) {
	cell := new(T)
	sem := NewSemaphore(0)
	f.OnComplete(func(res T) {
		*cell = res
		sem.Signal()
	})
	if !sem.WaitTimeout(timeout) {
		var zero T
		return zero, false
	}
	return *cell, true
}
