package futures

import (
	"time"
)

// Submit runs fn asynchronously on q and returns a future for its
// result. The future's reactions are delivered on q as well.
func Submit[T any](q Queue, fn func() T) (Future[T], error) {
	if fn == nil {
		panic("futures: nil callable")
	}
	p := NewPromise[T](q)
	err := q.Submit(func() { _ = p.Complete(fn()) })
	if err != nil {
		return Future[T]{}, err
	}
	return p.Future(), nil
}

// SubmitBarrier runs fn as a barrier task on q: it runs alone, after
// all previously submitted work and before any later work.
func SubmitBarrier[T any](q Queue, fn func() T) (Future[T], error) {
	if fn == nil {
		panic("futures: nil callable")
	}
	p := NewPromise[T](q)
	err := q.SubmitBarrier(func() { _ = p.Complete(fn()) })
	if err != nil {
		return Future[T]{}, err
	}
	return p.Future(), nil
}

// SubmitAfter runs fn on q after delay duration.
func SubmitAfter[T any](q Queue, delay time.Duration, fn func() T) (Future[T], error) {
	if fn == nil {
		panic("futures: nil callable")
	}
	p := NewPromise[T](q)
	_, err := q.Schedule(func() { _ = p.Complete(fn()) }, delay)
	if err != nil {
		return Future[T]{}, err
	}
	return p.Future(), nil
}

// SubmitNotify runs fn on q once g's tracked work has joined, and
// returns a future for its result.
func SubmitNotify[T any](g *Group, q Queue, fn func() T) Future[T] {
	if fn == nil {
		panic("futures: nil callable")
	}
	p := NewPromise[T](q)
	g.Notify(q, func() { _ = p.Complete(fn()) })
	return p.Future()
}
