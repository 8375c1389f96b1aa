package futures

import (
	"sync"
)

// Promise is a write-once container completed by a producer exactly
// once. Consumers observe it through the read-only Future handle.
//
// Reactions registered before completion are dispatched as one batch
// onto the delivery queue when Complete runs; reactions registered
// afterwards are submitted to the same queue one by one. The promise
// itself never runs a reaction inline.
type Promise[T any] struct {
	queue Queue

	mu        sync.Mutex
	completed bool
	value     T
	reactions []func(T)
}

// NewPromise returns a pending promise whose reactions will be
// delivered on q.
func NewPromise[T any](q Queue) *Promise[T] {
	if q == nil {
		panic("futures: nil delivery queue")
	}
	return &Promise[T]{queue: q}
}

// Complete resolves the promise with v and dispatches every reaction
// registered so far, in registration order, as a single batch on the
// delivery queue. Completing twice is a programming error and panics
// on the calling goroutine.
//
// The returned error is the delivery queue's submission error: the
// promise is completed either way, but with a shut down queue the
// pending reactions are dropped.
func (p *Promise[T]) Complete(v T) error {
	p.mu.Lock()
	if p.completed {
		p.mu.Unlock()
		panic("futures: promise completed twice")
	}
	p.completed = true
	p.value = v
	reactions := p.reactions
	p.reactions = nil
	p.mu.Unlock()

	if len(reactions) == 0 {
		return nil
	}
	tasks := make([]Task, len(reactions))
	for i, h := range reactions {
		h := h // per-iteration copy; go directive predates Go 1.22 loopvar semantics
		tasks[i] = func() { h(v) }
	}
	return p.queue.SubmitAll(tasks...)
}

// Completed reports whether Complete has run.
func (p *Promise[T]) Completed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.completed
}

// Future returns a read-only handle observing this promise. It can be
// called any number of times; all handles share the same completion.
func (p *Promise[T]) Future() Future[T] {
	return Future[T]{register: p.register}
}

// register is the registration protocol behind every Future handle:
// append while pending, or hand the reaction straight to the delivery
// queue once completed. The check and the append are serialized by the
// promise lock, so a reaction can never be lost against Complete.
func (p *Promise[T]) register(h func(T)) {
	p.mu.Lock()
	if p.completed {
		v := p.value
		p.mu.Unlock()
		// a shut down delivery queue drops the reaction
		_ = p.queue.Submit(func() { h(v) })
		return
	}
	p.reactions = append(p.reactions, h)
	p.mu.Unlock()
}
