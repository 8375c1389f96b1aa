package futures

import (
	"context"
	"errors"
	"sync"
	"time"

	gxtime "github.com/dubbogo/timer"
	"github.com/panjf2000/ants/v2"
	"github.com/zyedidia/generic/queue"
)

type CancelFunc = func()

// Task is a unit of work submitted to a Queue.
// Tasks carry no context: once submitted they run to completion.
type Task func()

type Queue interface {
	// Submit enqueues a task for asynchronous execution.
	// Tasks are dequeued in submission order.
	// Will return ErrClosed if shutdown already.
	Submit(t Task) error

	// SubmitAll enqueues a batch of tasks under a single critical
	// section, so the batch occupies consecutive positions in the
	// pending order.
	SubmitAll(tasks ...Task) error

	// SubmitBarrier enqueues an exclusive task: it starts only after
	// every previously submitted task has finished, and tasks submitted
	// after it wait until it finishes.
	// On a serial queue a barrier behaves like a plain task.
	SubmitBarrier(t Task) error

	// Schedule runs a one time task after delay duration.
	// The CancelFunc drops the task if it has not been submitted yet.
	Schedule(t Task, delay time.Duration) (CancelFunc, error)

	// Shutdown stops accepting work and waits for the pending tasks
	// to finish, bounded by ctx.
	Shutdown(ctx context.Context) error
}

// NewSerialQueue returns a queue that runs one task at a time in
// submission order.
func NewSerialQueue(opts ..._QueueOption) Queue {
	var opt = _DefaultQueueOptions
	for _, o := range opts {
		o(&opt)
	}
	opt.MaxConcurrent = 1
	return newPoolQueue(opt)
}

// NewConcurrentQueue returns a queue that dequeues in submission order
// and runs up to MaxConcurrent tasks at once.
func NewConcurrentQueue(opts ..._QueueOption) Queue {
	var opt = _DefaultQueueOptions
	for _, o := range opts {
		o(&opt)
	}
	return newPoolQueue(opt)
}

type work struct {
	task    Task
	barrier bool
}

type poolQueue struct {
	opts queueOptions
	pool *ants.Pool

	mu      sync.Mutex
	pending *queue.Queue[*work]
	running int
	barrier bool
	closed  bool
	idle    bool
	drained chan struct{}

	wheel         *gxtime.TimerWheel
	initWheelOnce func()
	releaseOnce   sync.Once
}

func newPoolQueue(opt queueOptions) *poolQueue {
	pool, err := ants.NewPool(opt.MaxConcurrent,
		// do nothing, panics are routed to the ErrorHandler by exec
		ants.WithPanicHandler(func(cause interface{}) {}))
	if err != nil {
		panic(err)
	}
	q := &poolQueue{
		opts:    opt,
		pool:    pool,
		pending: queue.New[*work](),
		drained: make(chan struct{}),
	}
	q.initWheelOnce = sync.OnceFunc(q.initWheel)
	return q
}

func (q *poolQueue) Submit(t Task) error {
	return q.enqueue(&work{task: t})
}

func (q *poolQueue) SubmitAll(tasks ...Task) error {
	ws := make([]*work, len(tasks))
	for i, t := range tasks {
		ws[i] = &work{task: t}
	}
	return q.enqueue(ws...)
}

func (q *poolQueue) SubmitBarrier(t Task) error {
	return q.enqueue(&work{task: t, barrier: true})
}

func (q *poolQueue) enqueue(ws ...*work) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrClosed
	}
	for _, w := range ws {
		q.pending.Enqueue(w)
	}
	q.mu.Unlock()

	q.dispatch()
	return nil
}

// dispatch hands runnable work to the pool until the front of the
// pending queue is blocked by the width cap or a barrier.
func (q *poolQueue) dispatch() {
	for {
		q.mu.Lock()
		w, ok := q.takeLocked()
		q.mu.Unlock()
		if !ok {
			return
		}

		err := q.pool.Submit(func() { q.runLoop(w) })
		if err == nil {
			continue
		}

		// the pool was released under us, give the slot back
		q.mu.Lock()
		q.finishLocked(w)
		q.mu.Unlock()
		if errors.Is(err, ants.ErrPoolClosed) {
			err = ErrClosed
		}
		q.opts.ErrorHandler.CatchError(w.task, err)
		return
	}
}

// takeLocked dequeues the next runnable work and accounts it as running.
// A barrier is runnable only when nothing else runs; a plain task is
// runnable unless a barrier runs or the width cap is reached.
func (q *poolQueue) takeLocked() (*work, bool) {
	if q.pending.Empty() {
		return nil, false
	}
	w := q.pending.Peek()
	if w.barrier {
		if q.running > 0 {
			return nil, false
		}
	} else if q.barrier || q.running >= q.opts.MaxConcurrent {
		return nil, false
	}
	q.pending.Dequeue()
	q.running++
	if w.barrier {
		q.barrier = true
	}
	return w, true
}

func (q *poolQueue) finishLocked(w *work) {
	q.running--
	if w.barrier {
		q.barrier = false
	}
	if q.closed && q.running == 0 && q.pending.Empty() && !q.idle {
		q.idle = true
		close(q.drained)
	}
}

func (q *poolQueue) runLoop(w *work) {
	for w != nil {
		w = q.runOne(w)
	}
}

// runOne executes w, releases its running slot and picks up the next
// runnable task, if any. The accounting is deferred so a repanicking
// error handler kills only its worker, never the queue's bookkeeping.
func (q *poolQueue) runOne(w *work) (next *work) {
	completed := false
	defer func() {
		q.mu.Lock()
		q.finishLocked(w)
		if completed {
			next, _ = q.takeLocked()
		}
		q.mu.Unlock()

		// a finished barrier or a dying worker may have opened
		// capacity this worker will not consume itself. The handoff
		// needs its own goroutine: pool submission blocks while the
		// pool is full, and this worker still holds a slot.
		if next == nil || w.barrier {
			go q.dispatch()
		}
	}()

	q.exec(w.task)
	completed = true
	return
}

func (q *poolQueue) exec(t Task) {
	defer func() {
		if cause := recover(); cause != nil {
			q.opts.ErrorHandler.CatchError(t, ErrPanic{Cause: cause})
		}
	}()
	t()
}

func (q *poolQueue) initWheel() {
	q.mu.Lock()
	q.wheel = gxtime.NewTimerWheel()
	q.mu.Unlock()
}

// scheduled tracks the live wheel timer behind one delayed task.
// Arming happens under the lock so cancellation always reaches the
// current timer, stays idempotent, and tolerates a nil timer from a
// wheel that closed underneath it.
type scheduled struct {
	mu       sync.Mutex
	timer    *gxtime.Timer
	canceled bool
}

func (s *scheduled) arm(mk func() *gxtime.Timer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.canceled {
		return
	}
	s.timer = mk()
}

func (s *scheduled) cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.canceled {
		return
	}
	s.canceled = true
	if s.timer != nil {
		s.timer.Stop()
	}
}

func (q *poolQueue) Schedule(t Task, delay time.Duration) (CancelFunc, error) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil, ErrClosed
	}
	q.mu.Unlock()

	q.initWheelOnce()

	s := &scheduled{}
	deadline := time.Now().Add(delay)

	var fire func()
	fire = func() {
		// the wheel clock only advances while some wheel is live, so
		// a timer armed on a fresh wheel can trigger on the first
		// tick; re-arm for the remainder until the deadline passes
		if remain := time.Until(deadline); remain > 0 {
			s.arm(func() *gxtime.Timer {
				return q.wheel.AfterFunc(remain, fire)
			})
			return
		}
		err := q.Submit(t)
		if err != nil {
			if errors.Is(err, ErrClosed) {
				return
			}
			q.opts.ErrorHandler.CatchError(t, err)
		}
	}

	s.arm(func() *gxtime.Timer {
		return q.wheel.AfterFunc(delay, fire)
	})
	return s.cancel, nil
}

func (q *poolQueue) Shutdown(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		if q.running == 0 && q.pending.Empty() && !q.idle {
			q.idle = true
			close(q.drained)
		}
	}
	q.mu.Unlock()

	go func() {
		<-q.drained
		q.releaseOnce.Do(q.release)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-q.drained:
		q.opts.Logger.Debug("queue drained")
		return nil
	}
}

func (q *poolQueue) release() {
	q.mu.Lock()
	wheel := q.wheel
	q.mu.Unlock()
	if wheel != nil {
		// wakeup wheel
		wheel.Tick(1 * time.Millisecond)
		wheel.Close()
	}
	q.pool.Release()
}
