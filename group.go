package futures

import (
	"log/slog"
	"sync"
)

// Group tracks a set of tasks and submits notifications once all of
// them have finished. The counter is reusable: entering again after it
// reached zero arms the next round of notifications.
type Group struct {
	mu       sync.Mutex
	count    int
	notifies []groupNotify
	logger   *slog.Logger
}

type groupNotify struct {
	queue Queue
	task  Task
}

func NewGroup() *Group {
	return &Group{logger: slog.Default()}
}

// Enter marks the start of one tracked unit of work.
func (g *Group) Enter() {
	g.mu.Lock()
	g.count++
	g.mu.Unlock()
}

// Leave marks the end of one tracked unit of work. An unbalanced Leave
// is a programming error and panics. When the count reaches zero all
// registered notifications are submitted, in registration order.
func (g *Group) Leave() {
	g.mu.Lock()
	if g.count == 0 {
		g.mu.Unlock()
		panic("futures: unbalanced group leave")
	}
	g.count--
	var fire []groupNotify
	if g.count == 0 {
		fire = g.notifies
		g.notifies = nil
	}
	g.mu.Unlock()

	for _, n := range fire {
		g.fire(n)
	}
}

// Submit tracks t on q: the group is entered before submission and
// left once t finishes.
func (g *Group) Submit(q Queue, t Task) error {
	g.Enter()
	err := q.Submit(func() {
		defer g.Leave()
		t()
	})
	if err != nil {
		g.Leave()
		return err
	}
	return nil
}

// Notify submits t onto q once the tracked count reaches zero.
// If the count is already zero, t is submitted immediately.
func (g *Group) Notify(q Queue, t Task) {
	g.mu.Lock()
	if g.count == 0 {
		g.mu.Unlock()
		g.fire(groupNotify{queue: q, task: t})
		return
	}
	g.notifies = append(g.notifies, groupNotify{queue: q, task: t})
	g.mu.Unlock()
}

func (g *Group) fire(n groupNotify) {
	if err := n.queue.Submit(n.task); err != nil {
		g.logger.Warn("group notify dropped", slog.Any("cause", err))
	}
}
