// Package intake provides the handoff queue between the IPC receive goroutine
// and the render loop.
package intake

import (
	"sync"
	"sync/atomic"
)

// Queue is an unbounded FIFO safe for one producer and one consumer running
// on different goroutines. Push never blocks and TryPop never waits.
//
// Items must be fully built before Push and must not be modified afterwards;
// the mutex publishes them to the consumer.
type Queue[T any] struct {
	mu    sync.Mutex
	items []T

	pushed atomic.Uint64
	popped atomic.Uint64
}

// New creates an empty queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{}
}

// Push appends item.
func (q *Queue[T]) Push(item T) {
	q.mu.Lock()
	q.items = append(q.items, item)
	q.mu.Unlock()

	q.pushed.Add(1)
}

// TryPop removes and returns the oldest item. ok is false when the queue is
// empty.
func (q *Queue[T]) TryPop() (item T, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return item, false
	}

	item = q.items[0]
	var zero T
	q.items[0] = zero
	q.items = q.items[1:]
	if len(q.items) == 0 {
		// Drop the backing array so a burst does not pin memory.
		q.items = nil
	}

	q.popped.Add(1)
	return item, true
}

// Len returns the number of pending items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Stats holds lifetime counters.
type Stats struct {
	Pushed  uint64
	Popped  uint64
	Pending int
}

// Stats returns lifetime counters.
func (q *Queue[T]) Stats() Stats {
	return Stats{
		Pushed:  q.pushed.Load(),
		Popped:  q.popped.Load(),
		Pending: q.Len(),
	}
}
