// Package fifo implements the blocking first-in first-out queue both playcore workers drain.
//
// A Queue holds (id, payload) items. Producers never block; the single logical consumer
// blocks in Pop until an item is available.
package fifo

import (
	"errors"
	"sync"

	list "github.com/bahlo/generic-list-go"
)

// ErrFreed is returned by Push once the queue has been freed.
var ErrFreed = errors.New("fifo: queue freed")

type item[T any] struct {
	id      int
	payload T
}

// Queue is an unbounded blocking FIFO queue.
type Queue[T any] struct {
	mu    sync.Mutex
	items *list.List[item[T]]
	freed bool
	sem   *semaphore
}

// New returns an empty queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{
		items: list.New[item[T]](),
		sem:   newSemaphore(),
	}
}

// Push appends an item at the tail of the queue and wakes the consumer.
func (q *Queue[T]) Push(id int, payload T) error {
	q.mu.Lock()
	if q.freed {
		q.mu.Unlock()
		return ErrFreed
	}
	q.items.PushBack(item[T]{id: id, payload: payload})
	q.mu.Unlock()

	q.sem.post()
	return nil
}

// Pop removes and returns the head of the queue, blocking while it is empty.
// ok is false when the queue has been freed.
func (q *Queue[T]) Pop() (id int, payload T, ok bool) {
	if !q.sem.wait() {
		return
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	head := q.items.Front()
	if head == nil {
		// Free emptied the list between the post and this pop.
		return
	}
	q.items.Remove(head)
	return head.Value.id, head.Value.payload, true
}

// Len returns the number of pending items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Len()
}

// Free drops every pending item and releases any blocked consumer. It returns the payloads
// it dropped. Subsequent pushes fail with ErrFreed.
func (q *Queue[T]) Free() []T {
	q.mu.Lock()
	if q.freed {
		q.mu.Unlock()
		return nil
	}
	q.freed = true
	dropped := make([]T, 0, q.items.Len())
	for e := q.items.Front(); e != nil; e = e.Next() {
		dropped = append(dropped, e.Value.payload)
	}
	q.items.Init()
	q.mu.Unlock()

	q.sem.close()
	return dropped
}
