package chat

import (
	"context"
	"sync"
)

// queue is a client's pending outbound frames. It has one producer at a time
// (the hub, serialized by its lock) and one consumer (the drain goroutine).
// A zero limit means the queue grows without bound.
type queue struct {
	mu     sync.Mutex
	items  []Message
	limit  int
	closed bool
	ready  chan struct{}
}

func newQueue(limit int) *queue {
	if limit < 0 {
		limit = 0
	}
	return &queue{limit: limit, ready: make(chan struct{}, 1)}
}

// push appends msg without blocking.
func (q *queue) push(msg Message) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}
	if q.limit > 0 && len(q.items) >= q.limit {
		return ErrQueueFull
	}
	q.items = append(q.items, msg)
	q.signal()
	return nil
}

// pushAll appends msgs ignoring the limit. Used for history replay.
func (q *queue) pushAll(msgs []Message) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}
	if len(msgs) == 0 {
		return nil
	}
	q.items = append(q.items, msgs...)
	q.signal()
	return nil
}

// signal must be called with mu held.
func (q *queue) signal() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// next blocks until frames are pending and returns all of them in order.
// It returns false once the queue is closed or ctx is done; pending frames
// are dropped in that case.
func (q *queue) next(ctx context.Context) ([]Message, bool) {
	for {
		q.mu.Lock()
		if q.closed {
			q.mu.Unlock()
			return nil, false
		}
		if len(q.items) > 0 {
			batch := q.items
			q.items = nil
			q.mu.Unlock()
			return batch, true
		}
		q.mu.Unlock()

		select {
		case <-q.ready:
		case <-ctx.Done():
			return nil, false
		}
	}
}

// close reports whether this call closed the queue.
func (q *queue) close() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	q.closed = true
	q.items = nil
	close(q.ready)
	return true
}

func (q *queue) isClosed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
