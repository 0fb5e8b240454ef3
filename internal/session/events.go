package session

import (
	"connect4engine/pkg/logger"
	"sync"

	"go.uber.org/zap"
)

const eventQueueSize = 64

// eventQueue hands events to a Publisher from its own goroutine so a slow
// or unreachable broker never delays a reply to the game server.
type eventQueue struct {
	publisher Publisher
	send      chan func(Publisher) error

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

func newEventQueue(publisher Publisher) *eventQueue {
	q := &eventQueue{
		publisher: publisher,
		send:      make(chan func(Publisher) error, eventQueueSize),
		done:      make(chan struct{}),
	}
	go q.drain()
	return q
}

func (q *eventQueue) drain() {
	defer close(q.done)
	for publish := range q.send {
		if err := publish(q.publisher); err != nil {
			logger.Log.Warn("Failed to publish event", zap.Error(err))
		}
	}
}

// push never blocks. Events are dropped once the queue is full or closed.
func (q *eventQueue) push(publish func(Publisher) error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	select {
	case q.send <- publish:
	default:
		logger.Log.Warn("Event queue full, dropping event")
	}
}

// close stops accepting events and waits for queued ones to be published.
func (q *eventQueue) close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.send)
	}
	q.mu.Unlock()
	<-q.done
}
