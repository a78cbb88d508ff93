package observable

import (
	"sync"
)

// Hub fans snapshots out to subscribers. Each subscriber holds at most one
// pending value: a slow reader skips intermediate snapshots but always
// receives the latest one.
type Hub[S any] struct {
	mu          sync.RWMutex
	subscribers map[chan S]struct{}
	closed      bool
}

// NewHub creates a new Hub instance
func NewHub[S any]() *Hub[S] {
	return &Hub[S]{
		subscribers: make(map[chan S]struct{}),
	}
}

// Subscribe registers a subscriber primed with current and returns the
// channel and a cleanup function. The channel is closed by cleanup or Close.
func (h *Hub[S]) Subscribe(current S) (<-chan S, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan S, 1)
	if h.closed {
		close(ch)
		return ch, func() {}
	}
	ch <- current
	h.subscribers[ch] = struct{}{}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if _, ok := h.subscribers[ch]; ok {
				delete(h.subscribers, ch)
				close(ch)
			}
		})
	}

	return ch, cleanup
}

// Publish replaces any unread snapshot with s for every subscriber.
func (h *Hub[S]) Publish(s S) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	for ch := range h.subscribers {
		select {
		case ch <- s:
		default:
			// Drop the stale value, then deliver the new one
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- s:
			default:
			}
		}
	}
}

// Close closes every subscriber channel; later publishes are ignored.
func (h *Hub[S]) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for ch := range h.subscribers {
		delete(h.subscribers, ch)
		close(ch)
	}
}

// SubscriberCount returns the number of active subscribers
func (h *Hub[S]) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
