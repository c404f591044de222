package sse

import (
	"log/slog"
	"sync"
)

const defaultBufferSize = 16

// Event is a message pushed to one user's open streams.
type Event struct {
	UserID string
	Event  string
	Data   interface{}
}

// Hub fans events out to every stream a user has open.
type Hub struct {
	mu          sync.RWMutex
	bufferSize  int
	subscribers map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return NewHubWithBuffer(defaultBufferSize)
}

func NewHubWithBuffer(size int) *Hub {
	if size < 1 {
		size = 1
	}
	return &Hub{
		bufferSize:  size,
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a stream for userID. The returned cleanup closes the
// channel and is safe to call more than once.
func (h *Hub) Subscribe(userID string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, h.bufferSize)

	if h.subscribers[userID] == nil {
		h.subscribers[userID] = make(map[chan Event]struct{})
	}
	h.subscribers[userID][ch] = struct{}{}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subscribers[userID], ch)
			close(ch)
			if len(h.subscribers[userID]) == 0 {
				delete(h.subscribers, userID)
			}
		})
	}

	return ch, cleanup
}

// Publish never blocks; a subscriber with a full buffer misses the event.
func (h *Hub) Publish(userID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	event.UserID = userID
	for ch := range h.subscribers[userID] {
		select {
		case ch <- event:
		default:
			slog.Warn("sse subscriber buffer full, dropping event", "user_id", userID, "event", event.Event)
		}
	}
}

// SubscriberCount reports the open streams of userID.
func (h *Hub) SubscriberCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[userID])
}
