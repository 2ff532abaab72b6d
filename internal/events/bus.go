// Package events carries the in-process change notifications that replace
// direct component-to-component calls: every store mutation is broadcast so
// subscribers (SSE clients, the cloud mirror push hook) re-read the store.
package events

import (
	"sync"

	"meup-backend/internal/domain"
)

// Bus is a fan-out publisher of typed change payloads. Slow subscribers drop
// notifications instead of blocking publishers; a dropped change is safe
// because the payload only means "re-read".
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan domain.Change
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan domain.Change)}
}

// Subscribe registers a listener. The returned cancel func must be called to
// release the channel; after cancel the channel is closed.
func (b *Bus) Subscribe() (<-chan domain.Change, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan domain.Change, 16)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers the changes to every subscriber, dropping on full buffers.
func (b *Bus) Publish(changes ...domain.Change) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		for _, c := range changes {
			select {
			case ch <- c:
			default:
			}
		}
	}
}

// SubscriberCount is used by the health endpoint.
func (b *Bus) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
