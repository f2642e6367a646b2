// Package event is a small synchronous publish/subscribe bus used by the games
// to announce state transitions to presentation layers.
package event

import "sync"

// Bus delivers published values to every subscriber in subscription order.
// Publish runs listeners on the caller's goroutine; a listener must not call
// back into the publisher synchronously.
type Bus[E any] struct {
	mu        sync.Mutex
	nextID    uint64
	listeners []listener[E]
}

type listener[E any] struct {
	id uint64
	fn func(E)
}

// Subscribe registers fn and returns a function that removes it. The returned
// function is safe to call more than once.
func (b *Bus[E]) Subscribe(fn func(E)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.listeners = append(b.listeners, listener[E]{id: id, fn: fn})
	return func() { b.remove(id) }
}

func (b *Bus[E]) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, l := range b.listeners {
		if l.id == id {
			b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)
			return
		}
	}
}

func (b *Bus[E]) Publish(e E) {
	b.mu.Lock()
	ls := b.listeners
	b.mu.Unlock()
	for _, l := range ls {
		l.fn(e)
	}
}

// Len returns the number of subscribers.
func (b *Bus[E]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}
