package clock

import (
	"sync"
	"time"

	"github.com/kamstrup/intmap"
)

// Manual is a Clock that only moves when Advance is called. Callbacks run
// synchronously on the goroutine calling Advance.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	seq     uint64
	pending *intmap.Map[uint64, *manualTimer]
}

type manualTimer struct {
	id       uint64
	deadline time.Time
	f        func()
	clock    *Manual
}

// NewManual returns a Manual clock set to start.
func NewManual(start time.Time) *Manual {
	return &Manual{
		now:     start,
		pending: intmap.New[uint64, *manualTimer](16),
	}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTimer{id: m.seq, deadline: m.now.Add(d), f: f, clock: m}
	m.pending.Put(t.id, t)
	return t
}

// Advance moves the clock forward by d, firing every callback that falls due
// in deadline order. Callbacks scheduled while advancing fire too if their
// deadline is inside the window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	for {
		next := m.nextDue(target)
		if next == nil {
			break
		}
		m.pending.Del(next.id)
		m.now = next.deadline
		m.mu.Unlock()
		next.f()
		m.mu.Lock()
	}
	m.now = target
	m.mu.Unlock()
}

// Pending returns the number of scheduled callbacks that have not fired.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending.Len()
}

// nextDue must be called with mu held.
func (m *Manual) nextDue(target time.Time) *manualTimer {
	var next *manualTimer
	m.pending.ForEach(func(_ uint64, t *manualTimer) bool {
		if t.deadline.After(target) {
			return true
		}
		if next == nil || t.deadline.Before(next.deadline) ||
			(t.deadline.Equal(next.deadline) && t.id < next.id) {
			next = t
		}
		return true
	})
	return next
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if _, ok := t.clock.pending.Get(t.id); !ok {
		return false
	}
	t.clock.pending.Del(t.id)
	return true
}
