// Package loop runs functions one at a time on a single goroutine. Games own a
// Loop and route every input and timer callback through it, so game state is
// only ever touched by one goroutine.
package loop

import (
	"log/slog"
	"sync"
	"time"

	"arcade/clock"
)

type command struct {
	f    func()
	done chan struct{}
}

type Loop struct {
	cmdCh    chan command
	doneCh   chan struct{}
	stopOnce sync.Once
	logger   *slog.Logger
}

// New starts a Loop. Stop must be called to release its goroutine.
func New(l *slog.Logger) *Loop {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	lp := &Loop{
		cmdCh:  make(chan command),
		doneCh: make(chan struct{}),
		logger: l,
	}
	go lp.listen()
	return lp
}

func (l *Loop) listen() {
	for {
		select {
		case c := <-l.cmdCh:
			c.f()
			close(c.done)
		case <-l.doneCh:
			return
		}
	}
}

// Do runs f on the loop goroutine and waits for it to return. It reports
// false without running f once the loop is stopped. Calling Do from inside a
// function already running on the loop deadlocks.
func (l *Loop) Do(f func()) bool {
	c := command{f: f, done: make(chan struct{})}
	select {
	case l.cmdCh <- c:
	case <-l.doneCh:
		return false
	}
	<-c.done
	return true
}

// Stop ends the loop. Pending and future Do calls return false.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.doneCh)
		l.logger.Debug("loop stopped")
	})
}

// Stopped is closed once Stop has been called.
func (l *Loop) Stopped() <-chan struct{} { return l.doneCh }

// Clock wraps c so every callback it schedules runs through Do.
func (l *Loop) Clock(c clock.Clock) clock.Clock {
	return &serialClock{inner: c, loop: l}
}

// NotifyClock is Clock with after called on the loop once each callback
// returns. Games use it to signal that a timer changed their state.
func (l *Loop) NotifyClock(c clock.Clock, after func()) clock.Clock {
	return &serialClock{inner: c, loop: l, after: after}
}

type serialClock struct {
	inner clock.Clock
	loop  *Loop
	after func()
}

func (s *serialClock) Now() time.Time { return s.inner.Now() }

func (s *serialClock) AfterFunc(d time.Duration, f func()) clock.Timer {
	return s.inner.AfterFunc(d, func() {
		ok := s.loop.Do(func() {
			f()
			if s.after != nil {
				s.after()
			}
		})
		if !ok {
			s.loop.logger.Debug("timer fired after loop stopped")
		}
	})
}
