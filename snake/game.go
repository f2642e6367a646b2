package snake

import (
	"log/slog"

	"arcade/clock"
	"arcade/loop"
)

type Action string

const (
	TurnUp    Action = "up"
	TurnDown  Action = "down"
	TurnLeft  Action = "left"
	TurnRight Action = "right"
	Pause     Action = "pause"
	Restart   Action = "restart"
)

// Game runs a Snake on its own loop. It is safe for concurrent use.
type Game struct {
	snake    *Snake
	loop     *loop.Loop
	updateCh chan struct{}
	logger   *slog.Logger
}

func NewGame(cfg Config, o *Options) *Game {
	if o == nil {
		o = &Options{}
	}
	c := o.Clock
	if c == nil {
		c = clock.Real{}
	}
	l := o.Logger
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	g := &Game{
		loop:     loop.New(l),
		updateCh: make(chan struct{}, 1),
		logger:   l,
	}
	g.snake = NewSnake(cfg, &Options{
		Clock:  g.loop.NotifyClock(c, g.notify),
		Logger: l,
		Seed:   o.Seed,
	})
	return g
}

func (g *Game) notify() {
	select {
	case g.updateCh <- struct{}{}:
	default:
	}
}

func (g *Game) Updates() <-chan struct{} { return g.updateCh }

func (g *Game) Start() {
	if g.loop.Do(g.snake.Start) {
		g.notify()
	}
}

// Stop halts the snake and ends the loop.
func (g *Game) Stop() {
	g.loop.Do(g.snake.Stop)
	g.loop.Stop()
}

func (g *Game) Action(a Action) bool {
	var ok bool
	if !g.loop.Do(func() { ok = g.apply(a) }) {
		return false
	}
	g.notify()
	return ok
}

func (g *Game) apply(a Action) bool {
	switch a {
	case TurnUp:
		return g.snake.Turn(Up)
	case TurnDown:
		return g.snake.Turn(Down)
	case TurnLeft:
		return g.snake.Turn(Left)
	case TurnRight:
		return g.snake.Turn(Right)
	case Pause:
		g.snake.TogglePause()
		return true
	case Restart:
		g.snake.Start()
		return true
	}
	g.logger.Warn("unknown action", slog.String("action", string(a)))
	return false
}

// Read returns nil once the game is stopped.
func (g *Game) Read() *Snapshot {
	var s *Snapshot
	g.loop.Do(func() { s = g.snake.Read() })
	return s
}

func (g *Game) Subscribe(fn func(Event)) (unsubscribe func()) {
	return g.snake.Subscribe(fn)
}
