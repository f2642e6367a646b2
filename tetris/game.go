package tetris

import (
	"log/slog"

	"arcade/clock"
	"arcade/loop"
)

type Action string

const (
	MoveLeft    Action = "left"      // Moves the Tetromino one step to the left.
	MoveRight   Action = "right"     // Moves the Tetromino one step to the right.
	MoveDown    Action = "down"      // Moves the Tetromino one step down.
	DropDown    Action = "drop"      // Drops the Tetromino down the stack.
	RotateRight Action = "rotatecw"  // Rotates the Tetromino clockwise.
	RotateLeft  Action = "rotateccw" // Rotates the Tetromino counter-clockwise.
	Hold        Action = "hold"      // Swaps the Tetromino with the held one.
	Pause       Action = "pause"     // Pauses or resumes the game.
	Restart     Action = "restart"   // Throws the session away and starts a new one.
)

// Game runs a Tetris engine on its own loop. Every method is safe for
// concurrent use; actions and timers are applied one at a time.
type Game struct {
	tetris   *Tetris
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
	g.tetris = NewTetris(cfg, &Options{
		Clock:  g.loop.NotifyClock(c, g.notify),
		Logger: l,
		Seed:   o.Seed,
	})
	return g
}

// notify never blocks: a pending signal already tells the reader to look.
func (g *Game) notify() {
	select {
	case g.updateCh <- struct{}{}:
	default:
	}
}

// Updates signals that the state changed since the last receive.
func (g *Game) Updates() <-chan struct{} { return g.updateCh }

// Start begins a new session, discarding the current one.
func (g *Game) Start() {
	if g.loop.Do(g.tetris.Start) {
		g.notify()
	}
}

// Stop cancels every timer and ends the loop. The game cannot be restarted.
func (g *Game) Stop() {
	g.loop.Do(func() {
		g.tetris.stopAutoAdvance()
		g.tetris.cancelAllSettling()
	})
	g.loop.Stop()
}

// Action applies a player intent and reports whether it changed anything.
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
	case MoveLeft:
		return g.tetris.MoveLeft()
	case MoveRight:
		return g.tetris.MoveRight()
	case MoveDown:
		return g.tetris.MoveDown()
	case DropDown:
		return g.tetris.Drop()
	case RotateRight:
		return g.tetris.RotateRight()
	case RotateLeft:
		return g.tetris.RotateLeft()
	case Hold:
		return g.tetris.Hold()
	case Pause:
		g.tetris.TogglePause()
		return true
	case Restart:
		g.tetris.Start()
		return true
	}
	g.logger.Warn("unknown action", slog.String("action", string(a)))
	return false
}

// Read returns a copy of the current state that's safe to read concurrently.
// It returns nil once the game is stopped.
func (g *Game) Read() *Snapshot {
	var s *Snapshot
	g.loop.Do(func() { s = g.tetris.Read() })
	return s
}

// Subscribe registers fn for engine events. fn runs on the game loop and must
// not call back into the Game.
func (g *Game) Subscribe(fn func(Event)) (unsubscribe func()) {
	return g.tetris.Subscribe(fn)
}
