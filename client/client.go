// Package client connects the keyboard and the terminal renderer to a tetris
// game.
package client

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"arcade/terminal"
	"arcade/tetris"

	"github.com/eiannone/keyboard"
)

const frameRate = 60

type clientState int

const (
	lobby clientState = iota
	playing
)

type state struct {
	current clientState
	mu      sync.Mutex
}

func (s *state) get() clientState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *state) set(c clientState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = c
}

type tetrisGame interface {
	Start()
	Stop()
	Action(tetris.Action) bool
	Read() *tetris.Snapshot
	Updates() <-chan struct{}
}

type renderer interface {
	Game(*tetris.Snapshot)
	Lobby(terminal.Message)
	Reset()
}

// ticker paces the redraws. It is a time.Ticker outside of tests.
type ticker interface {
	C() <-chan time.Time
	Stop()
}

type frameTicker struct{ t *time.Ticker }

func newFrameTicker(d time.Duration) frameTicker { return frameTicker{time.NewTicker(d)} }
func (f frameTicker) C() <-chan time.Time        { return f.t.C }
func (f frameTicker) Stop()                      { f.t.Stop() }

type Client struct {
	tetris tetrisGame
	render renderer
	logger *slog.Logger
	kbCh   <-chan keyboard.KeyEvent
	tick   ticker
	state  *state
	doneCh chan struct{}
}

type Options struct {
	Game    *tetris.Game
	Logger  *slog.Logger
	NoGhost bool
}

// New opens the keyboard. Call keyboard.Close once the client returns.
func New(o *Options) (*Client, error) {
	l := o.Logger
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	r, err := terminal.New(&terminal.Options{Logger: l, NoGhost: o.NoGhost})
	if err != nil {
		return nil, fmt.Errorf("failed to load renderer: %w", err)
	}
	kb, err := keyboard.GetKeys(20)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyboard: %w", err)
	}
	return &Client{
		tetris: o.Game,
		render: r,
		logger: l,
		kbCh:   kb,
		tick:   newFrameTicker(time.Second / frameRate),
		state:  &state{current: lobby},
		doneCh: make(chan struct{}),
	}, nil
}

// Start shows the lobby and blocks until the player quits.
func (c *Client) Start() {
	c.render.Reset()
	c.render.Game(nil)
	c.render.Lobby(terminal.DefaultLobby())

	go c.listenTetris()
	c.listenKB()
	c.tick.Stop()
	close(c.doneCh)
	c.tetris.Stop()
}

func (c *Client) listenKB() {
	for {
		event, ok := <-c.kbCh
		if !ok {
			c.logger.Error("keyboard events channel closed unexpectedly")
			return
		}
		if event.Err != nil {
			c.logger.Error("keysEvents error", slog.String("error", event.Err.Error()))
			return
		}
		if event.Key == keyboard.KeyCtrlC {
			return
		}
		switch c.state.get() {
		case lobby:
			switch event.Rune {
			case 'p':
				c.render.Reset()
				c.tetris.Start()
				c.state.set(playing)
				c.draw()
			case 'q':
				return
			}
		case playing:
			if a, ok := action(event); ok {
				c.tetris.Action(a)
			}
		}
	}
}

// action maps a key press to a game action.
func action(e keyboard.KeyEvent) (tetris.Action, bool) {
	switch {
	case e.Key == keyboard.KeyArrowLeft || e.Rune == 'a' || e.Rune == 'h':
		return tetris.MoveLeft, true
	case e.Key == keyboard.KeyArrowRight || e.Rune == 'd' || e.Rune == 'l':
		return tetris.MoveRight, true
	case e.Key == keyboard.KeyArrowDown || e.Rune == 's' || e.Rune == 'j':
		return tetris.MoveDown, true
	case e.Key == keyboard.KeyArrowUp || e.Rune == 'w' || e.Rune == 'k' || e.Rune == 'e':
		return tetris.RotateRight, true
	case e.Rune == 'q' || e.Rune == '.' || e.Rune == 'i':
		return tetris.RotateLeft, true
	case e.Key == keyboard.KeySpace || e.Key == keyboard.KeyEnter:
		return tetris.DropDown, true
	case e.Rune == '0' || e.Rune == 'c':
		return tetris.Hold, true
	case e.Key == keyboard.KeyEsc || e.Rune == 'p':
		return tetris.Pause, true
	case e.Key == keyboard.KeyBackspace || e.Key == keyboard.KeyBackspace2 || e.Key == keyboard.KeyDelete:
		return tetris.Restart, true
	}
	return "", false
}

// listenTetris redraws on every game update and on a fixed frame ticker.
func (c *Client) listenTetris() {
	for {
		select {
		case <-c.tetris.Updates():
			c.draw()
		case <-c.tick.C():
			c.draw()
		case <-c.doneCh:
			return
		}
	}
}

func (c *Client) draw() {
	if c.state.get() != playing {
		return
	}
	s := c.tetris.Read()
	if s == nil {
		return
	}
	c.render.Game(s)
	switch {
	case s.Score.GameOver:
		c.state.set(lobby)
		c.render.Lobby(terminal.GameOver(s.Score))
		c.logger.Debug("game over", slog.String("session", s.SessionID))
	case s.Paused:
		c.render.Lobby(terminal.Paused())
	}
}
