package client

import (
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"arcade/terminal"
	"arcade/tetris"

	"github.com/eiannone/keyboard"
)

type mockTetris struct {
	mu       sync.Mutex
	updateCh chan struct{}
	starts   int
	stopped  bool
	action   tetris.Action
	snapshot *tetris.Snapshot
}

func (m *mockTetris) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.starts++
	m.snapshot = tetris.NewTestSnapshot(tetris.T)
}

func (m *mockTetris) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
}

func (m *mockTetris) Action(a tetris.Action) bool {
	m.mu.Lock()
	m.action = a
	m.mu.Unlock()
	m.updateCh <- struct{}{}
	return true
}

func (m *mockTetris) Read() *tetris.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot
}

func (m *mockTetris) Updates() <-chan struct{} { return m.updateCh }

func (m *mockTetris) lastAction() tetris.Action {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.action
}

func (m *mockTetris) sendGameOver() {
	m.mu.Lock()
	m.snapshot.Score.GameOver = true
	m.mu.Unlock()
	m.updateCh <- struct{}{}
}

type mockTicker struct {
	mu      sync.Mutex
	ch      chan time.Time
	stopped bool
}

func newMockTicker() *mockTicker          { return &mockTicker{ch: make(chan time.Time)} }
func (m *mockTicker) C() <-chan time.Time { return m.ch }

func (m *mockTicker) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
}

func (m *mockTicker) isStopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped
}

type mockRender struct {
	mu        sync.Mutex
	gameCount int
	lobbies   []terminal.Message
}

func (m *mockRender) Game(*tetris.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gameCount++
}

func (m *mockRender) Lobby(msg terminal.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lobbies = append(m.lobbies, msg)
}

func (m *mockRender) Reset() {}

func (m *mockRender) counts() (int, []terminal.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gameCount, append([]terminal.Message{}, m.lobbies...)
}

func TestClient(t *testing.T) {
	render := &mockRender{}
	tts := &mockTetris{updateCh: make(chan struct{})}
	kCh := make(chan keyboard.KeyEvent)
	tick := newMockTicker()
	cl := &Client{
		tetris: tts,
		render: render,
		logger: slog.New(slog.DiscardHandler),
		kbCh:   kCh,
		tick:   tick,
		state:  &state{current: lobby},
		doneCh: make(chan struct{}),
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() { cl.Start(); wg.Done() }()
	time.Sleep(10 * time.Millisecond)

	if games, lobbies := render.counts(); games != 1 || len(lobbies) != 1 || lobbies[0] != terminal.DefaultLobby() {
		t.Fatalf("wanted an empty frame and the lobby, got %d frames and %v", games, lobbies)
	}

	// keys are ignored in the lobby.
	kCh <- keyboard.KeyEvent{Rune: 'a'}

	// 'p' starts the game and draws the first frame.
	kCh <- keyboard.KeyEvent{Rune: 'p'}
	time.Sleep(10 * time.Millisecond)
	if tts.starts != 1 {
		t.Errorf("wanted tetris.Start() to be called once, got %d", tts.starts)
	}
	if cl.state.get() != playing {
		t.Errorf("wanted state to be playing after 'p' key press")
	}
	wantGames := 2
	if games, _ := render.counts(); games != wantGames {
		t.Errorf("wanted %d frames, got %d", wantGames, games)
	}

	// while in game, keys should direct to tetris actions.
	actions := []struct {
		key    keyboard.KeyEvent
		action tetris.Action
	}{
		{key: keyboard.KeyEvent{Rune: 's'}, action: tetris.MoveDown},
		{key: keyboard.KeyEvent{Rune: 'j'}, action: tetris.MoveDown},
		{key: keyboard.KeyEvent{Key: keyboard.KeyArrowDown}, action: tetris.MoveDown},
		{key: keyboard.KeyEvent{Rune: 'a'}, action: tetris.MoveLeft},
		{key: keyboard.KeyEvent{Rune: 'h'}, action: tetris.MoveLeft},
		{key: keyboard.KeyEvent{Key: keyboard.KeyArrowLeft}, action: tetris.MoveLeft},
		{key: keyboard.KeyEvent{Rune: 'd'}, action: tetris.MoveRight},
		{key: keyboard.KeyEvent{Rune: 'l'}, action: tetris.MoveRight},
		{key: keyboard.KeyEvent{Key: keyboard.KeyArrowRight}, action: tetris.MoveRight},
		{key: keyboard.KeyEvent{Rune: 'e'}, action: tetris.RotateRight},
		{key: keyboard.KeyEvent{Rune: 'w'}, action: tetris.RotateRight},
		{key: keyboard.KeyEvent{Rune: 'k'}, action: tetris.RotateRight},
		{key: keyboard.KeyEvent{Key: keyboard.KeyArrowUp}, action: tetris.RotateRight},
		{key: keyboard.KeyEvent{Rune: 'q'}, action: tetris.RotateLeft},
		{key: keyboard.KeyEvent{Rune: '.'}, action: tetris.RotateLeft},
		{key: keyboard.KeyEvent{Rune: 'i'}, action: tetris.RotateLeft},
		{key: keyboard.KeyEvent{Key: keyboard.KeySpace}, action: tetris.DropDown},
		{key: keyboard.KeyEvent{Key: keyboard.KeyEnter}, action: tetris.DropDown},
		{key: keyboard.KeyEvent{Rune: 'c'}, action: tetris.Hold},
		{key: keyboard.KeyEvent{Rune: '0'}, action: tetris.Hold},
		{key: keyboard.KeyEvent{Key: keyboard.KeyBackspace2}, action: tetris.Restart},
		{key: keyboard.KeyEvent{Key: keyboard.KeyDelete}, action: tetris.Restart},
	}
	for _, a := range actions {
		wantGames++
		t.Run(fmt.Sprintf("key %v", a.key), func(t *testing.T) {
			kCh <- a.key
			time.Sleep(10 * time.Millisecond)
			if games, _ := render.counts(); games != wantGames {
				t.Errorf("wanted %d frames, got %d", wantGames, games)
			}
			if got := tts.lastAction(); got != a.action {
				t.Errorf("wanted action %v, got %v", a.action, got)
			}
		})
	}

	// game over draws the frame, the game over box and goes back to the lobby.
	tts.sendGameOver()
	time.Sleep(10 * time.Millisecond)
	_, lobbies := render.counts()
	if want := terminal.GameOver(tts.Read().Score); lobbies[len(lobbies)-1] != want {
		t.Errorf("wanted %v, got %v", want, lobbies[len(lobbies)-1])
	}
	if cl.state.get() != lobby {
		t.Errorf("wanted state to be lobby")
	}

	// 'q' should quit the game back in the lobby.
	kCh <- keyboard.KeyEvent{Rune: 'q'}
	wgDone := make(chan struct{})
	go func() { wg.Wait(); close(wgDone) }()
	select {
	case <-time.After(time.Second):
		t.Errorf("timeout waiting for quit")
	case <-wgDone:
	}
	if !tick.isStopped() {
		t.Errorf("wanted the frame ticker to be stopped on quit")
	}
	tts.mu.Lock()
	defer tts.mu.Unlock()
	if !tts.stopped {
		t.Errorf("wanted tetris.Stop() to be called on quit")
	}
}

func TestPausedOverlay(t *testing.T) {
	render := &mockRender{}
	tts := &mockTetris{updateCh: make(chan struct{})}
	cl := &Client{
		tetris: tts,
		render: render,
		logger: slog.New(slog.DiscardHandler),
		state:  &state{current: playing},
	}
	tts.Start()
	tts.snapshot.Paused = true

	cl.draw()
	if _, lobbies := render.counts(); len(lobbies) != 1 || lobbies[0] != terminal.Paused() {
		t.Errorf("wanted the paused box, got %v", lobbies)
	}

	cl.state.set(lobby)
	cl.draw()
	if games, _ := render.counts(); games != 1 {
		t.Errorf("wanted no frame drawn in the lobby, got %d", games)
	}
}
