package main

import (
	"testing"

	"arcade/snake"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(60, 30)
	t.Cleanup(s.Fini)
	return s
}

func readLine(s tcell.Screen, y, width int) string {
	out := make([]rune, width)
	for x := range width {
		r, _, _, _ := s.GetContent(x, y)
		out[x] = r
	}
	return string(out)
}

func TestDraw(t *testing.T) {
	s := newTestScreen(t)
	draw(s, &snake.Snapshot{
		Rows:      5,
		Columns:   5,
		Tail:      []snake.Point{{2, 2}, {1, 2}},
		Food:      []snake.Point{{4, 0}},
		Direction: snake.Right,
		Score:     snake.Score{Points: 1},
	})

	r, _, _, _ := s.GetContent(0, 0)
	assert.Equal(t, '┌', r)
	r, _, _, _ = s.GetContent(11, 6)
	assert.Equal(t, '┘', r)

	r, _, style, _ := s.GetContent(5, 3)
	assert.Equal(t, '█', r)
	assert.Equal(t, headStyle, style)
	r, _, style, _ = s.GetContent(3, 3)
	assert.Equal(t, '█', r)
	assert.Equal(t, snakeStyle, style)
	r, _, _, _ = s.GetContent(9, 1)
	assert.Equal(t, '●', r)

	assert.Equal(t, "Points: 1", readLine(s, 7, 9))
}

func TestDrawStatus(t *testing.T) {
	tests := []struct {
		name string
		snap snake.Snapshot
		want string
	}{
		{"waiting", snake.Snapshot{}, "arrows or hjkl"},
		{"paused", snake.Snapshot{Direction: snake.Up, Paused: true}, "Paused"},
		{"over", snake.Snapshot{Direction: snake.Up, Score: snake.Score{GameOver: true}}, "Game Over :)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScreen(t)
			tt.snap.Rows, tt.snap.Columns = 4, 4
			draw(s, &tt.snap)
			assert.Equal(t, tt.want, readLine(s, 7, len([]rune(tt.want))))
		})
	}
}

func TestKeyAction(t *testing.T) {
	tests := []struct {
		name     string
		ev       *tcell.EventKey
		want     snake.Action
		wantOK   bool
		wantQuit bool
	}{
		{"arrow up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), snake.TurnUp, true, false},
		{"k", tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModNone), snake.TurnUp, true, false},
		{"arrow down", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), snake.TurnDown, true, false},
		{"j", tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone), snake.TurnDown, true, false},
		{"h", tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModNone), snake.TurnLeft, true, false},
		{"arrow right", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), snake.TurnRight, true, false},
		{"esc", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), snake.Pause, true, false},
		{"delete", tcell.NewEventKey(tcell.KeyDelete, 0, tcell.ModNone), snake.Restart, true, false},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), "", false, true},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), "", false, true},
		{"x", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), "", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, ok, quit := keyAction(tt.ev)
			assert.Equal(t, tt.want, a)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantQuit, quit)
		})
	}
}
