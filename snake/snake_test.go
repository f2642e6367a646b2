package snake

import (
	"testing"
	"time"

	"arcade/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type recorder struct{ events []EventType }

func (r *recorder) add(e Event) { r.events = append(r.events, e.Type) }

func newTestSnake(t *testing.T, cfg Config) (*Snake, *clock.Manual, *recorder) {
	t.Helper()
	m := clock.NewManual(testEpoch)
	s := NewSnake(cfg, &Options{Clock: m, Seed: 1})
	r := &recorder{}
	s.Subscribe(r.add)
	s.Start()
	return s, m, r
}

// placeFood clears the board and puts a single particle at p.
func placeFood(s *Snake, p Point) {
	for y := range s.st.food {
		clear(s.st.food[y])
	}
	s.st.food[p.Y][p.X] = true
}

func TestStart(t *testing.T) {
	s, m, r := newTestSnake(t, DefaultConfig())

	snap := s.Read()
	assert.Equal(t, []Point{{9, 9}}, snap.Tail)
	assert.Equal(t, Direction(""), snap.Direction)
	require.Len(t, snap.Food, 1)
	assert.NotEqual(t, Point{9, 9}, snap.Food[0])
	assert.Equal(t, []EventType{EventStart}, r.events)
	assert.NotEmpty(t, snap.SessionID)

	m.Advance(time.Minute)
	assert.Equal(t, []Point{{9, 9}}, s.Read().Tail, "the snake waits for the first turn")
}

func TestTurn(t *testing.T) {
	t.Run("a new direction moves right away", func(t *testing.T) {
		s, _, _ := newTestSnake(t, DefaultConfig())
		placeFood(s, Point{0, 0})
		assert.True(t, s.Turn(Right))
		assert.Equal(t, []Point{{10, 9}}, s.st.tail)
	})

	t.Run("the same direction only restarts the timer", func(t *testing.T) {
		s, m, _ := newTestSnake(t, DefaultConfig())
		placeFood(s, Point{0, 0})
		s.Turn(Right)
		m.Advance(100 * time.Millisecond)
		assert.True(t, s.Turn(Right))
		assert.Equal(t, []Point{{10, 9}}, s.st.tail)

		m.Advance(100 * time.Millisecond)
		assert.Equal(t, []Point{{10, 9}}, s.st.tail)
		m.Advance(25 * time.Millisecond)
		assert.Equal(t, []Point{{11, 9}}, s.st.tail)
	})

	t.Run("turning back is ignored", func(t *testing.T) {
		s, _, _ := newTestSnake(t, DefaultConfig())
		placeFood(s, Point{0, 0})
		s.Turn(Right)
		assert.False(t, s.Turn(Left))
		assert.Equal(t, Right, s.st.direction)
		assert.Equal(t, []Point{{10, 9}}, s.st.tail)
	})

	t.Run("auto move keeps going", func(t *testing.T) {
		s, m, _ := newTestSnake(t, DefaultConfig())
		placeFood(s, Point{0, 0})
		s.Turn(Down)
		m.Advance(3 * DefaultConfig().Interval())
		assert.Equal(t, []Point{{9, 13}}, s.st.tail)
	})
}

func TestEat(t *testing.T) {
	s, _, r := newTestSnake(t, DefaultConfig())
	placeFood(s, Point{10, 9})

	s.Turn(Right)
	assert.Equal(t, []Point{{10, 9}, {9, 9}}, s.st.tail)
	assert.Equal(t, Score{Points: 1}, s.Score())
	assert.Equal(t, []EventType{EventStart, EventScore}, r.events)

	food := s.Read().Food
	require.Len(t, food, 1)
	assert.NotContains(t, s.st.tail, food[0])
}

func TestCollision(t *testing.T) {
	tests := []struct {
		name     string
		tail     []Point
		facing   Direction
		turn     Direction
		wantOver bool
	}{
		{
			name:     "wall",
			tail:     []Point{{19, 9}},
			facing:   Down,
			turn:     Right,
			wantOver: true,
		},
		{
			name:     "top wall",
			tail:     []Point{{5, 0}},
			facing:   Left,
			turn:     Up,
			wantOver: true,
		},
		{
			name:     "body",
			tail:     []Point{{5, 5}, {6, 5}, {6, 6}, {5, 6}, {4, 6}},
			facing:   Up,
			turn:     Right,
			wantOver: true,
		},
		{
			name:   "the cell the tail leaves is free",
			tail:   []Point{{5, 5}, {5, 6}, {6, 6}, {6, 5}},
			facing: Up,
			turn:   Right,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m, r := newTestSnake(t, DefaultConfig())
			placeFood(s, Point{0, 19})
			s.st.tail = tt.tail
			s.st.direction = tt.facing

			s.Turn(tt.turn)
			assert.Equal(t, tt.wantOver, s.Score().GameOver)
			if tt.wantOver {
				assert.Equal(t, EventGameOver, r.events[len(r.events)-1])
				assert.Equal(t, 0, m.Pending())
				assert.False(t, s.Turn(tt.facing))
			}
		})
	}
}

func TestNoRoomForFood(t *testing.T) {
	cfg := Config{Rows: 2, Columns: 2, StartX: 0, StartY: 0, MovesPerSecond: 8}
	s, _, r := newTestSnake(t, cfg)
	s.st.gameOver, r.events = false, nil
	placeFood(s, Point{0, 1})
	s.st.tail = []Point{{0, 0}, {1, 0}, {1, 1}}

	s.Turn(Down)
	assert.Len(t, s.st.tail, 4)
	assert.True(t, s.Score().GameOver)
	assert.Equal(t, []EventType{EventScore, EventGameOver}, r.events)
}

func TestPause(t *testing.T) {
	s, m, r := newTestSnake(t, DefaultConfig())
	placeFood(s, Point{0, 0})

	s.Pause()
	assert.False(t, s.st.paused, "pausing before the first turn is ignored")

	s.Turn(Right)
	s.TogglePause()
	assert.True(t, s.Read().Paused)
	assert.False(t, s.Turn(Down))
	m.Advance(time.Second)
	assert.Equal(t, []Point{{10, 9}}, s.st.tail)

	s.TogglePause()
	m.Advance(DefaultConfig().Interval())
	assert.Equal(t, []Point{{11, 9}}, s.st.tail)
	assert.Equal(t, []EventType{EventStart, EventPause, EventResume}, r.events)
}

func TestTogglePauseRestartsWhenOver(t *testing.T) {
	s, _, r := newTestSnake(t, DefaultConfig())
	id := s.st.id
	s.st.tail = []Point{{19, 0}}
	s.Turn(Right)
	require.True(t, s.Score().GameOver)

	s.TogglePause()
	assert.False(t, s.Score().GameOver)
	assert.NotEqual(t, id, s.st.id)
	assert.Equal(t, EventStart, r.events[len(r.events)-1])
}

func TestConfig(t *testing.T) {
	assert.Equal(t, 125*time.Millisecond, DefaultConfig().Interval())

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "start outside", mutate: func(c *Config) { c.StartX = 20 }, wantErr: true},
		{name: "tiny board", mutate: func(c *Config) { c.Rows = 1 }, wantErr: true},
		{name: "standing still", mutate: func(c *Config) { c.MovesPerSecond = 0 }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if tt.wantErr {
				assert.Error(t, cfg.Validate())
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}

func TestGame(t *testing.T) {
	m := clock.NewManual(testEpoch)
	g := NewGame(DefaultConfig(), &Options{Clock: m, Seed: 1})
	r := &recorder{}
	g.Subscribe(r.add)

	g.Start()
	<-g.Updates()
	require.True(t, g.Action(TurnRight))
	snap := g.Read()
	require.NotNil(t, snap)
	head := snap.Tail[0]
	assert.Equal(t, 10, head.X)

	m.Advance(DefaultConfig().Interval())
	assert.Equal(t, 11, g.Read().Tail[0].X)
	assert.False(t, g.Action(Action("jump")))

	g.Stop()
	assert.Nil(t, g.Read())
	assert.False(t, g.Action(TurnDown))
	assert.Equal(t, EventStop, r.events[len(r.events)-1])
	assert.Equal(t, 0, m.Pending())
}
