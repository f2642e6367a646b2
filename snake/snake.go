// Package snake is the snake game: a tail that follows its head around a
// board, growing by one segment for every particle of food it eats.
//
// Snake is not safe for concurrent use, see Game.
package snake

import (
	"log/slog"
	"math/rand/v2"
	"slices"

	"arcade/clock"
	"arcade/event"

	"github.com/google/uuid"
)

type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

func (d Direction) delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	return 0, 0
}

func (d Direction) complement() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	return ""
}

type Point struct{ X, Y int }

type Score struct {
	Points   int
	GameOver bool
}

type EventType string

const (
	EventStart    EventType = "START"
	EventStop     EventType = "STOP"
	EventPause    EventType = "PAUSE"
	EventResume   EventType = "RESUME"
	EventScore    EventType = "SCORE"
	EventGameOver EventType = "GAME_OVER"
)

type Event struct {
	Type  EventType
	Score Score
}

type state struct {
	id   string
	food [][]bool
	// tail is head first.
	tail      []Point
	direction Direction
	paused    bool
	gameOver  bool
	rand      *rand.Rand
}

type Options struct {
	Clock  clock.Clock
	Logger *slog.Logger
	// Seed feeds food placement. Zero picks a random seed per session.
	Seed uint64
}

type Snake struct {
	cfg    Config
	clock  clock.Clock
	logger *slog.Logger
	seed   uint64
	events event.Bus[Event]

	st *state

	mover   clock.Timer
	moveGen uint64
}

// NewSnake returns an idle game. Call Start to begin a session.
func NewSnake(cfg Config, o *Options) *Snake {
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
	s := &Snake{cfg: cfg, clock: c, logger: l, seed: o.Seed}
	s.st = s.newState()
	return s
}

func (s *Snake) newState() *state {
	seed := s.seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	food := make([][]bool, s.cfg.Rows)
	for y := range food {
		food[y] = make([]bool, s.cfg.Columns)
	}
	return &state{
		id:   uuid.New().String(),
		food: food,
		tail: []Point{{s.cfg.StartX, s.cfg.StartY}},
		rand: rand.New(rand.NewPCG(seed, seed>>1|1)),
	}
}

func (s *Snake) Subscribe(fn func(Event)) (unsubscribe func()) {
	return s.events.Subscribe(fn)
}

func (s *Snake) emit(t EventType) {
	s.logger.Debug("event", slog.String("session", s.st.id), slog.String("type", string(t)))
	s.events.Publish(Event{Type: t, Score: s.Score()})
}

// Start begins a new session. The snake stands still until the first turn.
func (s *Snake) Start() {
	s.stopAutoMove()
	s.st = s.newState()
	s.logger.Info("session started", slog.String("session", s.st.id))
	s.addParticle()
	s.emit(EventStart)
}

// Stop halts the snake. Start begins a new session afterwards.
func (s *Snake) Stop() {
	s.stopAutoMove()
	s.emit(EventStop)
}

// Pause only applies once the snake is moving.
func (s *Snake) Pause() {
	if s.st.direction == "" || s.st.paused || s.st.gameOver {
		return
	}
	s.stopAutoMove()
	s.st.paused = true
	s.emit(EventPause)
}

func (s *Snake) Resume() {
	if !s.st.paused || s.st.gameOver {
		return
	}
	s.st.paused = false
	s.startAutoMove()
	s.emit(EventResume)
}

// TogglePause pauses or resumes the game, or starts a new one when it is over.
func (s *Snake) TogglePause() {
	switch {
	case s.st.gameOver:
		s.Start()
	case s.st.paused:
		s.Resume()
	default:
		s.Pause()
	}
}

func (s *Snake) Score() Score {
	return Score{Points: len(s.st.tail) - 1, GameOver: s.st.gameOver}
}

// Turn heads the snake towards d. A new direction moves right away; turning
// back onto the body is ignored. It reports whether the turn was taken.
func (s *Snake) Turn(d Direction) bool {
	if s.st.paused || s.st.gameOver {
		return false
	}
	if dx, dy := d.delta(); dx == 0 && dy == 0 {
		return false
	}
	if s.st.direction != "" && d == s.st.direction.complement() {
		return false
	}
	s.stopAutoMove()
	changed := d != s.st.direction
	s.st.direction = d
	if changed {
		s.step()
	}
	if !s.st.gameOver {
		s.startAutoMove()
	}
	return true
}

// step moves the head one cell. Hitting a wall or the body ends the game.
func (s *Snake) step() {
	dx, dy := s.st.direction.delta()
	head := s.st.tail[0]
	next := Point{head.X + dx, head.Y + dy}
	body := s.st.tail[:len(s.st.tail)-1]
	if !s.isFree(next, body) {
		s.over("collision")
		return
	}
	last := s.st.tail[len(s.st.tail)-1]
	tail := append([]Point{next}, body...)
	if !s.st.food[next.Y][next.X] {
		s.st.tail = tail
		return
	}
	s.st.food[next.Y][next.X] = false
	s.st.tail = append(tail, last)
	s.emit(EventScore)
	s.addParticle()
}

func (s *Snake) isFree(p Point, body []Point) bool {
	if p.X < 0 || p.X >= s.cfg.Columns || p.Y < 0 || p.Y >= s.cfg.Rows {
		return false
	}
	return !slices.Contains(body, p)
}

// addParticle drops food on a random free cell. After Rows*Columns misses the
// board counts as full and the game ends.
func (s *Snake) addParticle() {
	for range s.cfg.Rows * s.cfg.Columns {
		p := Point{s.st.rand.IntN(s.cfg.Columns), s.st.rand.IntN(s.cfg.Rows)}
		if s.isFree(p, s.st.tail) {
			s.st.food[p.Y][p.X] = true
			return
		}
	}
	s.over("no room for food")
}

func (s *Snake) over(reason string) {
	s.st.gameOver = true
	s.stopAutoMove()
	s.logger.Info("game over",
		slog.String("session", s.st.id),
		slog.String("reason", reason),
		slog.Int("points", len(s.st.tail)-1))
	s.emit(EventGameOver)
}

func (s *Snake) startAutoMove() {
	s.stopAutoMove()
	if s.st.direction == "" {
		return
	}
	s.scheduleMove(s.moveGen)
}

func (s *Snake) scheduleMove(gen uint64) {
	s.mover = s.clock.AfterFunc(s.cfg.Interval(), func() {
		if gen != s.moveGen || s.st.paused || s.st.gameOver {
			return
		}
		s.scheduleMove(gen)
		s.step()
	})
}

func (s *Snake) stopAutoMove() {
	if s.mover != nil {
		s.mover.Stop()
		s.mover = nil
	}
	s.moveGen++
}

// Snapshot is a copy of a session safe to read after the game moves on.
type Snapshot struct {
	SessionID string
	Rows      int
	Columns   int
	Food      []Point
	Tail      []Point
	Direction Direction
	Score     Score
	Paused    bool
}

func (s *Snake) Read() *Snapshot {
	snap := &Snapshot{
		SessionID: s.st.id,
		Rows:      s.cfg.Rows,
		Columns:   s.cfg.Columns,
		Tail:      slices.Clone(s.st.tail),
		Direction: s.st.direction,
		Score:     s.Score(),
		Paused:    s.st.paused,
	}
	for y, row := range s.st.food {
		for x, f := range row {
			if f {
				snap.Food = append(snap.Food, Point{x, y})
			}
		}
	}
	return snap
}
