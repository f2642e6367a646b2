// Package tetris contains the logic of the game: shapes, the board, piece
// movement, settling, line clears and level progression.
//
// Tetris is not safe for concurrent use. Game wraps it in a loop.Loop so that
// input and timers reach it one at a time.
package tetris

import (
	"log/slog"
	"math/rand/v2"
	"slices"
	"time"

	"arcade/clock"
	"arcade/event"

	"github.com/google/uuid"
	"github.com/kamstrup/intmap"
)

// Piece is a tetromino in flight.
type Piece struct {
	ID        uint64
	Tetromino Tetromino
	X, Y      int
}

// Score is the player facing progress of a session. Level is one based.
type Score struct {
	Level    int
	Lines    int
	Tetrises int
	GameOver bool
}

// state is everything that belongs to one session. Start replaces it whole.
type state struct {
	id       string
	board    *Board
	pieces   []*Piece
	bag      *bag
	deck     []Tetromino
	level    int
	lines    int
	tetrises int
	paused   bool
	gameOver bool
}

type settleTimer struct {
	timer clock.Timer
	hard  bool
}

type Options struct {
	Clock  clock.Clock
	Logger *slog.Logger
	// Seed feeds the bag shuffle. Zero picks a random seed per session.
	Seed uint64
}

type Tetris struct {
	cfg    Config
	clock  clock.Clock
	logger *slog.Logger
	seed   uint64
	events event.Bus[Event]

	st       *state
	pieceSeq uint64
	settling *intmap.Map[uint64, *settleTimer]

	advance    clock.Timer
	advanceGen uint64
}

// NewTetris returns an idle engine. Call Start to begin a session.
func NewTetris(cfg Config, o *Options) *Tetris {
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
	t := &Tetris{
		cfg:      cfg,
		clock:    c,
		logger:   l,
		seed:     o.Seed,
		settling: intmap.New[uint64, *settleTimer](4),
	}
	t.st = t.newState()
	return t
}

func (t *Tetris) newState() *state {
	seed := t.seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &state{
		id:    uuid.New().String(),
		board: NewBoard(t.cfg.BoardWidth, t.cfg.BoardHeight),
		bag:   newBag(rand.New(rand.NewPCG(seed, seed>>1|1))),
	}
}

// Subscribe registers fn for every event of the engine.
func (t *Tetris) Subscribe(fn func(Event)) (unsubscribe func()) {
	return t.events.Subscribe(fn)
}

func (t *Tetris) emit(e Event) {
	t.logger.Debug("event", slog.String("session", t.st.id), slog.String("type", string(e.Type)))
	t.events.Publish(e)
}

// Start throws away the current session, including its timers, and begins a
// new one.
func (t *Tetris) Start() {
	t.stopAutoAdvance()
	t.cancelAllSettling()
	t.st = t.newState()
	t.logger.Info("session started", slog.String("session", t.st.id))
	t.provisionNext()
	t.emit(Event{Type: EventStart, Score: t.Score()})
	if !t.st.gameOver {
		t.startAutoAdvance()
	}
}

// Pause stops auto-advance and suspends settle timers. Pausing a finished
// game starts a new one.
func (t *Tetris) Pause() {
	if t.st.gameOver {
		t.Start()
		return
	}
	if t.st.paused {
		return
	}
	t.stopAutoAdvance()
	t.cancelAllSettling()
	t.st.paused = true
	t.emit(Event{Type: EventPause, Score: t.Score()})
}

// Resume re-arms settle timers for resting pieces and restarts auto-advance.
func (t *Tetris) Resume() {
	if !t.st.paused || t.st.gameOver {
		return
	}
	t.st.paused = false
	t.settle(false)
	if !t.st.gameOver {
		t.startAutoAdvance()
	}
	t.emit(Event{Type: EventResume, Score: t.Score()})
}

func (t *Tetris) TogglePause() {
	if t.st.paused {
		t.Resume()
		return
	}
	t.Pause()
}

func (t *Tetris) Score() Score {
	return Score{
		Level:    t.st.level + 1,
		Lines:    t.st.lines,
		Tetrises: t.st.tetrises,
		GameOver: t.st.gameOver,
	}
}

func (t *Tetris) MoveLeft() bool {
	return t.control(func(p *Piece) bool { return t.moveBy(p, -1, 0) }, false)
}

func (t *Tetris) MoveRight() bool {
	return t.control(func(p *Piece) bool { return t.moveBy(p, 1, 0) }, false)
}

// MoveDown is the player's soft drop. A piece that comes to rest this way
// uses the short settle delay.
func (t *Tetris) MoveDown() bool {
	return t.control(func(p *Piece) bool { return t.moveBy(p, 0, 1) }, true)
}

func (t *Tetris) Drop() bool {
	return t.control(t.hardDrop, true)
}

func (t *Tetris) RotateRight() bool {
	return t.control(func(p *Piece) bool { return t.rotate(p, 1) }, false)
}

func (t *Tetris) RotateLeft() bool {
	return t.control(func(p *Piece) bool { return t.rotate(p, 3) }, false)
}

// Hold swaps the pieces in flight with the held ones. With nothing held the
// current piece is put aside and the next one spawns.
func (t *Tetris) Hold() bool {
	if t.st.gameOver || t.st.paused {
		return false
	}
	ok := t.swap()
	t.settle(false)
	return ok
}

// control applies handler to every piece in flight and runs a settle pass.
// It reports whether handler succeeded for any piece.
func (t *Tetris) control(handler func(*Piece) bool, hard bool) bool {
	if t.st.gameOver || t.st.paused {
		return false
	}
	ok := false
	for _, p := range slices.Clone(t.st.pieces) {
		if handler(p) {
			ok = true
		}
	}
	t.settle(hard)
	return ok
}

func (t *Tetris) moveBy(p *Piece, dx, dy int) bool {
	if !t.st.board.IsValidPosition(p.Tetromino, p.X+dx, p.Y+dy) {
		return false
	}
	p.X += dx
	p.Y += dy
	return true
}

func (t *Tetris) hardDrop(p *Piece) bool {
	p.Y += t.dropDownDelta(p)
	return true
}

// dropDownDelta returns how many rows p can fall before it rests.
func (t *Tetris) dropDownDelta(p *Piece) int {
	d := 0
	for t.st.board.IsValidPosition(p.Tetromino, p.X, p.Y+d+1) {
		d++
	}
	return d
}

// rotate turns p and tries to fit it, first centered on the old midpoint,
// then nudged one column at a time left and right of the old anchor.
func (t *Tetris) rotate(p *Piece, turns int) bool {
	r := Rotate(p.Tetromino, turns)
	for _, x := range kickColumns(p.X, p.Tetromino.Width(), r.Width()) {
		if t.st.board.IsValidPosition(r, x, p.Y) {
			p.Tetromino = r
			p.X = x
			return true
		}
	}
	return false
}

// kickColumns lists the columns tried for a rotated shape of width w1 whose
// previous shape of width w0 sat at x0: the old midpoint first, then x0 and
// nudges growing outwards, left before right.
func kickColumns(x0, w0, w1 int) []int {
	out := []int{x0 + w0/2 - w1/2, x0}
	for k := 1; k < w1; k++ {
		out = append(out, x0-k, x0+k)
	}
	return out
}

// swap is all or nothing: every held shape must fit at the anchor of the
// first piece in flight or nothing changes.
func (t *Tetris) swap() bool {
	if len(t.st.pieces) == 0 {
		return false
	}
	if len(t.st.deck) == 0 {
		t.st.deck = t.retire(t.st.pieces)
		t.st.pieces = nil
		return true
	}
	anchor := t.st.pieces[0]
	restored := make([]*Piece, 0, len(t.st.deck))
	for _, h := range t.st.deck {
		if !t.st.board.IsValidPosition(h, anchor.X, anchor.Y) {
			return false
		}
		restored = append(restored, t.newPiece(h, anchor.X, anchor.Y))
	}
	t.st.deck = t.retire(t.st.pieces)
	t.st.pieces = restored
	return true
}

// retire cancels the settle timers of pieces and returns their shapes.
func (t *Tetris) retire(pieces []*Piece) []Tetromino {
	out := make([]Tetromino, 0, len(pieces))
	for _, p := range pieces {
		t.cancelSettling(p.ID)
		out = append(out, p.Tetromino)
	}
	return out
}

func (t *Tetris) newPiece(tm Tetromino, x, y int) *Piece {
	t.pieceSeq++
	return &Piece{ID: t.pieceSeq, Tetromino: tm, X: x, Y: y}
}

func (t *Tetris) resting(p *Piece) bool {
	return !t.st.board.IsValidPosition(p.Tetromino, p.X, p.Y+1)
}

// settle arms or cancels settle timers, clears completed rows, and provisions
// the next piece when none is in flight.
func (t *Tetris) settle(hard bool) {
	for _, p := range t.st.pieces {
		if !t.resting(p) {
			t.cancelSettling(p.ID)
			continue
		}
		if _, ok := t.settling.Get(p.ID); ok {
			continue
		}
		delay := t.cfg.SettleDelay
		if hard {
			delay = t.cfg.HardSettleDelay
		}
		st := &settleTimer{hard: hard}
		id := p.ID
		st.timer = t.clock.AfterFunc(delay, func() { t.bake(id, st) })
		t.settling.Put(id, st)
	}

	lines := t.st.board.ClearCompletedRows()
	if lines > 0 {
		tetrises := lines / 4
		t.st.lines += lines
		t.st.tetrises += tetrises
		t.st.level = t.cfg.Level(t.st.lines)
		t.logger.Debug("lines cleared",
			slog.String("session", t.st.id),
			slog.Int("lines", lines),
			slog.Int("total", t.st.lines))
		t.emit(Event{Type: EventLinesCleared, Lines: lines, Tetrises: tetrises, Score: t.Score()})
	}

	t.provisionNext()
}

// bake runs when a settle timer fires. Callbacks from cancelled timers or an
// older session find a different handle in the registry and do nothing.
func (t *Tetris) bake(id uint64, st *settleTimer) {
	if cur, ok := t.settling.Get(id); !ok || cur != st {
		return
	}
	t.settling.Del(id)
	if t.st.gameOver || t.st.paused {
		return
	}
	i := slices.IndexFunc(t.st.pieces, func(p *Piece) bool { return p.ID == id })
	if i < 0 {
		return
	}
	p := t.st.pieces[i]
	if !t.resting(p) {
		return
	}
	t.st.board.Bake(p.Tetromino, p.X, p.Y)
	t.st.pieces = slices.Delete(t.st.pieces, i, i+1)
	t.settle(false)
}

func (t *Tetris) cancelSettling(id uint64) {
	st, ok := t.settling.Get(id)
	if !ok {
		return
	}
	st.timer.Stop()
	t.settling.Del(id)
}

func (t *Tetris) cancelAllSettling() {
	t.settling.ForEach(func(_ uint64, st *settleTimer) bool {
		st.timer.Stop()
		return true
	})
	t.settling.Clear()
}

func (t *Tetris) drawNext() Tetromino {
	return NewTetromino(t.st.bag.draw())
}

// provisionNext spawns the next piece when none is in flight. A spawn that
// does not fit ends the game.
func (t *Tetris) provisionNext() {
	if len(t.st.pieces) > 0 || t.st.gameOver {
		return
	}
	tm := t.drawNext()
	if t.st.board.IsValidPosition(tm, t.cfg.SpawnX, t.cfg.SpawnY) {
		t.st.pieces = append(t.st.pieces, t.newPiece(tm, t.cfg.SpawnX, t.cfg.SpawnY))
		t.startAutoAdvance()
		return
	}
	t.st.gameOver = true
	t.stopAutoAdvance()
	t.cancelAllSettling()
	t.logger.Info("game over",
		slog.String("session", t.st.id),
		slog.Int("lines", t.st.lines),
		slog.Int("tetrises", t.st.tetrises))
	t.emit(Event{Type: EventGameOver, Score: t.Score()})
}

// Interval returns the current auto-advance period.
func (t *Tetris) Interval() time.Duration {
	return t.cfg.AdvanceInterval(t.cfg.Level(t.st.lines))
}

// startAutoAdvance recomputes the level and (re)starts the recurring soft
// move down.
func (t *Tetris) startAutoAdvance() {
	t.stopAutoAdvance()
	t.st.level = t.cfg.Level(t.st.lines)
	t.scheduleAdvance(t.advanceGen, t.cfg.AdvanceInterval(t.st.level))
}

func (t *Tetris) scheduleAdvance(gen uint64, d time.Duration) {
	t.advance = t.clock.AfterFunc(d, func() {
		if gen != t.advanceGen {
			return
		}
		t.scheduleAdvance(gen, d)
		t.control(func(p *Piece) bool { return t.moveBy(p, 0, 1) }, false)
	})
}

func (t *Tetris) stopAutoAdvance() {
	if t.advance != nil {
		t.advance.Stop()
		t.advance = nil
	}
	t.advanceGen++
}
