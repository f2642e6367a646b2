package tetris

import (
	"time"

	"arcade/clock"
)

// TestEpoch is the start time of the manual clocks handed out by the helpers.
var TestEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// NewTestTetris creates a started session on the default board with a manual
// clock and a fixed seed, with the piece in flight replaced by shape at the
// spawn position.
func NewTestTetris(shape Shape) (*Tetris, *clock.Manual) {
	m := clock.NewManual(TestEpoch)
	t := NewTetris(DefaultConfig(), &Options{Clock: m, Seed: 1})
	t.Start()
	t.st.pieces = []*Piece{t.newPiece(NewTetromino(shape), t.cfg.SpawnX, t.cfg.SpawnY)}
	return t, m
}

// NewTestGame creates a Game on a manual clock with a fixed seed. The game is
// not started.
func NewTestGame() (*Game, *clock.Manual) {
	m := clock.NewManual(TestEpoch)
	return NewGame(DefaultConfig(), &Options{Clock: m, Seed: 1}), m
}

// NewTestSnapshot returns the snapshot of NewTestTetris(shape).
func NewTestSnapshot(shape Shape) *Snapshot {
	t, _ := NewTestTetris(shape)
	return t.Read()
}
