package tetris

// PieceView is a piece in flight as seen by a renderer. GhostY is the row
// the piece would rest on after a drop.
type PieceView struct {
	Tetromino Tetromino
	X, Y      int
	GhostY    int
	Settling  bool
}

// Snapshot is a deep copy of a session that is safe to keep and read after
// the engine moves on.
type Snapshot struct {
	SessionID string
	Board     *Board
	Pieces    []PieceView
	Queue     []Tetromino
	Held      []Tetromino
	Score     Score
	Paused    bool
}

func (t *Tetris) Read() *Snapshot {
	s := &Snapshot{
		SessionID: t.st.id,
		Board:     t.st.board.Copy(),
		Score:     t.Score(),
		Paused:    t.st.paused,
	}
	for _, p := range t.st.pieces {
		_, settling := t.settling.Get(p.ID)
		s.Pieces = append(s.Pieces, PieceView{
			Tetromino: p.Tetromino.copy(),
			X:         p.X,
			Y:         p.Y,
			GhostY:    p.Y + t.dropDownDelta(p),
			Settling:  settling,
		})
	}
	for _, shape := range t.st.bag.preview(t.cfg.QueueSize) {
		s.Queue = append(s.Queue, NewTetromino(shape))
	}
	for _, h := range t.st.deck {
		s.Held = append(s.Held, h.copy())
	}
	return s
}
