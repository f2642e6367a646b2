// Package terminal draws tetris snapshots on an ANSI terminal in raw mode.
package terminal

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"text/template"

	"arcade/tetris"
)

const (
	// ASCII colors.
	Cyan    = "36"
	Blue    = "34"
	Orange  = "38;5;214"
	Yellow  = "33"
	Green   = "32"
	Red     = "31"
	Magenta = "35"

	resetPos    = "\033[H"      // Reset cursor position to 0,0
	clearScreen = "\033[2J\033[H"
	clearLine   = "\033[K"
	emptyCell   = "  "
	ghostCell   = "[]"
)

//go:embed "layout.tmpl"
var layout string

var colorMap = map[tetris.Color]string{
	tetris.Cyan:   Cyan,
	tetris.Blue:   Blue,
	tetris.Orange: Orange,
	tetris.Yellow: Yellow,
	tetris.Green:  Green,
	tetris.Red:    Red,
	tetris.Purple: Magenta,
}

func cell(c tetris.Color) string {
	return fmt.Sprintf("\x1b[7m\x1b[%sm[]\x1b[0m", colorMap[c])
}

type templateData struct {
	Snapshot *tetris.Snapshot
	NoGhost  bool
}

type Render struct {
	writer   io.Writer
	logger   *slog.Logger
	template *template.Template
	noGhost  bool
	// size of the last frame, used to place lobby boxes.
	width, height int
	mu            sync.Mutex
}

type Options struct {
	Writer  io.Writer
	Logger  *slog.Logger
	NoGhost bool
}

func New(o *Options) (*Render, error) {
	if o == nil {
		o = &Options{}
	}
	tmpl, err := loadTemplate()
	if err != nil {
		return nil, fmt.Errorf("unable to load template: %w", err)
	}
	w := o.Writer
	if w == nil {
		w = os.Stdout
	}
	l := o.Logger
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	cfg := tetris.DefaultConfig()
	return &Render{
		writer:   w,
		logger:   l,
		template: tmpl,
		noGhost:  o.NoGhost,
		width:    cfg.BoardWidth,
		height:   cfg.BoardHeight,
	}, nil
}

// Game draws a frame. A nil snapshot draws an empty default board.
func (r *Render) Game(s *tetris.Snapshot) {
	if s == nil {
		cfg := tetris.DefaultConfig()
		s = &tetris.Snapshot{Board: tetris.NewBoard(cfg.BoardWidth, cfg.BoardHeight)}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width, r.height = s.Board.Width, s.Board.Height
	fmt.Fprint(r.writer, resetPos)
	if err := r.template.Execute(r.writer, &templateData{Snapshot: s, NoGhost: r.noGhost}); err != nil {
		r.logger.Error("unable to execute template", slog.String("error", err.Error()))
	}
}

// Lobby draws m in a box over the middle of the board.
func (r *Render) Lobby(m Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row := max(1, r.height/2-1)
	fmt.Fprint(r.writer, strings.Join(m.box(row, 3), ""))
}

// Reset clears the screen.
func (r *Render) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprint(r.writer, clearScreen)
}

func loadTemplate() (*template.Template, error) {
	funcMap := template.FuncMap{
		"stack":  stack,
		"side":   side,
		"border": border,
	}

	// we use the console raw so new lines don't automatically transform into carriage return
	// to fix that we add a carriage return to every new line in the layout.
	return template.New("layout").Funcs(funcMap).Parse(strings.ReplaceAll(layout, "\n", "\r\n"))
}

func border(td *templateData) string {
	return strings.Repeat("--", td.Snapshot.Board.Width)
}

// stack renders the board with the pieces in flight and their ghosts on top.
func stack(td *templateData) [][]string {
	b := td.Snapshot.Board
	rendered := make([][]string, b.Height)
	for y := range b.Rows {
		rendered[y] = make([]string, b.Width)
		for x, c := range b.Rows[y] {
			rendered[y][x] = emptyCell
			if c.Filled {
				rendered[y][x] = cell(c.Color)
			}
		}
	}

	paint := func(tm tetris.Tetromino, px, py int, out string) {
		for iy, row := range tm.Grid {
			for ix, filled := range row {
				y, x := py+iy, px+ix
				if filled && y >= 0 && y < b.Height && x >= 0 && x < b.Width {
					rendered[y][x] = out
				}
			}
		}
	}
	if !td.NoGhost {
		for _, p := range td.Snapshot.Pieces {
			paint(p.Tetromino, p.X, p.GhostY, ghostCell)
		}
	}
	for _, p := range td.Snapshot.Pieces {
		paint(p.Tetromino, p.X, p.Y, cell(p.Tetromino.Color))
	}
	return rendered
}

// pieceRows renders a tetromino for the side panel, padded to four cells.
func pieceRows(tm tetris.Tetromino) []string {
	var rendered []string
	for _, r := range tm.Grid {
		row := []string{emptyCell, emptyCell, emptyCell, emptyCell}
		for i, filled := range r {
			if filled && i < len(row) {
				row[i] = cell(tm.Color)
			}
		}
		rendered = append(rendered, strings.Join(row, ""))
	}
	return rendered
}

// side renders the panel right of the board, one entry per board row.
func side(td *templateData) []string {
	s := td.Snapshot
	lines := []string{"\033[1mTerminal Tetris\033[0m", ""}

	lines = append(lines, "Next")
	for _, tm := range s.Queue {
		lines = append(lines, pieceRows(tm)...)
		lines = append(lines, "")
	}
	if len(s.Queue) == 0 {
		lines = append(lines, "")
	}

	lines = append(lines, "Hold")
	for _, tm := range s.Held {
		lines = append(lines, pieceRows(tm)...)
	}
	lines = append(lines, "",
		fmt.Sprintf("Level: %d", s.Score.Level),
		fmt.Sprintf("Lines: %d", s.Score.Lines),
		fmt.Sprintf("Tetrises: %d", s.Score.Tetrises),
	)

	out := make([]string, s.Board.Height)
	for i := range out {
		if i < len(lines) {
			out[i] = lines[i]
		}
		out[i] += clearLine
	}
	return out
}
