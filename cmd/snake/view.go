package main

import (
	"fmt"

	"arcade/snake"

	"github.com/gdamore/tcell/v2"
)

var (
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	snakeStyle  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	headStyle   = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	foodStyle   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// Each board cell is two screen columns wide so the board looks square.
const cellWidth = 2

func putStr(s tcell.Screen, x, y int, str string, style tcell.Style) {
	for i, r := range []rune(str) {
		s.SetContent(x+i, y, r, nil, style)
	}
}

func putCell(s tcell.Screen, p snake.Point, r rune, style tcell.Style) {
	x, y := 1+p.X*cellWidth, 1+p.Y
	s.SetContent(x, y, r, nil, style)
	s.SetContent(x+1, y, r, nil, style)
}

// draw renders a snapshot with the board at the top left corner.
func draw(s tcell.Screen, snap *snake.Snapshot) {
	s.Clear()
	w, h := snap.Columns*cellWidth+2, snap.Rows+2
	for x := range w {
		s.SetContent(x, 0, '─', nil, borderStyle)
		s.SetContent(x, h-1, '─', nil, borderStyle)
	}
	for y := range h {
		s.SetContent(0, y, '│', nil, borderStyle)
		s.SetContent(w-1, y, '│', nil, borderStyle)
	}
	s.SetContent(0, 0, '┌', nil, borderStyle)
	s.SetContent(w-1, 0, '┐', nil, borderStyle)
	s.SetContent(0, h-1, '└', nil, borderStyle)
	s.SetContent(w-1, h-1, '┘', nil, borderStyle)

	for _, p := range snap.Food {
		putCell(s, p, '●', foodStyle)
	}
	for i, p := range snap.Tail {
		style := snakeStyle
		if i == 0 {
			style = headStyle
		}
		putCell(s, p, '█', style)
	}

	putStr(s, 0, h, fmt.Sprintf("Points: %d", snap.Score.Points), textStyle)
	switch {
	case snap.Score.GameOver:
		putStr(s, 0, h+1, "Game Over :)  (esc) play again  (q)uit", textStyle)
	case snap.Paused:
		putStr(s, 0, h+1, "Paused  (esc) resume  (q)uit", textStyle)
	case snap.Direction == "":
		putStr(s, 0, h+1, "arrows or hjkl to start", textStyle)
	}
	s.Show()
}

// keyAction maps a key press to a game action. quit reports a request to
// leave the program.
func keyAction(ev *tcell.EventKey) (a snake.Action, ok, quit bool) {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return "", false, true
	case tcell.KeyUp:
		return snake.TurnUp, true, false
	case tcell.KeyDown:
		return snake.TurnDown, true, false
	case tcell.KeyLeft:
		return snake.TurnLeft, true, false
	case tcell.KeyRight:
		return snake.TurnRight, true, false
	case tcell.KeyEscape:
		return snake.Pause, true, false
	case tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyDelete:
		return snake.Restart, true, false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'k', 'K':
			return snake.TurnUp, true, false
		case 'j', 'J':
			return snake.TurnDown, true, false
		case 'h', 'H':
			return snake.TurnLeft, true, false
		case 'l', 'L':
			return snake.TurnRight, true, false
		case 'p':
			return snake.Pause, true, false
		case 'q':
			return "", false, true
		}
	}
	return "", false, false
}
