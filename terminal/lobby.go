package terminal

import (
	"fmt"
	"strings"

	"arcade/tetris"
)

const boxWidth = 38

// Message is the text of a lobby box, three centered lines.
type Message [3]string

func DefaultLobby() Message {
	return Message{"Welcome to Terminal Tetris", "", "(p)lay   (q)uit"}
}

func GameOver(s tetris.Score) Message {
	return Message{
		"Game Over :)",
		fmt.Sprintf("level %d  lines %d  tetrises %d", s.Level, s.Lines, s.Tetrises),
		"(p)lay   (q)uit",
	}
}

func Paused() Message {
	return Message{"Paused", "", "(esc) resume   (ctrl-c) quit"}
}

func center(s string) string {
	if len(s) >= boxWidth {
		return s[:boxWidth]
	}
	left := (boxWidth - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", boxWidth-len(s)-left)
}

// box returns the lines of the box with the cursor moves that place its top
// left corner at row, col.
func (m Message) box(row, col int) []string {
	edge := "+" + strings.Repeat("-", boxWidth) + "+"
	lines := []string{edge}
	for _, l := range m {
		lines = append(lines, "|"+center(l)+"|")
	}
	lines = append(lines, edge)
	for i := range lines {
		lines[i] = fmt.Sprintf("\033[%d;%dH%s", row+i, col, lines[i])
	}
	return lines
}
