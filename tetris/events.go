package tetris

type EventType string

const (
	EventStart        EventType = "START"
	EventPause        EventType = "PAUSE"
	EventResume       EventType = "RESUME"
	EventLinesCleared EventType = "LINES_CLEARED"
	EventGameOver     EventType = "GAME_OVER"
)

// Event is published on every session state transition. Lines and Tetrises
// are the counts of a single settle pass and are only set for
// EventLinesCleared; Score carries the totals after the transition.
type Event struct {
	Type     EventType
	Lines    int
	Tetrises int
	Score    Score
}
