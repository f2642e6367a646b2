// Package audio plays short synthesized tones when the games announce events.
package audio

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"arcade/snake"
	"arcade/tetris"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

type Tone struct {
	Freq     float64
	Duration time.Duration
}

var (
	LinesTone    = Tone{Freq: 660, Duration: 80 * time.Millisecond}
	TetrisTone   = Tone{Freq: 1320, Duration: 160 * time.Millisecond}
	GameOverTone = Tone{Freq: 220, Duration: 400 * time.Millisecond}
	ScoreTone    = Tone{Freq: 880, Duration: 50 * time.Millisecond}
)

type sink interface {
	play(beep.Streamer)
}

type speakerSink struct{}

func (speakerSink) play(s beep.Streamer) { speaker.Play(s) }

type Player struct {
	out    sink
	volume float64
	logger *slog.Logger
}

// New opens the default output device. Volume is in [0, 1].
func New(volume float64, l *slog.Logger) (*Player, error) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("unable to open speaker: %w", err)
	}
	return &Player{out: speakerSink{}, volume: volume, logger: l}, nil
}

// Close stops every tone that is still playing.
func (p *Player) Close() {
	if _, ok := p.out.(speakerSink); ok {
		speaker.Clear()
	}
}

// Play starts t without waiting for it to finish.
func (p *Player) Play(t Tone) {
	sine, err := generators.SineTone(sampleRate, t.Freq)
	if err != nil {
		p.logger.Error("unable to generate tone", slog.Float64("freq", t.Freq), slog.String("error", err.Error()))
		return
	}
	p.out.play(withVolume(beep.Take(sampleRate.N(t.Duration), sine), p.volume))
}

func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Tetris is a tetris event listener.
func (p *Player) Tetris(e tetris.Event) {
	switch e.Type {
	case tetris.EventLinesCleared:
		if e.Tetrises > 0 {
			p.Play(TetrisTone)
			return
		}
		p.Play(LinesTone)
	case tetris.EventGameOver:
		p.Play(GameOverTone)
	}
}

// Snake is a snake event listener.
func (p *Player) Snake(e snake.Event) {
	switch e.Type {
	case snake.EventScore:
		p.Play(ScoreTone)
	case snake.EventGameOver:
		p.Play(GameOverTone)
	}
}
