package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"arcade/audio"
	"arcade/config"
	"arcade/snake"

	"github.com/gdamore/tcell/v2"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	logPath := flag.String("log", "", "write debug logs to this file")
	sound := flag.Bool("sound", false, "play sounds on game events")
	flag.Parse()

	if err := run(*configPath, *logPath, *sound); err != nil {
		fmt.Fprintf(os.Stderr, "snake: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, logPath string, sound bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger, closeLog, err := config.NewLogger(logPath)
	if err != nil {
		return err
	}
	defer closeLog() //nolint: errcheck

	game := snake.NewGame(cfg.Snake, &snake.Options{Logger: logger})
	defer game.Stop()

	if sound || cfg.Audio.Enabled {
		p, err := audio.New(cfg.Audio.Volume, logger)
		if err != nil {
			logger.Warn("audio disabled", slog.String("error", err.Error()))
		} else {
			defer p.Close()
			game.Subscribe(p.Snake)
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("unable to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("unable to init screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	game.Start()
	loop(screen, game, logger)
	return nil
}

// loop reads keys and redraws at about 60 frames per second and on every
// game update, until the player quits.
func loop(screen tcell.Screen, game *snake.Game, logger *slog.Logger) {
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	eventCh := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(eventCh)
				return
			}
			eventCh <- ev
		}
	}()

	render := func() {
		if s := game.Read(); s != nil {
			draw(screen, s)
		}
	}
	for {
		select {
		case ev, ok := <-eventCh:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				a, ok, quit := keyAction(ev)
				if quit {
					logger.Debug("quit")
					return
				}
				if ok {
					game.Action(a)
				}
			case *tcell.EventResize:
				screen.Sync()
				render()
			}
		case <-game.Updates():
			render()
		case <-ticker.C:
			render()
		}
	}
}
