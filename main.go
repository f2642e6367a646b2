package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"arcade/audio"
	"arcade/client"
	"arcade/config"
	"arcade/tetris"

	"github.com/eiannone/keyboard"
	"golang.org/x/term"
)

const (
	hideCursor = "\033[2J\033[?25l" // also clear screen
	showCursor = "\033[%d;0H\n\r\033[?25h"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	logPath := flag.String("log", "", "write debug logs to this file")
	sound := flag.Bool("sound", false, "play sounds on game events")
	noGhost := flag.Bool("noghost", false, "hide the ghost piece")
	flag.Parse()

	if err := run(*configPath, *logPath, *sound, *noGhost); err != nil {
		fmt.Fprintf(os.Stderr, "tetris: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, logPath string, sound, noGhost bool) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("stdin is not a terminal")
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger, closeLog, err := config.NewLogger(logPath)
	if err != nil {
		return err
	}
	defer closeLog() //nolint: errcheck

	game := tetris.NewGame(cfg.Tetris, &tetris.Options{Logger: logger})
	if sound || cfg.Audio.Enabled {
		p, err := audio.New(cfg.Audio.Volume, logger)
		if err != nil {
			logger.Warn("audio disabled", slog.String("error", err.Error()))
		} else {
			defer p.Close()
			game.Subscribe(p.Tetris)
		}
	}

	restore, err := startRawConsole(fd, cfg.Tetris.BoardHeight+3)
	if err != nil {
		return err
	}
	defer restore()

	cl, err := client.New(&client.Options{Game: game, Logger: logger, NoGhost: noGhost})
	if err != nil {
		game.Stop()
		return err
	}
	defer keyboard.Close() //nolint: errcheck

	cl.Start()
	return nil
}

// startRawConsole hides the cursor and puts the terminal in raw mode. The
// returned func puts the cursor back below the board at row.
func startRawConsole(fd, row int) (func(), error) {
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("unable to set the terminal to raw mode: %w", err)
	}
	fmt.Print(hideCursor)

	return func() {
		fmt.Printf(showCursor, row)
		if err := term.Restore(fd, oldState); err != nil {
			fmt.Fprintf(os.Stderr, "unable to restore the terminal original state: %v\n", err)
		}
	}, nil
}
