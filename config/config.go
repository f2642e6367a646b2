// Package config loads the settings of both games from an optional YAML file.
//
// Durations are written the way time.ParseDuration reads them:
//
//	tetris:
//	  settle_delay: 500ms
//	snake:
//	  moves_per_second: 10
//	audio:
//	  enabled: true
package config

import (
	"errors"
	"fmt"
	"os"

	"arcade/snake"
	"arcade/tetris"

	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

type Audio struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

type Config struct {
	Tetris tetris.Config `yaml:"tetris"`
	Snake  snake.Config  `yaml:"snake"`
	Audio  Audio         `yaml:"audio"`
}

func Default() Config {
	return Config{
		Tetris: tetris.DefaultConfig(),
		Snake:  snake.DefaultConfig(),
		Audio:  Audio{Volume: 0.5},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("unable to read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("unable to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := c.Tetris.Validate(); err != nil {
		return fmt.Errorf("%w: tetris: %w", ErrInvalid, err)
	}
	if err := c.Snake.Validate(); err != nil {
		return fmt.Errorf("%w: snake: %w", ErrInvalid, err)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio volume must be between 0 and 1, got %v", ErrInvalid, c.Audio.Volume)
	}
	return nil
}
