package snake

import (
	"fmt"
	"time"
)

type Config struct {
	Rows           int     `yaml:"rows"`
	Columns        int     `yaml:"columns"`
	StartX         int     `yaml:"start_x"`
	StartY         int     `yaml:"start_y"`
	MovesPerSecond float64 `yaml:"moves_per_second"`
}

func DefaultConfig() Config {
	return Config{
		Rows:           20,
		Columns:        20,
		StartX:         9,
		StartY:         9,
		MovesPerSecond: 8,
	}
}

func (c Config) Validate() error {
	switch {
	case c.Rows < 2 || c.Columns < 2:
		return fmt.Errorf("board must be at least 2x2, got %dx%d", c.Columns, c.Rows)
	case c.StartX < 0 || c.StartX >= c.Columns || c.StartY < 0 || c.StartY >= c.Rows:
		return fmt.Errorf("start (%d, %d) is outside the board", c.StartX, c.StartY)
	case c.MovesPerSecond <= 0:
		return fmt.Errorf("moves per second must be positive, got %v", c.MovesPerSecond)
	}
	return nil
}

// Interval is the time between two automatic moves.
func (c Config) Interval() time.Duration {
	return time.Duration(float64(time.Second) / c.MovesPerSecond)
}
