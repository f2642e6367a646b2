package tetris

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Config holds the settings of a game session. It is fixed once the session
// is created.
type Config struct {
	BoardWidth  int `yaml:"board_width"`
	BoardHeight int `yaml:"board_height"`
	SpawnX      int `yaml:"spawn_x"`
	SpawnY      int `yaml:"spawn_y"`
	QueueSize   int `yaml:"queue_size"`

	// SettleDelay is how long a resting piece waits before it is baked.
	// HardSettleDelay replaces it when the piece got there by a player
	// move down or a drop.
	SettleDelay     time.Duration `yaml:"settle_delay"`
	HardSettleDelay time.Duration `yaml:"hard_settle_delay"`

	AutoAdvanceDelay time.Duration `yaml:"auto_advance_delay"`
	InitialSpeed     float64       `yaml:"initial_speed"`
	SpeedUpPerLevel  float64       `yaml:"speed_up_per_level"`
	LinesPerLevel    int           `yaml:"lines_per_level"`
}

func DefaultConfig() Config {
	return Config{
		BoardWidth:       10,
		BoardHeight:      18,
		SpawnX:           4,
		SpawnY:           0,
		QueueSize:        3,
		SettleDelay:      750 * time.Millisecond,
		HardSettleDelay:  150 * time.Millisecond,
		AutoAdvanceDelay: 750 * time.Millisecond,
		InitialSpeed:     1,
		SpeedUpPerLevel:  1.25,
		LinesPerLevel:    10,
	}
}

// Validate reports the first setting that would make a session unplayable.
func (c Config) Validate() error {
	switch {
	case c.BoardWidth < 4 || c.BoardHeight < 4:
		return fmt.Errorf("board must be at least 4x4, got %dx%d", c.BoardWidth, c.BoardHeight)
	case c.QueueSize < 0:
		return fmt.Errorf("queue size must not be negative, got %d", c.QueueSize)
	case c.SettleDelay <= 0 || c.HardSettleDelay <= 0:
		return errors.New("settle delays must be positive")
	case c.AutoAdvanceDelay <= 0:
		return errors.New("auto advance delay must be positive")
	case !(c.InitialSpeed > 0) || math.IsInf(c.InitialSpeed, 1):
		return fmt.Errorf("initial speed must be positive and finite, got %v", c.InitialSpeed)
	case !(c.SpeedUpPerLevel >= 1) || math.IsInf(c.SpeedUpPerLevel, 1):
		return fmt.Errorf("speed up per level must be finite and at least 1, got %v", c.SpeedUpPerLevel)
	case c.LinesPerLevel < 1:
		return fmt.Errorf("lines per level must be at least 1, got %d", c.LinesPerLevel)
	}
	for _, s := range Shapes {
		t := NewTetromino(s)
		if c.SpawnX < 0 || c.SpawnY < 0 || c.SpawnX+t.Width() > c.BoardWidth || c.SpawnY+t.Height() > c.BoardHeight {
			return fmt.Errorf("shape %s does not fit at spawn position (%d, %d)", s, c.SpawnX, c.SpawnY)
		}
	}
	return nil
}

// Level returns the zero based level reached after clearing lines.
func (c Config) Level(lines int) int {
	return lines / c.LinesPerLevel
}

// MinAdvanceInterval is the fastest auto-advance period at any level.
const MinAdvanceInterval = time.Millisecond

// AdvanceInterval is the auto-advance period at a zero based level:
// AutoAdvanceDelay / (InitialSpeed * SpeedUpPerLevel^level), never below
// MinAdvanceInterval.
func (c Config) AdvanceInterval(level int) time.Duration {
	speed := c.InitialSpeed * math.Pow(c.SpeedUpPerLevel, float64(level))
	d := float64(c.AutoAdvanceDelay) / speed
	if !(d >= float64(MinAdvanceInterval)) {
		return MinAdvanceInterval
	}
	return time.Duration(d)
}
