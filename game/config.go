package game

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// LaneCount is the number of lanes the ship can occupy.
const LaneCount = 3

// Config holds every tunable of the game. The zero value is not usable;
// start from DefaultConfig.
type Config struct {
	Title  string  `yaml:"title"`
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Scale  float64 `yaml:"scale"`

	// CometSpeed is how far the comet falls per second, in pixels.
	CometSpeed float32 `yaml:"comet_speed"`
	SpriteSize float32 `yaml:"sprite_size"`
	ShipY      float32 `yaml:"ship_y"`
	// CometMargin is how far above the top edge a comet spawns and how far
	// below the bottom edge it must fall before being recycled.
	CometMargin float32 `yaml:"comet_margin"`

	ShipTexture  string `yaml:"ship_texture"`
	CometTexture string `yaml:"comet_texture"`

	// Seed for the lane picker. Zero means seed from the clock.
	Seed           uint64 `yaml:"seed"`
	LogLevel       string `yaml:"log_level"`
	ExitOnGameOver bool   `yaml:"exit_on_game_over"`
	DebugUI        bool   `yaml:"debug_ui"`
}

func DefaultConfig() Config {
	return Config{
		Title:          "Spaceship Game",
		Width:          800,
		Height:         600,
		Scale:          1,
		CometSpeed:     300,
		SpriteSize:     50,
		ShipY:          50,
		CometMargin:    50,
		LogLevel:       "info",
		ExitOnGameOver: true,
	}
}

// LoadConfig returns DefaultConfig overlaid with the YAML file at path.
// An empty path yields the defaults. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.Scale <= 0 {
		errs = append(errs, fmt.Errorf("scale must be positive, got %v", c.Scale))
	}
	if c.CometSpeed <= 0 {
		errs = append(errs, fmt.Errorf("comet_speed must be positive, got %v", c.CometSpeed))
	}
	if c.SpriteSize <= 0 {
		errs = append(errs, fmt.Errorf("sprite_size must be positive, got %v", c.SpriteSize))
	}
	if c.CometMargin < 0 {
		errs = append(errs, fmt.Errorf("comet_margin must not be negative, got %v", c.CometMargin))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// LaneWidth is the width of one lane in pixels.
func (c Config) LaneWidth() float32 {
	return float32(c.Width) / LaneCount
}

// LaneCenterX is the x coordinate of the middle of lane.
func (c Config) LaneCenterX(lane int) float32 {
	w := c.LaneWidth()
	return w/2 + float32(lane)*w
}
