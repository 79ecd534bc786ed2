package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/titanous/json5"

	"wormwars/ai"
	"wormwars/game"
	"wormwars/game/types"
)

// EnvConfigPath overrides the default config file location.
const EnvConfigPath = "WORMWARS_CONFIG"

const DefaultPath = "wormwars.json5"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

type BotConfig struct {
	Variant string `json:"variant"`
	Count   int    `json:"count"`
}

type Config struct {
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	MaxTicks   int         `json:"maxTicks"`
	TickMillis int         `json:"tickMillis"`
	Seed       uint64      `json:"seed"`
	Parallel   bool        `json:"parallel"`
	Render     bool        `json:"render"`
	LogLevel   string      `json:"logLevel"`
	StatsFile  string      `json:"statsFile"`
	Bots       []BotConfig `json:"bots"`
}

func Default() *Config {
	return &Config{
		Width:      types.DefaultWidth,
		Height:     types.DefaultHeight,
		MaxTicks:   500,
		TickMillis: 0,
		Seed:       1,
		LogLevel:   "info",
		Bots: []BotConfig{
			{Variant: "PathingBot", Count: 2},
			{Variant: "GreedyBot", Count: 1},
			{Variant: "RandomBot", Count: 1},
		},
	}
}

// ResolvePath returns the path from the environment, or DefaultPath.
func ResolvePath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads a JSON5 config on top of the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json5.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: grid %dx%d must be positive", ErrInvalid, c.Width, c.Height)
	}
	if c.TickMillis < 0 {
		return fmt.Errorf("%w: tickMillis must not be negative", ErrInvalid)
	}
	total := 0
	for _, b := range c.Bots {
		if _, err := ai.NewBrain(b.Variant, 0); err != nil {
			return fmt.Errorf("%w: bot %q (known: %s)", ErrInvalid, b.Variant, strings.Join(ai.Variants(), ", "))
		}
		if b.Count < 0 {
			return fmt.Errorf("%w: bot %q count %d", ErrInvalid, b.Variant, b.Count)
		}
		total += b.Count
	}
	if total > c.Width*c.Height {
		return fmt.Errorf("%w: %d bots do not fit a %dx%d grid", ErrInvalid, total, c.Width, c.Height)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: logLevel %q", ErrInvalid, c.LogLevel)
	}
	return l, nil
}

// GameOptions maps the config onto game options.
func (c *Config) GameOptions(logger *slog.Logger) game.Options {
	bots := make([]game.BotSpec, 0, len(c.Bots))
	for _, b := range c.Bots {
		bots = append(bots, game.BotSpec{Variant: b.Variant, Count: b.Count})
	}
	return game.Options{
		Grid:     types.Grid{Width: c.Width, Height: c.Height},
		Seed:     c.Seed,
		Bots:     bots,
		Parallel: c.Parallel,
		Interval: time.Duration(c.TickMillis) * time.Millisecond,
		Logger:   logger,
	}
}
