// Package config reads game settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/plus3/snek/internal/game"
	"github.com/rs/zerolog"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid configuration")

// Frontend selects the display
type Frontend string

const (
	FrontendWindow   Frontend = "window"
	FrontendTerminal Frontend = "terminal"
)

type Config struct {
	GridWidth     int
	GridHeight    int
	CellSize      int
	BaseSpeed     int
	GameOverPause time.Duration
	// Seed 0 means seed from the clock
	Seed     uint64
	Frontend Frontend
	DebugUI  bool
	LogLevel zerolog.Level
	LogFile  string
}

// Default is the configuration used when nothing is set
func Default() Config {
	return Config{
		GridWidth:     32,
		GridHeight:    24,
		CellSize:      20,
		BaseSpeed:     game.DefaultBaseSpeed,
		GameOverPause: 2 * time.Second,
		Frontend:      FrontendWindow,
		LogLevel:      zerolog.InfoLevel,
	}
}

// Load reads the given .env files (".env" when none are named) into the
// process environment without overriding variables already set, then
// builds the configuration from the environment. Missing files are fine.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds the configuration from lookup, starting from Default
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	p := parser{lookup: lookup}

	p.intVar("SNAKE_GRID_WIDTH", &cfg.GridWidth)
	p.intVar("SNAKE_GRID_HEIGHT", &cfg.GridHeight)
	p.intVar("SNAKE_CELL_SIZE", &cfg.CellSize)
	p.intVar("SNAKE_BASE_SPEED", &cfg.BaseSpeed)
	p.durationVar("SNAKE_GAME_OVER_PAUSE", &cfg.GameOverPause)
	p.uintVar("SNAKE_SEED", &cfg.Seed)
	p.boolVar("SNAKE_DEBUG_UI", &cfg.DebugUI)

	if v, ok := p.get("SNAKE_FRONTEND"); ok {
		cfg.Frontend = Frontend(strings.ToLower(v))
	}
	if v, ok := p.get("LOG_LEVEL"); ok {
		lvl, err := zerolog.ParseLevel(strings.ToLower(v))
		if err != nil {
			p.fail("LOG_LEVEL", v, err)
		} else {
			cfg.LogLevel = lvl
		}
	}
	if v, ok := p.get("LOG_FILE"); ok {
		cfg.LogFile = v
	}

	if err := errors.Join(p.errs...); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges and enumerations
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.GridWidth >= 4 && c.GridWidth <= 512, "grid width %d outside [4, 512]", c.GridWidth)
	check(c.GridHeight >= 4 && c.GridHeight <= 512, "grid height %d outside [4, 512]", c.GridHeight)
	check(c.CellSize >= 4 && c.CellSize <= 64, "cell size %d outside [4, 64]", c.CellSize)
	check(c.BaseSpeed >= 1 && c.BaseSpeed <= 300, "base speed %d outside [1, 300]", c.BaseSpeed)
	check(c.GameOverPause >= 0, "game over pause %s is negative", c.GameOverPause)
	check(c.Frontend == FrontendWindow || c.Frontend == FrontendTerminal, "unknown frontend %q", c.Frontend)

	return errors.Join(errs...)
}

// Game is the simulation part of the configuration
func (c Config) Game() game.Config {
	return game.Config{
		Width:     c.GridWidth,
		Height:    c.GridHeight,
		BaseSpeed: c.BaseSpeed,
	}
}

// Rand returns the random source for placement, seeded from Seed or the clock
func (c Config) Rand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

type parser struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (p *parser) get(key string) (string, bool) {
	v, ok := p.lookup(key)
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (p *parser) fail(key, value string, err error) {
	p.errs = append(p.errs, fmt.Errorf("%w: %s=%q: %w", ErrInvalid, key, value, err))
}

func (p *parser) intVar(key string, dst *int) {
	if v, ok := p.get(key); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = n
	}
}

func (p *parser) uintVar(key string, dst *uint64) {
	if v, ok := p.get(key); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = n
	}
}

func (p *parser) boolVar(key string, dst *bool) {
	if v, ok := p.get(key); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = b
	}
}

func (p *parser) durationVar(key string, dst *time.Duration) {
	if v, ok := p.get(key); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = d
	}
}
