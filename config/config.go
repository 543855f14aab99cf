// Package config holds process level settings for the game binary.
package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/sagivt1/Adventure-arcade-game/save"
)

// Config is filled from flags first, then environment overrides.
type Config struct {
	SaveDir     string `env:"ADVENTURE_SAVE_DIR"`
	SaveBackend string `env:"ADVENTURE_SAVE_BACKEND"`
	Slot        string `env:"ADVENTURE_SLOT"`
	StartLevel  string `env:"ADVENTURE_START_LEVEL"`
	// Seed drives the attack variant source; zero picks a random seed.
	Seed        int64 `env:"ADVENTURE_SEED"`
	Debug       bool  `env:"ADVENTURE_DEBUG"`
	HotReload   bool  `env:"ADVENTURE_HOT_RELOAD"`
	WindowW     int   `env:"ADVENTURE_WINDOW_W"`
	WindowH     int   `env:"ADVENTURE_WINDOW_H"`
	StartPaused bool  `env:"ADVENTURE_START_PAUSED"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		SaveDir:     ".saves",
		SaveBackend: save.BackendFile,
		Slot:        save.DefaultSlot,
		StartLevel:  "temple",
		WindowW:     1280,
		WindowH:     720,
	}
}

// RegisterFlags binds cfg fields to fs.
func RegisterFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.SaveDir, "save-dir", cfg.SaveDir, "Directory for save slots")
	fs.StringVar(&cfg.SaveBackend, "save-backend", cfg.SaveBackend, "Save backend: file or sqlite")
	fs.StringVar(&cfg.Slot, "slot", cfg.Slot, "Save slot name")
	fs.StringVar(&cfg.StartLevel, "level", cfg.StartLevel, "Level to load at start")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed (0 = random)")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Draw debug overlay")
	fs.BoolVar(&cfg.HotReload, "hot-reload", cfg.HotReload, "Watch prefabs and levels for changes")
	fs.IntVar(&cfg.WindowW, "width", cfg.WindowW, "Window width")
	fs.IntVar(&cfg.WindowH, "height", cfg.WindowH, "Window height")
	fs.BoolVar(&cfg.StartPaused, "paused", cfg.StartPaused, "Start with the pause menu open")
}

// Load parses args into a Config and applies environment overrides.
func Load(name string, args []string) (Config, error) {
	cfg := Default()
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	RegisterFlags(fs, &cfg)
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("config: parse flags: %w", err)
	}
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	return nil
}

// Validate rejects settings the game cannot start with.
func (c Config) Validate() error {
	switch c.SaveBackend {
	case save.BackendFile, save.BackendSQLite:
	default:
		return fmt.Errorf("config: unknown save backend %q", c.SaveBackend)
	}
	if c.SaveDir == "" {
		return fmt.Errorf("config: empty save dir")
	}
	if c.WindowW <= 0 || c.WindowH <= 0 {
		return fmt.Errorf("config: invalid window size %dx%d", c.WindowW, c.WindowH)
	}
	return nil
}
