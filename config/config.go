// Package config loads runtime settings for the pixelworld binary.
//
// Values come from PIXELWORLD_* environment variables, optionally layered over a
// KEY=VALUE file. Unset keys keep their defaults.
package config

import (
	jlconfig "github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// Config holds the window, asset and logging settings of the game binary.
type Config struct {
	Title        string  `config:"PIXELWORLD_TITLE"`
	Width        int     `config:"PIXELWORLD_WIDTH"`
	Height       int     `config:"PIXELWORLD_HEIGHT"`
	Scale        float64 `config:"PIXELWORLD_SCALE"`
	AssetDir     string  `config:"PIXELWORLD_ASSET_DIR"`
	PlayerSprite string  `config:"PIXELWORLD_PLAYER_SPRITE"`
	LogLevel     string  `config:"PIXELWORLD_LOG_LEVEL"`
	Debug        bool    `config:"PIXELWORLD_DEBUG"`
}

// Default returns the settings used for every key that is not set.
func Default() Config {
	return Config{
		Title:        "pixelworld",
		Width:        320,
		Height:       240,
		Scale:        2.0,
		AssetDir:     "assets",
		PlayerSprite: "Player.png",
		LogLevel:     "info",
	}
}

// Load reads the environment over the defaults.
func Load() (Config, error) {
	cfg := Default()
	if err := jlconfig.FromEnv().To(&cfg); err != nil {
		return Config{}, eris.Wrap(err, "failed to load config from environment")
	}
	return cfg, cfg.Validate()
}

// LoadFile reads path, then the environment, over the defaults. Environment
// variables win over the file.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if err := jlconfig.From(path).FromEnv().To(&cfg); err != nil {
		return Config{}, eris.Wrapf(err, "failed to load config from %s", path)
	}
	return cfg, cfg.Validate()
}

// Validate rejects non-positive sizes or scale, an empty sprite name and unknown log levels.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return eris.Errorf("invalid screen size %dx%d", c.Width, c.Height)
	}
	if c.Scale <= 0 {
		return eris.Errorf("invalid scale %v", c.Scale)
	}
	if c.PlayerSprite == "" {
		return eris.New("player sprite name is empty")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return eris.Wrapf(err, "invalid log level %q", c.LogLevel)
	}
	return nil
}

// Level returns the configured log level, falling back to info.
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
