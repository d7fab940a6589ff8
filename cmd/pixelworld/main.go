package main

import (
	"flag"
	"os"
	"time"

	"github.com/plus3/pixelworld/asset"
	"github.com/plus3/pixelworld/config"
	"github.com/plus3/pixelworld/engine"
	"github.com/plus3/pixelworld/renderer"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

func main() {
	configFile := flag.String("config", "", "optional KEY=VALUE file read before the environment")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()

	if err := run(*configFile, logger); err != nil {
		logger.Error().Str("trace", eris.ToString(err, true)).Msg("pixelworld exited with error")
		os.Exit(1)
	}
}

func run(configFile string, logger zerolog.Logger) error {
	var (
		cfg config.Config
		err error
	)
	if configFile != "" {
		cfg, err = config.LoadFile(configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	logger = logger.Level(cfg.Level())
	logger.Debug().Interface("config", cfg).Msg("config loaded")

	state, err := engine.NewGameState(
		cfg.Width,
		cfg.Height,
		asset.NewDirLoader(cfg.AssetDir),
		engine.WithLogger(logger.With().Str("component", "engine").Logger()),
		engine.WithPlayerSprite(cfg.PlayerSprite),
	)
	if err != nil {
		return err
	}

	opts := []renderer.AppOption{
		renderer.WithLogger(logger.With().Str("component", "renderer").Logger()),
	}
	if cfg.Debug {
		opts = append(opts, renderer.WithDebugOverlay())
	}

	return renderer.Run(renderer.CreateApp(cfg, state, opts...))
}
