package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/skirmish/internal/config"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	mapPath := flag.String("map", "", "Path to an arena map file")
	scenarioPath := flag.String("scenario", "", "Path to a YAML scenario file")
	generate := flag.Bool("generate", false, "Fight on a randomly generated arena (see generator.* config)")
	seed := flag.Int64("seed", 0, "Generator seed (0 to use config default)")
	logLevel := flag.String("log-level", "", "Log level (trace, debug, info, warn, error) (empty to use config default)")
	tune := flag.Bool("tune", false, "Search for the minimum flawless attack power boost")
	faction := flag.String("faction", "", "Faction to tune: elf or goblin (empty to use config default)")
	strategy := flag.String("strategy", "", "Tuning strategy: linear, binary or parallel (empty to use config default)")
	format := flag.String("format", "", "Report format: text or json (empty to use config default)")
	render := flag.Bool("render", false, "Print the final arena")
	watch := flag.Bool("watch", false, "Re-run whenever the config file changes")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}

	cfg := config.Get()

	// Use config defaults if not overridden by flags
	if *logLevel == "" {
		*logLevel = cfg.Logging.Level
	}
	setupLogging(*logLevel, cfg.Logging.Format)

	opts := runOptions{
		MapPath:      *mapPath,
		ScenarioPath: *scenarioPath,
		Generate:     *generate,
		Seed:         *seed,
		Tune:         *tune,
		Faction:      *faction,
		Strategy:     *strategy,
		Format:       *format,
		Render:       *render,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout, cfg, opts, log.Logger); err != nil {
		log.Error().Err(err).Msg("Battle failed")
		if !*watch {
			os.Exit(1)
		}
	}

	if !*watch {
		return
	}

	if config.ConfigFilePath() == "" {
		log.Fatal().Msg("-watch needs a config file")
	}
	log.Info().Str("config", config.ConfigFilePath()).Msg("Watching config for changes")
	config.WatchConfig(func(c *config.Config, err error) {
		if err != nil {
			log.Warn().Err(err).Msg("Ignoring invalid config change")
			return
		}
		setupLogging(c.Logging.Level, c.Logging.Format)
		log.Info().Msg("Config changed, re-running battle")
		if err := run(ctx, os.Stdout, c, opts, log.Logger); err != nil {
			log.Error().Err(err).Msg("Battle failed")
		}
	})

	<-ctx.Done()
	log.Info().Msg("Shutting down")
}

// setupLogging sets the global level and picks console or JSON output.
func setupLogging(level, format string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	})
}

func usage() string {
	return fmt.Sprintf("usage: %s -map FILE | -scenario FILE | -generate [flags]", os.Args[0])
}
