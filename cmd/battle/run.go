package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/skirmish/internal/config"
	"github.com/mitchelldurbincs/skirmish/internal/game"
	"github.com/mitchelldurbincs/skirmish/internal/game/events"
	"github.com/mitchelldurbincs/skirmish/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/skirmish/internal/game/mapgen"
	"github.com/mitchelldurbincs/skirmish/internal/game/roster"
	"github.com/mitchelldurbincs/skirmish/internal/monitoring"
	"github.com/mitchelldurbincs/skirmish/internal/report"
	"github.com/mitchelldurbincs/skirmish/internal/tuning"
)

var errNoArena = errors.New("no arena given")

// runOptions are the per-invocation flag values. Empty strings and zero values fall back
// to the config.
type runOptions struct {
	MapPath      string
	ScenarioPath string
	Generate     bool
	Seed         int64
	Tune         bool
	Faction      string
	Strategy     string
	Format       string
	Render       bool
}

// run loads the arena, fights one battle and optionally tunes, then writes the report to out.
func run(ctx context.Context, out io.Writer, cfg *config.Config, opts runOptions, logger zerolog.Logger) error {
	arena, scenario, err := loadArena(cfg, opts)
	if err != nil {
		return err
	}
	rules := rulesFor(cfg, scenario)

	battleLogger := logger.With().Str("component", "cli").Logger()
	battleLogger.Info().
		Int("elves", arena.Count(roster.Elf)).
		Int("goblins", arena.Count(roster.Goblin)).
		Int("hit_points", rules.HitPoints).
		Int("elf_power", rules.ElfPower).
		Int("goblin_power", rules.GoblinPower).
		Msg("Starting battle")

	eventLog := subscribers.NewLoggerSubscriber("cli-events", logger, zerolog.DebugLevel)
	eventLog.SetEventFilter([]string{
		events.TypeBattleStarted,
		events.TypeBattleEnded,
		events.TypeUnitKilled,
	})

	engine, err := game.NewEngine(arena, rules,
		game.WithLogger(logger),
		game.WithSubscriber(eventLog),
	)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}
	outcome, err := engine.Run(ctx)
	if err != nil {
		return fmt.Errorf("run battle: %w", err)
	}

	var tuned *tuning.Result
	if opts.Tune {
		res, err := tuneArena(ctx, cfg, opts, arena, rules, logger)
		if err != nil {
			return err
		}
		tuned = &res
	}
	if scenario != nil {
		checkExpected(battleLogger, scenario, outcome, tuned)
	}

	format := opts.Format
	if format == "" {
		format = cfg.Output.Format
	}
	if err := writeReport(out, format, outcome, tuned); err != nil {
		return err
	}
	if opts.Render || cfg.Output.Render {
		fmt.Fprintln(out, engine.Render())
	}
	return nil
}

func loadArena(cfg *config.Config, opts runOptions) (*mapgen.Arena, *mapgen.Scenario, error) {
	switch {
	case opts.ScenarioPath != "":
		sc, err := mapgen.LoadScenario(opts.ScenarioPath)
		if err != nil {
			return nil, nil, err
		}
		return sc.Arena, sc, nil
	case opts.MapPath != "":
		data, err := os.ReadFile(opts.MapPath)
		if err != nil {
			return nil, nil, fmt.Errorf("read map: %w", err)
		}
		arena, err := mapgen.ParseArena(string(data))
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", opts.MapPath, err)
		}
		return arena, nil, nil
	case opts.Generate:
		seed := opts.Seed
		if seed == 0 {
			seed = cfg.Generator.Seed
		}
		gc := mapgen.DefaultArenaConfig(cfg.Generator.Width, cfg.Generator.Height,
			cfg.Generator.Elves, cfg.Generator.Goblins)
		gc.WallRatio = cfg.Generator.WallRatio
		arena, err := mapgen.NewGenerator(gc, rand.New(rand.NewSource(seed))).Generate()
		if err != nil {
			return nil, nil, fmt.Errorf("generate arena: %w", err)
		}
		return arena, nil, nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", errNoArena, usage())
	}
}

// rulesFor builds the battle rules from config, with scenario overrides on top.
func rulesFor(cfg *config.Config, sc *mapgen.Scenario) game.Rules {
	rules := game.Rules{
		HitPoints:   cfg.Battle.HitPoints,
		ElfPower:    cfg.Battle.AttackPower.Elf,
		GoblinPower: cfg.Battle.AttackPower.Goblin,
		MaxRounds:   cfg.Battle.MaxRounds,
	}
	if sc == nil {
		return rules
	}
	if sc.HitPoints > 0 {
		rules.HitPoints = sc.HitPoints
	}
	if sc.AttackPower.Elf > 0 {
		rules.ElfPower = sc.AttackPower.Elf
	}
	if sc.AttackPower.Goblin > 0 {
		rules.GoblinPower = sc.AttackPower.Goblin
	}
	return rules
}

func tuneArena(ctx context.Context, cfg *config.Config, opts runOptions, arena *mapgen.Arena, rules game.Rules, logger zerolog.Logger) (tuning.Result, error) {
	factionName := opts.Faction
	if factionName == "" {
		factionName = cfg.Tuning.Faction
	}
	faction, err := roster.ParseFaction(factionName)
	if err != nil {
		return tuning.Result{}, err
	}
	strategyName := opts.Strategy
	if strategyName == "" {
		strategyName = cfg.Tuning.Strategy
	}
	strategy, err := tuning.ParseStrategy(strategyName)
	if err != nil {
		return tuning.Result{}, err
	}

	driver := tuning.NewDriver(arena, rules, logger,
		tuning.WithStrategy(strategy),
		tuning.WithMaxBoost(cfg.Tuning.MaxBoost),
		tuning.WithParallelism(cfg.Tuning.Parallelism),
	)
	if strategy == tuning.StrategyParallel {
		gm := monitoring.NewGoroutineMonitor(logger, 0, 16*cfg.Tuning.Parallelism)
		gm.RegisterComponent("tuning", cfg.Tuning.Parallelism)
		gm.Start()
		defer func() {
			m := gm.Stop()
			logger.Debug().
				Int("baseline", m.Baseline).
				Int("peak", m.Peak).
				Int("samples", m.Samples).
				Msg("Parallel tuning goroutines")
		}()
	}

	res, err := driver.MinimumBoost(ctx, faction)
	if err != nil {
		return res, fmt.Errorf("tune %s: %w", faction, err)
	}
	return res, nil
}

func writeReport(out io.Writer, format string, outcome game.Outcome, tuned *tuning.Result) error {
	switch format {
	case "json":
		s, err := report.Build(outcome, tuned)
		if err != nil {
			return fmt.Errorf("build report: %w", err)
		}
		data, err := report.JSON(s)
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	case "text", "":
		_, err := io.WriteString(out, report.Text(outcome, tuned))
		return err
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// checkExpected warns when a scenario's recorded results no longer match and returns the
// names of the fields that differ. The boost is only compared after a tuning run.
func checkExpected(logger zerolog.Logger, sc *mapgen.Scenario, o game.Outcome, tuned *tuning.Result) []string {
	exp := sc.Expected
	var mismatched []string
	if exp.Rounds > 0 && exp.Rounds != o.Rounds {
		mismatched = append(mismatched, "rounds")
	}
	if exp.TotalHP > 0 && exp.TotalHP != o.TotalHP {
		mismatched = append(mismatched, "total_hp")
	}
	if exp.Score > 0 && exp.Score != o.Score {
		mismatched = append(mismatched, "score")
	}
	if exp.Winner != "" && exp.Winner != o.WinnerName() {
		mismatched = append(mismatched, "winner")
	}
	if tuned != nil && exp.Boost > 0 && exp.Boost != tuned.Boost {
		mismatched = append(mismatched, "boost")
	}
	if len(mismatched) == 0 {
		return nil
	}

	ev := logger.Warn().
		Str("scenario", sc.Name).
		Strs("fields", mismatched).
		Int("expected_score", exp.Score).
		Int("score", o.Score).
		Str("expected_winner", exp.Winner).
		Str("winner", o.WinnerName())
	if tuned != nil {
		ev = ev.Int("expected_boost", exp.Boost).Int("boost", tuned.Boost)
	}
	ev.Msg("Scenario result differs from expectation")
	return mismatched
}
