// Package tuning searches for the smallest attack power boost that lets a faction win a
// battle without losing a single unit.
package tuning

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/skirmish/internal/game"
	"github.com/mitchelldurbincs/skirmish/internal/game/core"
	"github.com/mitchelldurbincs/skirmish/internal/game/events"
	"github.com/mitchelldurbincs/skirmish/internal/game/mapgen"
	"github.com/mitchelldurbincs/skirmish/internal/game/roster"
)

// ErrNoWinningBoost is returned when no boost up to the search bound gives a flawless win.
var ErrNoWinningBoost = errors.New("no boost within bound wins without losses")

// Strategy selects how boosts are searched.
type Strategy string

const (
	// StrategyLinear tries 1, 2, 3, ... in order.
	StrategyLinear Strategy = "linear"
	// StrategyBinary doubles the boost until a win, then bisects. Assumes that once a boost
	// wins flawlessly every larger boost does too.
	StrategyBinary Strategy = "binary"
	// StrategyParallel runs windows of consecutive boosts concurrently and keeps the first
	// success in boost order, so it agrees with StrategyLinear.
	StrategyParallel Strategy = "parallel"
)

// ParseStrategy converts a config string into a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyLinear, "":
		return StrategyLinear, nil
	case StrategyBinary:
		return StrategyBinary, nil
	case StrategyParallel:
		return StrategyParallel, nil
	default:
		return "", fmt.Errorf("unknown tuning strategy %q", s)
	}
}

// Result is the minimal boost found and the battle it produced.
type Result struct {
	Faction  roster.Faction
	Boost    int
	Power    int
	Outcome  game.Outcome
	Trials   int
	Strategy Strategy
}

// Trial is one battle fought at a given boost.
type Trial struct {
	ID       string
	Boost    int
	Power    int
	Outcome  game.Outcome
	Success  bool
	Aborted  bool // stopped at the first loss of the boosted faction
	Duration time.Duration
}

// Driver runs trials against a fixed arena template. Trials never share state, so a Driver
// may be used from several goroutines.
type Driver struct {
	arena        *mapgen.Arena
	rules        game.Rules
	logger       zerolog.Logger
	engineLogger zerolog.Logger
	strategy     Strategy
	maxBoost     int
	parallelism  int
	fullTrials   bool
}

// Option adjusts a Driver.
type Option func(*Driver)

// WithStrategy selects the search strategy. The default is StrategyLinear.
func WithStrategy(s Strategy) Option {
	return func(d *Driver) { d.strategy = s }
}

// WithMaxBoost bounds the search. Zero or less means the hit point total: at that boost
// every hit kills, so larger boosts cannot change the battle.
func WithMaxBoost(n int) Option {
	return func(d *Driver) { d.maxBoost = n }
}

// WithParallelism sets the window size of StrategyParallel.
func WithParallelism(n int) Option {
	return func(d *Driver) { d.parallelism = n }
}

// WithFullTrials plays failing trials to the end instead of stopping at the first loss.
func WithFullTrials(full bool) Option {
	return func(d *Driver) { d.fullTrials = full }
}

// NewDriver creates a driver for the arena and base rules.
func NewDriver(arena *mapgen.Arena, rules game.Rules, logger zerolog.Logger, opts ...Option) *Driver {
	d := &Driver{
		arena:        arena,
		rules:        rules,
		logger:       logger.With().Str("component", "tuning").Logger(),
		engineLogger: logger,
		strategy:     StrategyLinear,
		parallelism:  4,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.maxBoost <= 0 {
		d.maxBoost = rules.HitPoints
	}
	if d.parallelism < 1 {
		d.parallelism = 1
	}
	return d
}

// MaxBoost returns the effective search bound.
func (d *Driver) MaxBoost() int { return d.maxBoost }

// MinimumBoost finds the smallest boost >= 1 with which faction wins and loses no units.
func (d *Driver) MinimumBoost(ctx context.Context, faction roster.Faction) (Result, error) {
	if err := d.rules.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid rules: %w", err)
	}

	start := time.Now()
	d.logger.Info().
		Str("faction", faction.String()).
		Str("strategy", string(d.strategy)).
		Int("max_boost", d.maxBoost).
		Msg("Searching for minimum boost")

	var (
		res Result
		err error
	)
	try := func(ctx context.Context, boost int) (Trial, error) {
		return d.Trial(ctx, faction, boost)
	}
	switch d.strategy {
	case StrategyLinear, "":
		res, err = searchLinear(ctx, d.maxBoost, try)
	case StrategyBinary:
		res, err = searchBinary(ctx, d.maxBoost, try)
	case StrategyParallel:
		res, err = searchParallel(ctx, d.maxBoost, d.parallelism, try)
	default:
		return Result{}, fmt.Errorf("unknown tuning strategy %q", d.strategy)
	}
	if err != nil {
		d.logger.Warn().Err(err).Int("trials", res.Trials).Msg("Boost search failed")
		return res, err
	}

	res.Faction = faction
	res.Strategy = d.strategy
	d.logger.Info().
		Str("faction", faction.String()).
		Int("boost", res.Boost).
		Int("power", res.Power).
		Int("trials", res.Trials).
		Int("score", res.Outcome.Score).
		Dur("elapsed", time.Since(start)).
		Msg("Minimum boost found")
	return res, nil
}

// Trial fights one battle at the given boost. Unless full trials are enabled, the battle is
// abandoned as soon as faction loses a unit.
func (d *Driver) Trial(ctx context.Context, faction roster.Faction, boost int) (Trial, error) {
	trial := Trial{
		ID:    uuid.NewString(),
		Boost: boost,
	}
	rules := d.rules.WithBoost(faction, boost)
	trial.Power = rules.PowerFor(faction)

	trialCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	bus := events.NewEventBusWithLogger(d.engineLogger)
	lost := false
	if !d.fullTrials {
		bus.SubscribeFunc(events.TypeUnitKilled, func(e events.Event) {
			if killed, ok := e.(*events.UnitKilledEvent); ok && killed.Faction == faction {
				lost = true
				cancel()
			}
		})
	}

	engine, err := game.NewEngine(d.arena, rules,
		game.WithLogger(d.engineLogger),
		game.WithBattleID(trial.ID),
		game.WithEventBus(bus),
	)
	if err != nil {
		return trial, err
	}

	started := time.Now()
	outcome, err := engine.Run(trialCtx)
	trial.Duration = time.Since(started)
	trial.Outcome = outcome

	switch {
	case err == nil:
		trial.Success = outcome.Flawless(faction)
	case lost && ctx.Err() == nil:
		trial.Aborted = true
	case errors.Is(err, core.ErrRoundLimit):
		d.logger.Warn().Int("boost", boost).Int("rounds", outcome.Rounds).Msg("Trial hit the round limit")
	default:
		return trial, fmt.Errorf("trial at boost %d: %w", boost, err)
	}

	d.logger.Debug().
		Str("trial_id", trial.ID).
		Int("boost", boost).
		Int("power", trial.Power).
		Bool("success", trial.Success).
		Bool("aborted", trial.Aborted).
		Int("rounds", outcome.Rounds).
		Dur("duration", trial.Duration).
		Msg("Trial finished")
	return trial, nil
}

func resultFrom(t Trial, trials int) Result {
	return Result{Boost: t.Boost, Power: t.Power, Outcome: t.Outcome, Trials: trials}
}
