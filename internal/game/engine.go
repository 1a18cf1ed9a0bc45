// Package game runs a battle between elves and goblins on an arena.
package game

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/skirmish/internal/game/core"
	"github.com/mitchelldurbincs/skirmish/internal/game/events"
	"github.com/mitchelldurbincs/skirmish/internal/game/mapgen"
	"github.com/mitchelldurbincs/skirmish/internal/game/roster"
	"github.com/mitchelldurbincs/skirmish/internal/game/rules"
	"github.com/mitchelldurbincs/skirmish/internal/game/states"
)

// Engine owns one battle: its terrain, its living units and the round counter.
// An Engine is not safe for concurrent use; run independent battles on independent engines.
type Engine struct {
	battleID string
	arena    *mapgen.Arena
	grid     *core.Grid
	units    *roster.Roster
	rules    Rules

	rounds    int
	gameOver  bool
	winner    roster.Faction
	hasWinner bool
	err       error
	startTime time.Time
	duration  time.Duration

	logger         zerolog.Logger
	eventBus       *events.EventBus
	stateMachine   *states.StateMachine
	winCondition   *rules.WinConditionChecker
	roundProcessor *RoundProcessor
}

// NewEngine builds a battle from an arena template and rules.
func NewEngine(arena *mapgen.Arena, r Rules, opts ...Option) (*Engine, error) {
	cfg := EngineConfig{
		Arena:  arena,
		Rules:  r,
		Logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return NewEngineInitializer(cfg).Initialize()
}

// Round plays one round. done is true once the battle is over; calling Round after that
// returns core.ErrBattleOver.
func (e *Engine) Round(ctx context.Context) (bool, error) {
	if e.err != nil {
		return true, e.err
	}
	if e.gameOver {
		return true, core.WrapRoundError(e.rounds, e.stateMachine.CurrentPhase().String(), core.ErrBattleOver)
	}
	return e.roundProcessor.ProcessRound(ctx)
}

// Run plays rounds until one faction is wiped out. If the battle is still undecided after
// Rules.MaxRounds completed rounds it stops with core.ErrRoundLimit.
func (e *Engine) Run(ctx context.Context) (Outcome, error) {
	for {
		done, err := e.Round(ctx)
		if err != nil {
			if errors.Is(err, core.ErrBattleOver) {
				return e.Outcome(), nil
			}
			return e.Outcome(), err
		}
		if done {
			return e.Outcome(), nil
		}
		if e.rounds >= e.rules.MaxRounds {
			if over, _, _ := e.winCondition.CheckGameOver(e.units); !over {
				err := core.WrapRoundError(e.rounds, "limit", core.ErrRoundLimit)
				e.fail(err)
				return e.Outcome(), err
			}
		}
	}
}

// fail moves the battle into the error phase. Later calls to Round return err.
func (e *Engine) fail(err error) {
	if e.err != nil {
		return
	}
	e.err = err
	bc := e.stateMachine.GetContext()
	bc.Error = err
	if tErr := e.stateMachine.TransitionTo(states.PhaseError, err.Error()); tErr != nil {
		e.logger.Error().Err(tErr).Msg("Failed to transition to Error state")
	}
}

// finish records the result and moves the battle into the game over phase.
func (e *Engine) finish(winner roster.Faction, hasWinner bool) error {
	e.gameOver = true
	e.winner = winner
	e.hasWinner = hasWinner
	if !e.startTime.IsZero() {
		e.duration = time.Since(e.startTime)
	}

	bc := e.stateMachine.GetContext()
	if hasWinner {
		bc.SetWinner(winner)
	}
	if err := e.stateMachine.TransitionTo(states.PhaseGameOver, "faction eliminated"); err != nil {
		return core.WrapRoundError(e.rounds, "finish", err)
	}

	e.eventBus.Publish(events.NewBattleEndedEvent(
		e.battleID, winner, hasWinner, e.rounds, e.units.TotalHP(), e.duration,
	))
	return nil
}

// BattleID returns the unique id of this battle.
func (e *Engine) BattleID() string { return e.battleID }

// Rounds returns the number of completed rounds.
func (e *Engine) Rounds() int { return e.rounds }

// IsGameOver reports whether one faction has been wiped out.
func (e *Engine) IsGameOver() bool { return e.gameOver }

// Phase returns the current state machine phase.
func (e *Engine) Phase() states.BattlePhase { return e.stateMachine.CurrentPhase() }

// Rules returns the rules the battle was built with.
func (e *Engine) Rules() Rules { return e.rules }

// EventBus exposes the bus battle events are published on.
func (e *Engine) EventBus() *events.EventBus { return e.eventBus }

// Snapshot returns copies of the living units in reading order.
func (e *Engine) Snapshot() []roster.Unit { return e.units.Units() }
