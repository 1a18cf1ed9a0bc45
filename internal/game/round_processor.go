package game

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/skirmish/internal/game/core"
	"github.com/mitchelldurbincs/skirmish/internal/game/events"
	"github.com/mitchelldurbincs/skirmish/internal/game/pathfind"
	"github.com/mitchelldurbincs/skirmish/internal/game/rules"
	"github.com/mitchelldurbincs/skirmish/internal/game/states"
)

// RoundProcessor handles the orchestration of a single round
type RoundProcessor struct {
	engine *Engine
	logger zerolog.Logger
}

// NewRoundProcessor creates a new round processor
func NewRoundProcessor(engine *Engine) *RoundProcessor {
	return &RoundProcessor{
		engine: engine,
		logger: engine.logger,
	}
}

// ProcessRound lets every unit of the round's acting order take its turn. The order is fixed
// when the round starts. Before each entry the battle is checked for a wiped out faction; if
// one is found the round does not count.
func (rp *RoundProcessor) ProcessRound(ctx context.Context) (bool, error) {
	e := rp.engine
	if err := rp.checkContext(ctx, e.rounds+1, "before starting"); err != nil {
		return false, err
	}

	round := e.rounds + 1
	roundLogger := rp.logger.With().Int("round", round).Logger()
	roundStart := time.Now()
	if e.startTime.IsZero() {
		e.startTime = roundStart
	}

	bc := e.stateMachine.GetContext()
	bc.Round = round
	if err := e.stateMachine.TransitionTo(states.PhaseRoundInProgress, fmt.Sprintf("round %d", round)); err != nil {
		return false, core.WrapRoundError(round, "start", err)
	}

	order := e.units.ReadingOrder()
	e.eventBus.Publish(events.NewRoundStartedEvent(e.battleID, round, order))
	roundLogger.Trace().Int("units", len(order)).Msg("Starting round")

	if len(order) == 0 {
		return rp.endBattle(roundLogger)
	}

	for _, id := range order {
		if over, winner, hasWinner := e.winCondition.CheckGameOver(e.units); over {
			roundLogger.Debug().Int("completed_rounds", e.rounds).Msg("Battle ended during round")
			if err := e.finish(winner, hasWinner); err != nil {
				return true, err
			}
			return true, nil
		}
		if !e.units.Alive(id) {
			continue
		}
		if err := rp.checkContext(ctx, round, "unit turn"); err != nil {
			e.fail(err)
			return true, err
		}
		if err := rp.takeTurn(round, id, roundLogger); err != nil {
			e.fail(err)
			return true, err
		}
	}

	e.rounds = round
	if err := e.stateMachine.TransitionTo(states.PhaseRoundComplete, fmt.Sprintf("round %d complete", round)); err != nil {
		return false, core.WrapRoundError(round, "complete", err)
	}
	e.eventBus.Publish(events.NewRoundCompletedEvent(e.battleID, round, e.rounds, time.Since(roundStart)))
	roundLogger.Trace().Msg("Round finished")
	return false, nil
}

func (rp *RoundProcessor) endBattle(roundLogger zerolog.Logger) (bool, error) {
	over, winner, hasWinner := rp.engine.winCondition.CheckGameOver(rp.engine.units)
	if !over {
		return false, core.WrapRoundError(rp.engine.rounds+1, "end", core.ErrInvariantViolation)
	}
	roundLogger.Debug().Msg("No units able to act")
	return true, rp.engine.finish(winner, hasWinner)
}

// checkContext checks if the context is cancelled
func (rp *RoundProcessor) checkContext(ctx context.Context, round int, phase string) error {
	select {
	case <-ctx.Done():
		rp.logger.Warn().
			Err(ctx.Err()).
			Int("round", round).
			Str("phase", phase).
			Msg("Battle round cancelled or timed out")
		return core.WrapRoundError(round, phase, ctx.Err())
	default:
		return nil
	}
}

// takeTurn moves the unit towards the nearest reachable enemy unless one is already adjacent,
// then attacks if an enemy is adjacent afterwards.
func (rp *RoundProcessor) takeTurn(round, id int, roundLogger zerolog.Logger) error {
	e := rp.engine
	u, ok := e.units.Get(id)
	if !ok {
		return core.NewBattleError(round, id, "turn", core.ErrUnknownUnit)
	}

	if len(e.units.AdjacentEnemies(id)) == 0 {
		enemies := e.units.LivingEnemies(u.Faction)
		targets := make([]core.Coordinate, len(enemies))
		for i, en := range enemies {
			targets[i] = en.Pos
		}

		move, found := pathfind.NextMove(e.grid, e.units, u.Pos, targets)
		if found && move.Step != u.Pos {
			if e.units.Occupied(move.Step) || !e.grid.IsOpen(move.Step) || !move.Step.IsAdjacentTo(u.Pos) {
				return core.NewBattleError(round, id, "move to "+move.Step.String(), core.ErrInvariantViolation)
			}
			if err := e.units.Move(id, move.Step); err != nil {
				return core.NewBattleError(round, id, "move", err)
			}
			e.eventBus.Publish(events.NewUnitMovedEvent(e.battleID, round, id, u.Faction, u.Pos, move.Step, move.Dest))
			u.Pos = move.Step
		}
	}

	target, ok := rules.SelectTarget(e.units.AdjacentEnemies(id))
	if !ok {
		return nil
	}
	remaining, killed, err := e.units.Damage(target.ID, u.Power)
	if err != nil {
		return core.NewBattleError(round, id, "attack", err)
	}
	e.eventBus.Publish(events.NewUnitAttackedEvent(e.battleID, round, id, target.ID, u.Power, remaining))
	if killed {
		e.eventBus.Publish(events.NewUnitKilledEvent(e.battleID, round, id, target.ID, target.Faction, target.Pos))
		roundLogger.Debug().
			Int("killer_id", id).
			Int("victim_id", target.ID).
			Str("victim_faction", target.Faction.String()).
			Stringer("pos", target.Pos).
			Msg("Unit killed")
	}
	return nil
}
