package states

import (
	"fmt"
	"time"
)

// IdleState is the phase before the first round
type IdleState struct{}

func NewIdleState() State {
	return &IdleState{}
}

func (s *IdleState) Phase() BattlePhase {
	return PhaseIdle
}

func (s *IdleState) Enter(ctx *BattleContext) error {
	ctx.Logger.Debug().Msg("Battle idle")
	return nil
}

func (s *IdleState) Exit(ctx *BattleContext) error {
	ctx.StartTime = time.Now()
	return nil
}

func (s *IdleState) Validate(ctx *BattleContext) error {
	return nil
}

// RoundInProgressState is active while units take their turns
type RoundInProgressState struct{}

func NewRoundInProgressState() State {
	return &RoundInProgressState{}
}

func (s *RoundInProgressState) Phase() BattlePhase {
	return PhaseRoundInProgress
}

func (s *RoundInProgressState) Enter(ctx *BattleContext) error {
	ctx.Logger.Trace().Int("round", ctx.Round).Msg("Round started")
	return nil
}

func (s *RoundInProgressState) Exit(ctx *BattleContext) error {
	return nil
}

func (s *RoundInProgressState) Validate(ctx *BattleContext) error {
	if ctx.Round != ctx.CompletedRounds+1 {
		return fmt.Errorf("round %d cannot follow %d completed rounds", ctx.Round, ctx.CompletedRounds)
	}
	return nil
}

// RoundCompleteState marks a fully played round
type RoundCompleteState struct{}

func NewRoundCompleteState() State {
	return &RoundCompleteState{}
}

func (s *RoundCompleteState) Phase() BattlePhase {
	return PhaseRoundComplete
}

func (s *RoundCompleteState) Enter(ctx *BattleContext) error {
	ctx.CompletedRounds = ctx.Round
	ctx.Logger.Trace().Int("completed_rounds", ctx.CompletedRounds).Msg("Round complete")
	return nil
}

func (s *RoundCompleteState) Exit(ctx *BattleContext) error {
	return nil
}

func (s *RoundCompleteState) Validate(ctx *BattleContext) error {
	if ctx.Round < 1 {
		return fmt.Errorf("no round in progress")
	}
	return nil
}

// GameOverState is entered once a faction has been wiped out
type GameOverState struct{}

func NewGameOverState() State {
	return &GameOverState{}
}

func (s *GameOverState) Phase() BattlePhase {
	return PhaseGameOver
}

func (s *GameOverState) Enter(ctx *BattleContext) error {
	event := ctx.Logger.Info().
		Int("rounds", ctx.CompletedRounds).
		Dur("battle_duration", ctx.GetElapsedTime())
	if ctx.HasWinner {
		event = event.Str("winner", ctx.Winner.String())
	}
	event.Msg("Battle over")
	return nil
}

func (s *GameOverState) Exit(ctx *BattleContext) error {
	return nil
}

func (s *GameOverState) Validate(ctx *BattleContext) error {
	return nil
}

// ErrorState represents an internal fault
type ErrorState struct{}

func NewErrorState() State {
	return &ErrorState{}
}

func (s *ErrorState) Phase() BattlePhase {
	return PhaseError
}

func (s *ErrorState) Enter(ctx *BattleContext) error {
	ctx.Logger.Error().
		Err(ctx.Error).
		Int("round", ctx.Round).
		Msg("Battle entered error state")
	return nil
}

func (s *ErrorState) Exit(ctx *BattleContext) error {
	return nil
}

func (s *ErrorState) Validate(ctx *BattleContext) error {
	if ctx.Error == nil {
		return fmt.Errorf("error state requires an error in context")
	}
	return nil
}
