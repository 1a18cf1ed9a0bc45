package states

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/skirmish/internal/game/roster"
)

// BattleContext provides battle information to states for making decisions
type BattleContext struct {
	// BattleID uniquely identifies this battle
	BattleID string

	// Logger for state-specific logging
	Logger zerolog.Logger

	// Round is the number of the round in progress (1-based) or last started
	Round int

	// CompletedRounds is the number of full rounds played
	CompletedRounds int

	// StartTime is when the first round started
	StartTime time.Time

	// Winner is the surviving faction once the battle is over
	Winner    roster.Faction
	HasWinner bool

	// Error holds any error that caused transition to PhaseError
	Error error
}

// NewBattleContext creates a new battle context
func NewBattleContext(battleID string, logger zerolog.Logger) *BattleContext {
	return &BattleContext{
		BattleID: battleID,
		Logger:   logger.With().Str("battle_id", battleID).Logger(),
	}
}

// GetElapsedTime returns the time elapsed since the first round started
func (bc *BattleContext) GetElapsedTime() time.Duration {
	if bc.StartTime.IsZero() {
		return 0
	}
	return time.Since(bc.StartTime)
}

// SetWinner records the surviving faction
func (bc *BattleContext) SetWinner(f roster.Faction) {
	bc.Winner = f
	bc.HasWinner = true
}
