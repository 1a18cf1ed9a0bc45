package rules

import (
	"github.com/mitchelldurbincs/skirmish/internal/game/roster"
	"github.com/rs/zerolog"
)

// WinConditionChecker handles faction elimination and winner determination
type WinConditionChecker struct {
	logger zerolog.Logger
}

// NewWinConditionChecker creates a new win condition checker
func NewWinConditionChecker(logger zerolog.Logger) *WinConditionChecker {
	return &WinConditionChecker{
		logger: logger.With().Str("component", "WinConditionChecker").Logger(),
	}
}

// FactionCounter is the slice of the roster the checker needs
type FactionCounter interface {
	FactionCounts() (elves, goblins int)
}

// CheckGameOver reports whether one faction has been wiped out.
// Returns (isGameOver, winner, hasWinner); hasWinner is false only when both sides are empty.
func (wc *WinConditionChecker) CheckGameOver(units FactionCounter) (bool, roster.Faction, bool) {
	elves, goblins := units.FactionCounts()
	gameOver := elves == 0 || goblins == 0

	if !gameOver {
		return false, 0, false
	}

	switch {
	case elves > 0:
		wc.logger.Debug().Int("survivors", elves).Msg("Elves hold the field")
		return true, roster.Elf, true
	case goblins > 0:
		wc.logger.Debug().Int("survivors", goblins).Msg("Goblins hold the field")
		return true, roster.Goblin, true
	default:
		wc.logger.Debug().Msg("No units left on either side")
		return true, 0, false
	}
}
