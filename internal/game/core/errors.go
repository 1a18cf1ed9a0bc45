package core

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyGrid          = errors.New("grid has no rows")
	ErrRaggedRows         = errors.New("grid rows differ in length")
	ErrUnknownMarker      = errors.New("unknown map marker")
	ErrStartOnWall        = errors.New("unit start position is a wall")
	ErrPositionTaken      = errors.New("position already occupied")
	ErrOutOfBounds        = errors.New("position out of bounds")
	ErrUnknownUnit        = errors.New("unknown or dead unit")
	ErrInvariantViolation = errors.New("internal invariant violated")
	ErrBattleOver         = errors.New("battle is over")
	ErrRoundLimit         = errors.New("round limit exceeded without a winner")
)

// TerrainError reports a malformed arena cell or row.
type TerrainError struct {
	Row int
	Col int // -1 when the whole row is at fault
	Err error
}

func (e *TerrainError) Error() string {
	if e.Col < 0 {
		return fmt.Sprintf("terrain row %d: %v", e.Row, e.Err)
	}
	return fmt.Sprintf("terrain %s: %v", NewCoordinate(e.Row, e.Col), e.Err)
}

func (e *TerrainError) Unwrap() error { return e.Err }

// BattleError carries the round and acting unit for failures inside the engine.
type BattleError struct {
	Round     int
	UnitID    int // -1 when no unit was acting
	Operation string
	Err       error
}

// NewBattleError creates a BattleError
func NewBattleError(round, unitID int, operation string, err error) *BattleError {
	return &BattleError{Round: round, UnitID: unitID, Operation: operation, Err: err}
}

func (e *BattleError) Error() string {
	if e.UnitID < 0 {
		return fmt.Sprintf("round %d: %s: %v", e.Round, e.Operation, e.Err)
	}
	return fmt.Sprintf("round %d: unit %d %s: %v", e.Round, e.UnitID, e.Operation, e.Err)
}

func (e *BattleError) Unwrap() error { return e.Err }

// WrapRoundError adds round and phase context to an error. Returns nil for a nil error.
func WrapRoundError(round int, phase string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("battle round %d [%s]: %w", round, phase, err)
}

// WrapUnitError adds unit context to an error. Returns nil for a nil error.
func WrapUnitError(unitID int, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("unit %d %s: %w", unitID, operation, err)
}
