package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapRoundError(t *testing.T) {
	tests := []struct {
		name     string
		round    int
		phase    string
		err      error
		expected string
		isNil    bool
	}{
		{name: "nil error returns nil", round: 3, phase: "movement", isNil: true},
		{
			name:     "movement phase error",
			round:    12,
			phase:    "movement",
			err:      ErrInvariantViolation,
			expected: "battle round 12 [movement]: internal invariant violated",
		},
		{
			name:     "plain error",
			round:    0,
			phase:    "setup",
			err:      fmt.Errorf("boom"),
			expected: "battle round 0 [setup]: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := WrapRoundError(tt.round, tt.phase, tt.err)
			if tt.isNil {
				assert.Nil(t, wrapped)
				return
			}
			require.NotNil(t, wrapped)
			assert.Equal(t, tt.expected, wrapped.Error())
			assert.True(t, errors.Is(wrapped, tt.err))
		})
	}
}

func TestWrapUnitError(t *testing.T) {
	assert.Nil(t, WrapUnitError(1, "move", nil))

	wrapped := WrapUnitError(4, "move", ErrPositionTaken)
	require.NotNil(t, wrapped)
	assert.Equal(t, "unit 4 move: position already occupied", wrapped.Error())
	assert.ErrorIs(t, wrapped, ErrPositionTaken)
}

func TestBattleError(t *testing.T) {
	t.Run("with unit", func(t *testing.T) {
		err := NewBattleError(7, 2, "step", ErrInvariantViolation)
		assert.Equal(t, "round 7: unit 2 step: internal invariant violated", err.Error())
		assert.ErrorIs(t, err, ErrInvariantViolation)
	})

	t.Run("without unit", func(t *testing.T) {
		err := NewBattleError(10001, -1, "run", ErrRoundLimit)
		assert.Equal(t, "round 10001: run: round limit exceeded without a winner", err.Error())
	})

	t.Run("errors.As functionality", func(t *testing.T) {
		wrapped := fmt.Errorf("outer: %w", NewBattleError(5, 3, "attack", ErrUnknownUnit))

		var extracted *BattleError
		require.True(t, errors.As(wrapped, &extracted))
		assert.Equal(t, 5, extracted.Round)
		assert.Equal(t, 3, extracted.UnitID)
		assert.Equal(t, "attack", extracted.Operation)
	})
}

func TestTerrainError(t *testing.T) {
	rowErr := &TerrainError{Row: 2, Col: -1, Err: ErrRaggedRows}
	assert.Equal(t, "terrain row 2: grid rows differ in length", rowErr.Error())
	assert.ErrorIs(t, rowErr, ErrRaggedRows)

	cellErr := &TerrainError{Row: 1, Col: 4, Err: ErrUnknownMarker}
	assert.Equal(t, "terrain (1,4): unknown map marker", cellErr.Error())
	assert.ErrorIs(t, cellErr, ErrUnknownMarker)
}
