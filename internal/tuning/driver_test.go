package tuning

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/skirmish/internal/game"
	"github.com/mitchelldurbincs/skirmish/internal/game/roster"
	"github.com/mitchelldurbincs/skirmish/internal/testutil"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in      string
		want    Strategy
		wantErr bool
	}{
		{"", StrategyLinear, false},
		{"linear", StrategyLinear, false},
		{"Binary", StrategyBinary, false},
		{" parallel ", StrategyParallel, false},
		{"random", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStrategy(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewDriver_Defaults(t *testing.T) {
	d := NewDriver(testutil.MustArena(t, testutil.KnownBattles[0].Map), game.DefaultRules(), testutil.NopLogger())
	assert.Equal(t, StrategyLinear, d.strategy)
	assert.Equal(t, game.DefaultHitPoints, d.MaxBoost())
	assert.Equal(t, 4, d.parallelism)

	d = NewDriver(testutil.MustArena(t, testutil.KnownBattles[0].Map), game.DefaultRules(), testutil.NopLogger(),
		WithMaxBoost(40), WithParallelism(0), WithStrategy(StrategyBinary))
	assert.Equal(t, 40, d.MaxBoost())
	assert.Equal(t, 1, d.parallelism)
	assert.Equal(t, StrategyBinary, d.strategy)
}

func TestDriver_MinimumBoost_KnownBattles(t *testing.T) {
	for _, kb := range testutil.KnownBattles {
		if kb.ElfBoost == 0 {
			continue
		}
		t.Run(kb.Name, func(t *testing.T) {
			d := NewDriver(testutil.MustArena(t, kb.Map), game.DefaultRules(), testutil.NopLogger())

			res, err := d.MinimumBoost(context.Background(), roster.Elf)
			require.NoError(t, err)

			assert.Equal(t, roster.Elf, res.Faction)
			assert.Equal(t, kb.ElfBoost, res.Boost)
			assert.Equal(t, kb.ElfPower, res.Power)
			assert.Equal(t, kb.ElfBoost, res.Trials)
			assert.Equal(t, kb.BoostedRounds, res.Outcome.Rounds)
			assert.Equal(t, kb.BoostedScore, res.Outcome.Score)
			assert.True(t, res.Outcome.Flawless(roster.Elf))
		})
	}
}

func TestDriver_MinimumBoost_ParallelMatchesLinear(t *testing.T) {
	for _, kb := range []testutil.KnownBattle{testutil.KnownBattles[0], testutil.KnownBattles[4]} {
		t.Run(kb.Name, func(t *testing.T) {
			arena := testutil.MustArena(t, kb.Map)
			d := NewDriver(arena, game.DefaultRules(), testutil.NopLogger(), WithStrategy(StrategyParallel), WithParallelism(5))

			res, err := d.MinimumBoost(context.Background(), roster.Elf)
			require.NoError(t, err)
			assert.Equal(t, kb.ElfBoost, res.Boost)
			assert.Equal(t, kb.BoostedScore, res.Outcome.Score)
			assert.Equal(t, StrategyParallel, res.Strategy)
			assert.Zero(t, res.Trials%5, "whole windows are evaluated")
		})
	}
}

func TestDriver_MinimumBoost_BinaryOnImmediateWin(t *testing.T) {
	kb := testutil.KnownBattles[2]
	d := NewDriver(testutil.MustArena(t, kb.Map), game.DefaultRules(), testutil.NopLogger(), WithStrategy(StrategyBinary))

	res, err := d.MinimumBoost(context.Background(), roster.Elf)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Boost)
	assert.Equal(t, 1, res.Trials)
	assert.Equal(t, kb.BoostedScore, res.Outcome.Score)
}

func TestDriver_MinimumBoost_Goblins(t *testing.T) {
	arena := testutil.MustArena(t, testutil.KnownBattles[1].Map)
	d := NewDriver(arena, game.DefaultRules(), testutil.NopLogger())

	res, err := d.MinimumBoost(context.Background(), roster.Goblin)
	require.NoError(t, err)
	assert.True(t, res.Outcome.Flawless(roster.Goblin))
	assert.Equal(t, 3+res.Boost, res.Power)

	if res.Boost > 1 {
		prev, err := d.Trial(context.Background(), roster.Goblin, res.Boost-1)
		require.NoError(t, err)
		assert.False(t, prev.Success)
	}
}

func TestDriver_MinimumBoost_BoundTooLow(t *testing.T) {
	d := NewDriver(testutil.MustArena(t, testutil.KnownBattles[0].Map), game.DefaultRules(), testutil.NopLogger(), WithMaxBoost(5))

	res, err := d.MinimumBoost(context.Background(), roster.Elf)
	assert.True(t, errors.Is(err, ErrNoWinningBoost))
	assert.Equal(t, 5, res.Trials)
}

func TestDriver_MinimumBoost_InvalidRules(t *testing.T) {
	r := game.DefaultRules()
	r.HitPoints = 0
	d := NewDriver(testutil.MustArena(t, testutil.KnownBattles[0].Map), r, testutil.NopLogger())

	_, err := d.MinimumBoost(context.Background(), roster.Elf)
	assert.Error(t, err)
}

func TestDriver_Trial_AbortsOnFirstLoss(t *testing.T) {
	kb := testutil.KnownBattles[0]
	arena := testutil.MustArena(t, kb.Map)

	quick, err := NewDriver(arena, game.DefaultRules(), testutil.NopLogger()).Trial(context.Background(), roster.Elf, 1)
	require.NoError(t, err)
	assert.True(t, quick.Aborted)
	assert.False(t, quick.Success)
	assert.NotEmpty(t, quick.ID)

	full, err := NewDriver(arena, game.DefaultRules(), testutil.NopLogger(), WithFullTrials(true)).Trial(context.Background(), roster.Elf, 1)
	require.NoError(t, err)
	assert.False(t, full.Aborted)
	assert.False(t, full.Success)
	assert.True(t, full.Outcome.Finished)
	assert.Less(t, quick.Outcome.Rounds, full.Outcome.Rounds+1)
}

func TestDriver_Trial_FullTrialsAgreeWithAborting(t *testing.T) {
	kb := testutil.KnownBattles[2]
	arena := testutil.MustArena(t, kb.Map)

	res, err := NewDriver(arena, game.DefaultRules(), testutil.NopLogger(), WithFullTrials(true)).MinimumBoost(context.Background(), roster.Elf)
	require.NoError(t, err)
	assert.Equal(t, kb.ElfBoost, res.Boost)
}

func TestDriver_MinimumBoost_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewDriver(testutil.MustArena(t, testutil.KnownBattles[0].Map), game.DefaultRules(), testutil.NopLogger())
	_, err := d.MinimumBoost(ctx, roster.Elf)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
