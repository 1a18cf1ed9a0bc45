package mapgen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/skirmish/internal/game/core"
	"github.com/mitchelldurbincs/skirmish/internal/game/mapgen"
	"github.com/mitchelldurbincs/skirmish/internal/game/pathfind"
	"github.com/mitchelldurbincs/skirmish/internal/game/roster"
	"github.com/mitchelldurbincs/skirmish/internal/testutil"
)

const testSeed = 12345

func TestDefaultArenaConfig(t *testing.T) {
	config := mapgen.DefaultArenaConfig(20, 15, 3, 5)

	assert.Equal(t, 20, config.Width)
	assert.Equal(t, 15, config.Height)
	assert.Equal(t, 3, config.Elves)
	assert.Equal(t, 5, config.Goblins)
	assert.Equal(t, 6, config.WallRatio)
	assert.NoError(t, config.Validate())
}

func TestArenaConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		config mapgen.ArenaConfig
	}{
		{"TooNarrow", mapgen.DefaultArenaConfig(2, 10, 1, 1)},
		{"NegativeUnits", mapgen.DefaultArenaConfig(10, 10, -1, 1)},
		{"TooManyUnits", mapgen.DefaultArenaConfig(4, 4, 3, 2)},
		{"NegativeWallRatio", mapgen.ArenaConfig{Width: 5, Height: 5, WallRatio: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.config.Validate())
		})
	}
}

func TestNewGenerator(t *testing.T) {
	config := mapgen.DefaultArenaConfig(10, 10, 1, 1)
	generator := mapgen.NewGenerator(config, testutil.NewTestRNG(testSeed))
	require.NotNil(t, generator)

	arena, err := generator.Generate()
	require.NoError(t, err)
	assert.Equal(t, 10, arena.Grid.W)
	assert.Equal(t, 10, arena.Grid.H)
	assert.Len(t, arena.Placements, 2)
}

func TestGenerator_Generate_BorderIsWalled(t *testing.T) {
	arena, err := mapgen.NewGenerator(mapgen.DefaultArenaConfig(12, 9, 2, 3), testutil.NewTestRNG(testSeed)).Generate()
	require.NoError(t, err)

	g := arena.Grid
	for c := 0; c < g.W; c++ {
		assert.True(t, g.IsWall(core.NewCoordinate(0, c)))
		assert.True(t, g.IsWall(core.NewCoordinate(g.H-1, c)))
	}
	for r := 0; r < g.H; r++ {
		assert.True(t, g.IsWall(core.NewCoordinate(r, 0)))
		assert.True(t, g.IsWall(core.NewCoordinate(r, g.W-1)))
	}
}

func TestGenerator_Generate_PlacesRequestedUnitsConnected(t *testing.T) {
	arena, err := mapgen.NewGenerator(mapgen.DefaultArenaConfig(16, 12, 4, 6), testutil.NewTestRNG(testSeed)).Generate()
	require.NoError(t, err)

	assert.Equal(t, 4, arena.Count(roster.Elf))
	assert.Equal(t, 6, arena.Count(roster.Goblin))

	origin := arena.Placements[0].Pos
	field := pathfind.DistanceField(arena.Grid, pathfind.Free, origin)
	for i, p := range arena.Placements {
		assert.True(t, arena.Grid.IsOpen(p.Pos))
		assert.NotEqual(t, pathfind.Unreachable, field[arena.Grid.Idx(p.Pos)], "unit %d is cut off", i)
		if i > 0 {
			assert.True(t, arena.Placements[i-1].Pos.Less(p.Pos), "placements are kept in reading order")
		}
	}
}

func TestGenerator_Generate_DeterministicForSeed(t *testing.T) {
	config := mapgen.DefaultArenaConfig(14, 10, 3, 3)

	a, err := mapgen.NewGenerator(config, testutil.NewTestRNG(7)).Generate()
	require.NoError(t, err)
	b, err := mapgen.NewGenerator(config, testutil.NewTestRNG(7)).Generate()
	require.NoError(t, err)

	assert.Equal(t, a.String(), b.String())
}

func TestGenerator_Generate_NoInteriorWalls(t *testing.T) {
	config := mapgen.DefaultArenaConfig(6, 5, 1, 1)
	config.WallRatio = 0

	arena, err := mapgen.NewGenerator(config, testutil.NewTestRNG(testSeed)).Generate()
	require.NoError(t, err)

	open := 0
	arena.Grid.Cells(func(_ core.Coordinate, isOpen bool) bool {
		if isOpen {
			open++
		}
		return true
	})
	assert.Equal(t, 4*3, open)
}

func TestGenerator_Generate_FullInteriorOfUnits(t *testing.T) {
	config := mapgen.DefaultArenaConfig(4, 4, 2, 2)
	config.WallRatio = 0

	arena, err := mapgen.NewGenerator(config, testutil.NewTestRNG(testSeed)).Generate()
	require.NoError(t, err)
	assert.Len(t, arena.Placements, 4)
}
