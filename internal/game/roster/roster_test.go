package roster

import (
	"testing"

	"github.com/mitchelldurbincs/skirmish/internal/game/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultPower(Faction) int { return 3 }

func newTestRoster(t *testing.T, placements ...Placement) *Roster {
	t.Helper()
	r, err := New(placements, 200, defaultPower)
	require.NoError(t, err)
	return r
}

func at(f Faction, row, col int) Placement {
	return Placement{Faction: f, Pos: core.NewCoordinate(row, col)}
}

func TestNew_AssignsIDsAndDefaults(t *testing.T) {
	r, err := New([]Placement{at(Elf, 1, 1), at(Goblin, 1, 3), at(Elf, 2, 2)}, 200, func(f Faction) int {
		if f == Elf {
			return 15
		}
		return 3
	})
	require.NoError(t, err)

	assert.Equal(t, 3, r.Len())
	u, ok := r.Get(0)
	require.True(t, ok)
	assert.Equal(t, Unit{ID: 0, Faction: Elf, Pos: core.NewCoordinate(1, 1), HP: 200, Power: 15}, u)
	g, ok := r.Get(1)
	require.True(t, ok)
	assert.Equal(t, 3, g.Power)
	assert.Equal(t, 2, r.StartCount(Elf))
	assert.Equal(t, 1, r.StartCount(Goblin))
}

func TestNew_RejectsSharedPosition(t *testing.T) {
	_, err := New([]Placement{at(Elf, 1, 1), at(Goblin, 1, 1)}, 200, defaultPower)
	assert.ErrorIs(t, err, core.ErrPositionTaken)
}

func TestRoster_ReadingOrder(t *testing.T) {
	r := newTestRoster(t, at(Goblin, 3, 1), at(Elf, 1, 4), at(Elf, 1, 2), at(Goblin, 2, 0))
	assert.Equal(t, []int{2, 1, 3, 0}, r.ReadingOrder())
}

func TestRoster_LivingEnemies(t *testing.T) {
	r := newTestRoster(t, at(Goblin, 3, 1), at(Elf, 1, 4), at(Goblin, 1, 2))

	enemies := r.LivingEnemies(Elf)
	require.Len(t, enemies, 2)
	assert.Equal(t, 2, enemies[0].ID, "enemies come back in reading order")
	assert.Equal(t, 0, enemies[1].ID)

	assert.Len(t, r.LivingEnemies(Goblin), 1)
}

func TestRoster_IsAdjacent(t *testing.T) {
	r := newTestRoster(t, at(Elf, 1, 1), at(Goblin, 1, 2), at(Goblin, 2, 2))
	assert.True(t, r.IsAdjacent(0, 1))
	assert.False(t, r.IsAdjacent(0, 2), "diagonal is not adjacent")
	assert.True(t, r.IsAdjacent(1, 2))
	assert.False(t, r.IsAdjacent(0, 99))
}

func TestRoster_AdjacentEnemies(t *testing.T) {
	r := newTestRoster(t, at(Elf, 2, 2), at(Goblin, 3, 2), at(Goblin, 1, 2), at(Elf, 2, 1), at(Goblin, 2, 3))
	adj := r.AdjacentEnemies(0)
	require.Len(t, adj, 3)
	assert.Equal(t, core.NewCoordinate(1, 2), adj[0].Pos)
	assert.Equal(t, core.NewCoordinate(2, 3), adj[1].Pos)
	assert.Equal(t, core.NewCoordinate(3, 2), adj[2].Pos)
}

func TestRoster_Move(t *testing.T) {
	r := newTestRoster(t, at(Elf, 1, 1), at(Goblin, 1, 3))

	require.NoError(t, r.Move(0, core.NewCoordinate(1, 2)))
	assert.False(t, r.Occupied(core.NewCoordinate(1, 1)))
	id, ok := r.At(core.NewCoordinate(1, 2))
	require.True(t, ok)
	assert.Equal(t, 0, id)

	err := r.Move(0, core.NewCoordinate(1, 3))
	assert.ErrorIs(t, err, core.ErrPositionTaken)
	u, _ := r.Get(0)
	assert.Equal(t, core.NewCoordinate(1, 2), u.Pos, "a rejected move leaves the unit in place")

	assert.ErrorIs(t, r.Move(42, core.NewCoordinate(0, 0)), core.ErrUnknownUnit)
}

func TestRoster_DamageRemovesAtZero(t *testing.T) {
	r := newTestRoster(t, at(Elf, 1, 1), at(Goblin, 1, 2))

	hp, killed, err := r.Damage(1, 197)
	require.NoError(t, err)
	assert.False(t, killed)
	assert.Equal(t, 3, hp)

	hp, killed, err = r.Damage(1, 3)
	require.NoError(t, err)
	assert.True(t, killed, "exactly zero hit points kills")
	assert.Equal(t, 0, hp)
	assert.False(t, r.Alive(1))
	assert.False(t, r.Occupied(core.NewCoordinate(1, 2)))

	_, _, err = r.Damage(1, 3)
	assert.ErrorIs(t, err, core.ErrUnknownUnit, "dead units cannot be hit again")
}

func TestRoster_Remove(t *testing.T) {
	r := newTestRoster(t, at(Elf, 1, 1), at(Goblin, 1, 2))
	require.NoError(t, r.Remove(0))
	assert.False(t, r.Alive(0))
	assert.ErrorIs(t, r.Remove(0), core.ErrUnknownUnit)
	assert.Equal(t, 1, r.Len())
}

func TestRoster_FactionCountsAndHP(t *testing.T) {
	r := newTestRoster(t, at(Elf, 1, 1), at(Goblin, 1, 2), at(Goblin, 3, 3))
	elves, goblins := r.FactionCounts()
	assert.Equal(t, 1, elves)
	assert.Equal(t, 2, goblins)
	assert.Equal(t, 600, r.TotalHP())

	_, _, err := r.Damage(2, 50)
	require.NoError(t, err)
	assert.Equal(t, 550, r.TotalHP())
	assert.Equal(t, 2, r.Count(Goblin))
}

func TestRoster_CloneIsIndependent(t *testing.T) {
	r := newTestRoster(t, at(Elf, 1, 1), at(Goblin, 1, 2))
	c := r.Clone()

	require.NoError(t, c.Move(0, core.NewCoordinate(2, 1)))
	_, killed, err := c.Damage(1, 500)
	require.NoError(t, err)
	require.True(t, killed)
	c.SetPower(Elf, 40)

	u, ok := r.Get(0)
	require.True(t, ok)
	assert.Equal(t, core.NewCoordinate(1, 1), u.Pos)
	assert.Equal(t, 3, u.Power)
	assert.True(t, r.Alive(1))
	assert.Equal(t, 1, c.StartCount(Goblin), "start counts survive cloning")
}

func TestRoster_SetPower(t *testing.T) {
	r := newTestRoster(t, at(Elf, 1, 1), at(Goblin, 1, 2), at(Elf, 2, 2))
	r.SetPower(Elf, 9)
	for _, u := range r.Units() {
		if u.Faction == Elf {
			assert.Equal(t, 9, u.Power)
		} else {
			assert.Equal(t, 3, u.Power)
		}
	}
}

func TestParseFaction(t *testing.T) {
	tests := []struct {
		in      string
		want    Faction
		wantErr bool
	}{
		{"elf", Elf, false},
		{"Elves", Elf, false},
		{" E ", Elf, false},
		{"goblin", Goblin, false},
		{"GOBLINS", Goblin, false},
		{"orc", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFaction(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFaction_Helpers(t *testing.T) {
	assert.Equal(t, Goblin, Elf.Enemy())
	assert.Equal(t, Elf, Goblin.Enemy())
	assert.Equal(t, byte('E'), Elf.Marker())
	assert.Equal(t, byte('G'), Goblin.Marker())
	assert.Equal(t, "goblin", Goblin.String())

	f, ok := FactionFromMarker('G')
	assert.True(t, ok)
	assert.Equal(t, Goblin, f)
	_, ok = FactionFromMarker('.')
	assert.False(t, ok)
}
