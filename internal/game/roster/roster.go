// Package roster owns the living units of a battle.
package roster

import (
	"sort"

	"github.com/mitchelldurbincs/skirmish/internal/game/core"
)

// Roster is the set of living units, indexed by id and by position. No two units share a
// position; a removed unit is gone for good.
type Roster struct {
	units map[int]*Unit
	byPos map[core.Coordinate]int
	start [2]int
	next  int
}

// New builds a roster from placements. Ids follow placement order starting at 0. Every unit
// starts with hitPoints and the power reported for its faction.
func New(placements []Placement, hitPoints int, powerFor func(Faction) int) (*Roster, error) {
	r := &Roster{
		units: make(map[int]*Unit, len(placements)),
		byPos: make(map[core.Coordinate]int, len(placements)),
	}
	for _, p := range placements {
		if _, taken := r.byPos[p.Pos]; taken {
			return nil, core.WrapUnitError(r.next, "place at "+p.Pos.String(), core.ErrPositionTaken)
		}
		u := &Unit{ID: r.next, Faction: p.Faction, Pos: p.Pos, HP: hitPoints, Power: powerFor(p.Faction)}
		r.units[u.ID] = u
		r.byPos[u.Pos] = u.ID
		r.start[p.Faction]++
		r.next++
	}
	return r, nil
}

// Clone returns an independent copy.
func (r *Roster) Clone() *Roster {
	c := &Roster{
		units: make(map[int]*Unit, len(r.units)),
		byPos: make(map[core.Coordinate]int, len(r.byPos)),
		start: r.start,
		next:  r.next,
	}
	for id, u := range r.units {
		cp := *u
		c.units[id] = &cp
	}
	for pos, id := range r.byPos {
		c.byPos[pos] = id
	}
	return c
}

// Len is the number of living units.
func (r *Roster) Len() int { return len(r.units) }

// Get returns a copy of a living unit.
func (r *Roster) Get(id int) (Unit, bool) {
	u, ok := r.units[id]
	if !ok {
		return Unit{}, false
	}
	return *u, true
}

// Alive reports whether the unit is still in the roster.
func (r *Roster) Alive(id int) bool {
	_, ok := r.units[id]
	return ok
}

// At returns the id of the unit standing on pos.
func (r *Roster) At(pos core.Coordinate) (int, bool) {
	id, ok := r.byPos[pos]
	return id, ok
}

// Occupied reports whether a living unit stands on pos.
func (r *Roster) Occupied(pos core.Coordinate) bool {
	_, ok := r.byPos[pos]
	return ok
}

// Units returns copies of all living units in reading order of their positions.
func (r *Roster) Units() []Unit {
	out := make([]Unit, 0, len(r.units))
	for _, u := range r.units {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Pos.Less(out[j].Pos) })
	return out
}

// ReadingOrder returns the ids of all living units sorted by reading order of their current
// positions.
func (r *Roster) ReadingOrder() []int {
	units := r.Units()
	ids := make([]int, len(units))
	for i, u := range units {
		ids[i] = u.ID
	}
	return ids
}

// LivingEnemies returns the living units not in faction f, in reading order.
func (r *Roster) LivingEnemies(f Faction) []Unit {
	all := r.Units()
	out := all[:0]
	for _, u := range all {
		if u.Faction != f {
			out = append(out, u)
		}
	}
	return out
}

// IsAdjacent reports whether two living units stand orthogonally next to each other.
func (r *Roster) IsAdjacent(a, b int) bool {
	ua, ok := r.units[a]
	if !ok {
		return false
	}
	ub, ok := r.units[b]
	if !ok {
		return false
	}
	return ua.Pos.IsAdjacentTo(ub.Pos)
}

// AdjacentEnemies returns the living enemies of unit id standing next to it, in reading order.
func (r *Roster) AdjacentEnemies(id int) []Unit {
	u, ok := r.units[id]
	if !ok {
		return nil
	}
	var out []Unit
	for _, n := range u.Pos.Neighbors() {
		other, ok := r.byPos[n]
		if !ok {
			continue
		}
		if e := r.units[other]; e.Faction != u.Faction {
			out = append(out, *e)
		}
	}
	return out
}

// Move relocates a living unit. The target must be free.
func (r *Roster) Move(id int, to core.Coordinate) error {
	u, ok := r.units[id]
	if !ok {
		return core.WrapUnitError(id, "move", core.ErrUnknownUnit)
	}
	if other, taken := r.byPos[to]; taken && other != id {
		return core.WrapUnitError(id, "move to "+to.String(), core.ErrPositionTaken)
	}
	delete(r.byPos, u.Pos)
	u.Pos = to
	r.byPos[to] = id
	return nil
}

// Damage subtracts amount from the unit's hit points and removes it once they reach zero.
// killed reports the removal.
func (r *Roster) Damage(id, amount int) (remaining int, killed bool, err error) {
	u, ok := r.units[id]
	if !ok {
		return 0, false, core.WrapUnitError(id, "damage", core.ErrUnknownUnit)
	}
	u.HP -= amount
	if u.HP <= 0 {
		r.remove(u)
		return u.HP, true, nil
	}
	return u.HP, false, nil
}

// Remove takes a unit out of the roster immediately.
func (r *Roster) Remove(id int) error {
	u, ok := r.units[id]
	if !ok {
		return core.WrapUnitError(id, "remove", core.ErrUnknownUnit)
	}
	r.remove(u)
	return nil
}

func (r *Roster) remove(u *Unit) {
	delete(r.byPos, u.Pos)
	delete(r.units, u.ID)
}

// SetPower overrides the attack power of every living unit of faction f.
func (r *Roster) SetPower(f Faction, power int) {
	for _, u := range r.units {
		if u.Faction == f {
			u.Power = power
		}
	}
}

// FactionCounts returns the number of living elves and goblins.
func (r *Roster) FactionCounts() (elves, goblins int) {
	for _, u := range r.units {
		if u.Faction == Elf {
			elves++
		} else {
			goblins++
		}
	}
	return elves, goblins
}

// Count returns the number of living units of faction f.
func (r *Roster) Count(f Faction) int {
	elves, goblins := r.FactionCounts()
	if f == Elf {
		return elves
	}
	return goblins
}

// StartCount returns how many units of faction f the roster was built with.
func (r *Roster) StartCount(f Faction) int { return r.start[f] }

// TotalHP sums the hit points of all living units.
func (r *Roster) TotalHP() int {
	total := 0
	for _, u := range r.units {
		total += u.HP
	}
	return total
}
