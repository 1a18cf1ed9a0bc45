// Package pathfind implements the obstacle-aware breadth-first searches used to move units.
//
// All searches use uniform step cost over orthogonal moves. Squares are impassable when they
// are walls or reported occupied by an Occupancy, except for the search origin.
package pathfind

import "github.com/mitchelldurbincs/skirmish/internal/game/core"

// Unreachable marks squares a distance field could not reach.
const Unreachable = -1

// Occupancy reports squares held by living units.
type Occupancy interface {
	Occupied(c core.Coordinate) bool
}

// OccupancyFunc adapts a function to Occupancy.
type OccupancyFunc func(c core.Coordinate) bool

func (f OccupancyFunc) Occupied(c core.Coordinate) bool { return f(c) }

// Free is an Occupancy with no units on it.
var Free Occupancy = OccupancyFunc(func(core.Coordinate) bool { return false })

// except treats one extra square as free.
type except struct {
	Occupancy
	free core.Coordinate
}

func (e except) Occupied(c core.Coordinate) bool {
	return c != e.free && e.Occupancy.Occupied(c)
}

// DistanceField returns the step distance from origin to every square of g, indexed by
// g.Idx. Unreached squares hold Unreachable.
func DistanceField(g *core.Grid, blocked Occupancy, origin core.Coordinate) []int {
	dist := make([]int, g.Size())
	for i := range dist {
		dist[i] = Unreachable
	}
	if !g.InBounds(origin) {
		return dist
	}
	if blocked == nil {
		blocked = Free
	}

	dist[g.Idx(origin)] = 0
	queue := make([]core.Coordinate, 0, 64)
	queue = append(queue, origin)
	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		next := dist[g.Idx(cur)] + 1
		for _, n := range cur.Neighbors() {
			if !g.IsOpen(n) || blocked.Occupied(n) {
				continue
			}
			idx := g.Idx(n)
			if dist[idx] != Unreachable {
				continue
			}
			dist[idx] = next
			queue = append(queue, n)
		}
	}
	return dist
}

// ShortestDistance returns the fewest orthogonal steps from -> to. Occupied squares other than
// the two endpoints are impassable.
func ShortestDistance(g *core.Grid, blocked Occupancy, from, to core.Coordinate) (int, bool) {
	if !g.IsOpen(to) || !g.InBounds(from) {
		return 0, false
	}
	if blocked == nil {
		blocked = Free
	}
	field := DistanceField(g, except{Occupancy: blocked, free: to}, from)
	d := field[g.Idx(to)]
	if d == Unreachable {
		return 0, false
	}
	return d, true
}
