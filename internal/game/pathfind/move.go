package pathfind

import "github.com/mitchelldurbincs/skirmish/internal/game/core"

// Move is the outcome of move selection for one unit.
type Move struct {
	Dest     core.Coordinate // chosen in-range square
	Step     core.Coordinate // square the unit moves onto this turn
	Distance int             // steps from the unit to Dest
}

// InRange lists the open, unoccupied squares orthogonally adjacent to any of the targets,
// in reading order and without duplicates. The square at self counts as free.
func InRange(g *core.Grid, blocked Occupancy, self core.Coordinate, targets []core.Coordinate) []core.Coordinate {
	if blocked == nil {
		blocked = Free
	}
	free := except{Occupancy: blocked, free: self}
	seen := make(map[core.Coordinate]struct{}, len(targets)*4)
	out := make([]core.Coordinate, 0, len(targets)*4)
	for _, t := range targets {
		for _, n := range t.Neighbors() {
			if !g.IsOpen(n) || free.Occupied(n) {
				continue
			}
			if _, dup := seen[n]; dup {
				continue
			}
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}
	core.SortReadingOrder(out)
	return out
}

// ChooseDestination picks the candidate nearest to from, breaking ties by reading order of
// the candidate square. ok is false when no candidate is reachable.
func ChooseDestination(g *core.Grid, blocked Occupancy, from core.Coordinate, candidates []core.Coordinate) (dest core.Coordinate, dist int, ok bool) {
	field := DistanceField(g, blocked, from)
	best := Unreachable
	for _, c := range candidates {
		if !g.InBounds(c) {
			continue
		}
		d := field[g.Idx(c)]
		if d == Unreachable {
			continue
		}
		if best == Unreachable || d < best || (d == best && c.Less(dest)) {
			best, dest = d, c
		}
	}
	if best == Unreachable {
		return core.Coordinate{}, 0, false
	}
	return dest, best, true
}

// ChooseStep searches from dest back towards from and returns the neighbour of from that lies
// on a shortest path to dest, first in reading order. ok is false when from == dest or dest
// cannot be reached.
func ChooseStep(g *core.Grid, blocked Occupancy, from, dest core.Coordinate) (core.Coordinate, bool) {
	if from == dest {
		return core.Coordinate{}, false
	}
	field := DistanceField(g, blocked, dest)
	best := Unreachable
	var step core.Coordinate
	// neighbours arrive in reading order, so strict < keeps the earliest on ties
	for _, n := range from.Neighbors() {
		if !g.InBounds(n) {
			continue
		}
		d := field[g.Idx(n)]
		if d == Unreachable {
			continue
		}
		if best == Unreachable || d < best {
			best, step = d, n
		}
	}
	if best == Unreachable {
		return core.Coordinate{}, false
	}
	return step, true
}

// NextMove runs move selection for a unit at from against the given enemy positions: choose
// the nearest in-range square first, then the first step towards it. ok is false when no
// in-range square is reachable.
func NextMove(g *core.Grid, blocked Occupancy, from core.Coordinate, enemies []core.Coordinate) (Move, bool) {
	candidates := InRange(g, blocked, from, enemies)
	if len(candidates) == 0 {
		return Move{}, false
	}
	dest, dist, ok := ChooseDestination(g, blocked, from, candidates)
	if !ok {
		return Move{}, false
	}
	if dist == 0 {
		return Move{Dest: dest, Step: from, Distance: 0}, true
	}
	step, ok := ChooseStep(g, blocked, from, dest)
	if !ok {
		return Move{}, false
	}
	return Move{Dest: dest, Step: step, Distance: dist}, true
}
