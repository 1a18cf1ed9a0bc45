package rules

import "github.com/mitchelldurbincs/skirmish/internal/game/roster"

// SelectTarget picks the defender among adjacent enemies: fewest hit points first, then the
// earliest position in reading order. ok is false when the list is empty.
func SelectTarget(adjacent []roster.Unit) (roster.Unit, bool) {
	if len(adjacent) == 0 {
		return roster.Unit{}, false
	}
	best := adjacent[0]
	for _, u := range adjacent[1:] {
		if u.HP < best.HP || (u.HP == best.HP && u.Pos.Less(best.Pos)) {
			best = u
		}
	}
	return best, true
}
