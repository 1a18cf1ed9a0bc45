package roster

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/skirmish/internal/game/core"
)

// Faction identifies one of the two sides.
type Faction int

const (
	Elf Faction = iota
	Goblin
)

// Factions lists both sides in a stable order.
var Factions = [2]Faction{Elf, Goblin}

func (f Faction) String() string {
	switch f {
	case Elf:
		return "elf"
	case Goblin:
		return "goblin"
	default:
		return fmt.Sprintf("faction(%d)", int(f))
	}
}

// Marker is the map character for the faction.
func (f Faction) Marker() byte {
	if f == Elf {
		return 'E'
	}
	return 'G'
}

// Enemy returns the opposing faction.
func (f Faction) Enemy() Faction {
	if f == Elf {
		return Goblin
	}
	return Elf
}

// ParseFaction accepts "elf"/"elves"/"e" and "goblin"/"goblins"/"g", case-insensitive.
func ParseFaction(s string) (Faction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "elf", "elves", "e":
		return Elf, nil
	case "goblin", "goblins", "g":
		return Goblin, nil
	default:
		return 0, fmt.Errorf("unknown faction %q", s)
	}
}

// FactionFromMarker maps 'E' and 'G' to factions.
func FactionFromMarker(b byte) (Faction, bool) {
	switch b {
	case 'E':
		return Elf, true
	case 'G':
		return Goblin, true
	default:
		return 0, false
	}
}

// Placement is a unit start position read from a map.
type Placement struct {
	Faction Faction
	Pos     core.Coordinate
}

// Unit is one combatant.
type Unit struct {
	ID      int
	Faction Faction
	Pos     core.Coordinate
	HP      int
	Power   int
}

func (u Unit) String() string {
	return fmt.Sprintf("%s %d @ %s, HP=%d", u.Faction, u.ID, u.Pos, u.HP)
}
