package game

import (
	"fmt"

	"github.com/mitchelldurbincs/skirmish/internal/game/roster"
)

// Default battle parameters.
const (
	DefaultHitPoints   = 200
	DefaultAttackPower = 3
	DefaultMaxRounds   = 10000
)

// Rules are the per-battle combat parameters.
type Rules struct {
	HitPoints   int
	ElfPower    int
	GoblinPower int
	MaxRounds   int // completed rounds allowed before the battle is abandoned
}

// DefaultRules returns the standard rules: 200 hit points, attack power 3 for both sides.
func DefaultRules() Rules {
	return Rules{
		HitPoints:   DefaultHitPoints,
		ElfPower:    DefaultAttackPower,
		GoblinPower: DefaultAttackPower,
		MaxRounds:   DefaultMaxRounds,
	}
}

// PowerFor returns the attack power of faction f.
func (r Rules) PowerFor(f roster.Faction) int {
	if f == roster.Elf {
		return r.ElfPower
	}
	return r.GoblinPower
}

// WithPower returns a copy of r with faction f's attack power replaced.
func (r Rules) WithPower(f roster.Faction, power int) Rules {
	if f == roster.Elf {
		r.ElfPower = power
	} else {
		r.GoblinPower = power
	}
	return r
}

// WithBoost returns a copy of r where faction f hits boost points harder than its base power.
func (r Rules) WithBoost(f roster.Faction, boost int) Rules {
	return r.WithPower(f, r.PowerFor(f)+boost)
}

// Validate checks that every parameter is positive.
func (r Rules) Validate() error {
	if r.HitPoints <= 0 {
		return fmt.Errorf("hit points must be positive, got %d", r.HitPoints)
	}
	if r.ElfPower <= 0 || r.GoblinPower <= 0 {
		return fmt.Errorf("attack power must be positive, got elf=%d goblin=%d", r.ElfPower, r.GoblinPower)
	}
	if r.MaxRounds <= 0 {
		return fmt.Errorf("max rounds must be positive, got %d", r.MaxRounds)
	}
	return nil
}
