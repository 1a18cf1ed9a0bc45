package game

import (
	"github.com/mitchelldurbincs/skirmish/internal/game/roster"
)

// Outcome summarises a battle. Score is Rounds * TotalHP.
type Outcome struct {
	BattleID     string
	Rounds       int
	TotalHP      int
	Score        int
	Winner       roster.Faction
	HasWinner    bool
	Finished     bool
	Elves        int
	Goblins      int
	StartElves   int
	StartGoblins int
	Casualties   int
}

// Survivors returns the number of living units of faction f.
func (o Outcome) Survivors(f roster.Faction) int {
	if f == roster.Elf {
		return o.Elves
	}
	return o.Goblins
}

// Losses returns how many units of faction f died.
func (o Outcome) Losses(f roster.Faction) int {
	if f == roster.Elf {
		return o.StartElves - o.Elves
	}
	return o.StartGoblins - o.Goblins
}

// Flawless reports whether faction f won without losing a single unit.
func (o Outcome) Flawless(f roster.Faction) bool {
	return o.Finished && o.HasWinner && o.Winner == f && o.Losses(f) == 0
}

// WinnerName returns "elf", "goblin" or "none".
func (o Outcome) WinnerName() string {
	if !o.HasWinner {
		return "none"
	}
	return o.Winner.String()
}

// Outcome reports the battle state so far. Score is only meaningful once the battle is over.
func (e *Engine) Outcome() Outcome {
	elves, goblins := e.units.FactionCounts()
	startElves, startGoblins := e.units.StartCount(roster.Elf), e.units.StartCount(roster.Goblin)
	total := e.units.TotalHP()
	return Outcome{
		BattleID:     e.battleID,
		Rounds:       e.rounds,
		TotalHP:      total,
		Score:        e.rounds * total,
		Winner:       e.winner,
		HasWinner:    e.hasWinner,
		Finished:     e.gameOver,
		Elves:        elves,
		Goblins:      goblins,
		StartElves:   startElves,
		StartGoblins: startGoblins,
		Casualties:   (startElves - elves) + (startGoblins - goblins),
	}
}
