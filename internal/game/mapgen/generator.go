package mapgen

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/mitchelldurbincs/skirmish/internal/game/core"
	"github.com/mitchelldurbincs/skirmish/internal/game/pathfind"
	"github.com/mitchelldurbincs/skirmish/internal/game/roster"
)

// ErrArenaTooSmall is returned when the generated floor cannot hold every unit.
var ErrArenaTooSmall = errors.New("not enough connected floor for the requested units")

// ArenaConfig holds configuration for arena generation
type ArenaConfig struct {
	Width     int
	Height    int
	Elves     int
	Goblins   int
	WallRatio int // 1 interior wall per N cells, 0 for none
	MaxTries  int // attempts before giving up on an unlucky layout
}

// DefaultArenaConfig returns a sensible default configuration
func DefaultArenaConfig(w, h, elves, goblins int) ArenaConfig {
	return ArenaConfig{
		Width:     w,
		Height:    h,
		Elves:     elves,
		Goblins:   goblins,
		WallRatio: 6,
		MaxTries:  20,
	}
}

// Validate rejects configurations that can never produce an arena.
func (c ArenaConfig) Validate() error {
	if c.Width < 3 || c.Height < 3 {
		return fmt.Errorf("arena must be at least 3x3, got %dx%d", c.Width, c.Height)
	}
	if c.Elves < 0 || c.Goblins < 0 {
		return fmt.Errorf("unit counts must not be negative")
	}
	if c.WallRatio < 0 {
		return fmt.Errorf("wall ratio must not be negative, got %d", c.WallRatio)
	}
	interior := (c.Width - 2) * (c.Height - 2)
	if c.Elves+c.Goblins > interior {
		return fmt.Errorf("%d units do not fit in %d interior cells: %w", c.Elves+c.Goblins, interior, ErrArenaTooSmall)
	}
	return nil
}

// Generator handles arena generation with deterministic RNG
type Generator struct {
	config ArenaConfig
	rng    *rand.Rand
}

// NewGenerator creates a new arena generator
func NewGenerator(config ArenaConfig, rng *rand.Rand) *Generator {
	return &Generator{
		config: config,
		rng:    rng,
	}
}

// Generate builds a walled arena and places every unit on its largest connected floor
// region, so that each unit can reach every other one.
func (g *Generator) Generate() (*Arena, error) {
	if err := g.config.Validate(); err != nil {
		return nil, err
	}

	tries := g.config.MaxTries
	if tries < 1 {
		tries = 1
	}
	for attempt := 0; attempt < tries; attempt++ {
		grid, err := g.placeWalls()
		if err != nil {
			return nil, err
		}
		region := largestRegion(grid)
		if len(region) < g.config.Elves+g.config.Goblins {
			continue
		}
		return NewArena(grid, g.placeUnits(region))
	}
	return nil, ErrArenaTooSmall
}

func (g *Generator) placeWalls() (*core.Grid, error) {
	w, h := g.config.Width, g.config.Height
	walls := make([]bool, w*h)
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			border := r == 0 || c == 0 || r == h-1 || c == w-1
			walls[r*w+c] = border
		}
	}

	if g.config.WallRatio > 0 {
		want := ((w - 2) * (h - 2)) / g.config.WallRatio
		maxAttempts := want * 10
		for placed, attempts := 0, 0; placed < want && attempts < maxAttempts; attempts++ {
			idx := (1+g.rng.Intn(h-2))*w + 1 + g.rng.Intn(w-2)
			if !walls[idx] {
				walls[idx] = true
				placed++
			}
		}
	}
	return core.NewGridFromWalls(w, h, walls)
}

// placeUnits picks distinct squares from region; elves first, then goblins.
func (g *Generator) placeUnits(region []core.Coordinate) []roster.Placement {
	picks := g.rng.Perm(len(region))
	total := g.config.Elves + g.config.Goblins
	placements := make([]roster.Placement, 0, total)
	for i := 0; i < total; i++ {
		f := roster.Elf
		if i >= g.config.Elves {
			f = roster.Goblin
		}
		placements = append(placements, roster.Placement{Faction: f, Pos: region[picks[i]]})
	}
	return placements
}

// largestRegion returns the open squares of the biggest orthogonally connected floor area,
// in reading order.
func largestRegion(grid *core.Grid) []core.Coordinate {
	seen := make([]bool, grid.Size())
	var best []core.Coordinate
	grid.Cells(func(c core.Coordinate, open bool) bool {
		if !open || seen[grid.Idx(c)] {
			return true
		}
		field := pathfind.DistanceField(grid, pathfind.Free, c)
		var region []core.Coordinate
		for idx, d := range field {
			if d == pathfind.Unreachable {
				continue
			}
			seen[idx] = true
			region = append(region, grid.At(idx))
		}
		if len(region) > len(best) {
			best = region
		}
		return true
	})
	return best
}
