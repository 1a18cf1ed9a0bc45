package mapgen

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/skirmish/internal/game/core"
	"github.com/mitchelldurbincs/skirmish/internal/game/roster"
)

// Arena is the immutable template of a battle: terrain plus unit start positions in
// reading order. Engines copy what they need, so one Arena can seed any number of battles.
type Arena struct {
	Grid       *core.Grid
	Placements []roster.Placement
}

// NewArena checks that every placement is an open, distinct square.
func NewArena(grid *core.Grid, placements []roster.Placement) (*Arena, error) {
	if grid == nil {
		return nil, core.ErrEmptyGrid
	}
	seen := make(map[core.Coordinate]struct{}, len(placements))
	for _, p := range placements {
		if !grid.InBounds(p.Pos) {
			return nil, &core.TerrainError{Row: p.Pos.Row, Col: p.Pos.Col, Err: core.ErrOutOfBounds}
		}
		if grid.IsWall(p.Pos) {
			return nil, &core.TerrainError{Row: p.Pos.Row, Col: p.Pos.Col, Err: core.ErrStartOnWall}
		}
		if _, dup := seen[p.Pos]; dup {
			return nil, &core.TerrainError{Row: p.Pos.Row, Col: p.Pos.Col, Err: core.ErrPositionTaken}
		}
		seen[p.Pos] = struct{}{}
	}
	sorted := make([]roster.Placement, len(placements))
	copy(sorted, placements)
	sortPlacements(sorted)
	return &Arena{Grid: grid, Placements: sorted}, nil
}

// ParseArena reads the text map format: '#' wall, '.' open, 'E' elf, 'G' goblin.
// Blank lines before and after the map are ignored.
func ParseArena(text string) (*Arena, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return ParseArenaLines(strings.Split(text, "\n"))
}

// ParseArenaLines is ParseArena over pre-split rows.
func ParseArenaLines(lines []string) (*Arena, error) {
	lines = trimBlank(lines)
	if len(lines) == 0 {
		return nil, core.ErrEmptyGrid
	}

	terrain := make([]string, len(lines))
	var placements []roster.Placement
	for r, line := range lines {
		row := []byte(line)
		for c, b := range row {
			if f, ok := roster.FactionFromMarker(b); ok {
				placements = append(placements, roster.Placement{Faction: f, Pos: core.NewCoordinate(r, c)})
				row[c] = core.MarkerOpen
			}
		}
		terrain[r] = string(row)
	}

	grid, err := core.NewGrid(terrain)
	if err != nil {
		return nil, fmt.Errorf("parse arena: %w", err)
	}
	return NewArena(grid, placements)
}

// Count returns how many units of the faction start in the arena.
func (a *Arena) Count(f roster.Faction) int {
	n := 0
	for _, p := range a.Placements {
		if p.Faction == f {
			n++
		}
	}
	return n
}

// Lines renders the arena back to the text map format.
func (a *Arena) Lines() []string {
	rows := a.Grid.Rows()
	cells := make([][]byte, len(rows))
	for i, row := range rows {
		cells[i] = []byte(row)
	}
	for _, p := range a.Placements {
		cells[p.Pos.Row][p.Pos.Col] = p.Faction.Marker()
	}
	out := make([]string, len(cells))
	for i, b := range cells {
		out[i] = string(b)
	}
	return out
}

func (a *Arena) String() string {
	return strings.Join(a.Lines(), "\n")
}

func trimBlank(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	out := make([]string, 0, end-start)
	for _, l := range lines[start:end] {
		out = append(out, strings.TrimRight(l, " \t\r"))
	}
	return out
}

func sortPlacements(ps []roster.Placement) {
	for i := 1; i < len(ps); i++ {
		for j := i; j > 0 && ps[j].Pos.Less(ps[j-1].Pos); j-- {
			ps[j], ps[j-1] = ps[j-1], ps[j]
		}
	}
}
