package game

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/skirmish/internal/game/core"
)

// Render draws the arena with unit markers. Each row is followed by the hit points of the
// units standing on it, in reading order, e.g. "#G.E#   G(200), E(197)".
func (e *Engine) Render() string {
	units := e.units.Units()

	var sb strings.Builder
	sb.Grow((e.grid.W + 24) * e.grid.H)

	next := 0
	for r := 0; r < e.grid.H; r++ {
		row := make([]byte, e.grid.W)
		for c := 0; c < e.grid.W; c++ {
			if e.grid.IsWall(core.NewCoordinate(r, c)) {
				row[c] = core.MarkerWall
			} else {
				row[c] = core.MarkerOpen
			}
		}

		var labels []string
		for ; next < len(units) && units[next].Pos.Row == r; next++ {
			u := units[next]
			row[u.Pos.Col] = u.Faction.Marker()
			labels = append(labels, fmt.Sprintf("%c(%d)", u.Faction.Marker(), u.HP))
		}

		sb.Write(row)
		if len(labels) > 0 {
			sb.WriteString("   ")
			sb.WriteString(strings.Join(labels, ", "))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Layout returns the arena rows with unit markers only.
func (e *Engine) Layout() []string {
	lines := strings.Split(strings.TrimRight(e.Render(), "\n"), "\n")
	for i, l := range lines {
		if cut := strings.Index(l, " "); cut >= 0 {
			lines[i] = l[:cut]
		}
	}
	return lines
}
