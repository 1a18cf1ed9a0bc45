package core

// Terrain markers understood by NewGrid.
const (
	MarkerWall = '#'
	MarkerOpen = '.'
)

// Grid holds the static terrain of an arena. It never changes once built.
type Grid struct {
	W, H  int
	walls []bool // length = W*H (row-major)
}

// NewGrid parses rows of '#' and '.' markers into a grid.
func NewGrid(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyGrid
	}
	w := len(rows[0])
	walls := make([]bool, 0, w*len(rows))
	for r, row := range rows {
		if len(row) != w {
			return nil, &TerrainError{Row: r, Col: -1, Err: ErrRaggedRows}
		}
		for c := 0; c < len(row); c++ {
			switch row[c] {
			case MarkerWall:
				walls = append(walls, true)
			case MarkerOpen:
				walls = append(walls, false)
			default:
				return nil, &TerrainError{Row: r, Col: c, Err: ErrUnknownMarker}
			}
		}
	}
	return &Grid{W: w, H: len(rows), walls: walls}, nil
}

// NewGridFromWalls builds a grid from a row-major wall mask. The mask is copied.
func NewGridFromWalls(w, h int, walls []bool) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyGrid
	}
	if len(walls) != w*h {
		return nil, &TerrainError{Row: len(walls) / w, Col: -1, Err: ErrRaggedRows}
	}
	g := &Grid{W: w, H: h, walls: make([]bool, len(walls))}
	copy(g.walls, walls)
	return g, nil
}

func (g *Grid) Idx(c Coordinate) int  { return c.ToIndex(g.W) }
func (g *Grid) At(idx int) Coordinate { return FromIndex(idx, g.W) }
func (g *Grid) Size() int             { return g.W * g.H }

// InBounds checks if the coordinate lies inside the grid
func (g *Grid) InBounds(c Coordinate) bool {
	return c.IsValid(g.W, g.H)
}

// IsWall reports whether c is a wall. Out-of-bounds positions count as walls.
func (g *Grid) IsWall(c Coordinate) bool {
	if !g.InBounds(c) {
		return true
	}
	return g.walls[g.Idx(c)]
}

// IsOpen is true only for in-bounds floor cells.
func (g *Grid) IsOpen(c Coordinate) bool {
	return !g.IsWall(c)
}

// Neighbors returns the in-bounds orthogonal neighbours of c in reading order.
func (g *Grid) Neighbors(c Coordinate) []Coordinate {
	out := make([]Coordinate, 0, 4)
	for _, n := range c.Neighbors() {
		if g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// Cells calls fn for every cell in reading order until fn returns false.
func (g *Grid) Cells(fn func(c Coordinate, open bool) bool) {
	for i, wall := range g.walls {
		if !fn(g.At(i), !wall) {
			return
		}
	}
}

// Rows renders the terrain back into '#'/'.' rows.
func (g *Grid) Rows() []string {
	rows := make([]string, g.H)
	buf := make([]byte, g.W)
	for r := 0; r < g.H; r++ {
		for c := 0; c < g.W; c++ {
			if g.walls[r*g.W+c] {
				buf[c] = MarkerWall
			} else {
				buf[c] = MarkerOpen
			}
		}
		rows[r] = string(buf)
	}
	return rows
}
