package core

import "fmt"

// Coordinate represents a position on the arena. Row grows downwards, Col grows to the right.
type Coordinate struct {
	Row, Col int
}

// NewCoordinate creates a new coordinate with the given row and column
func NewCoordinate(row, col int) Coordinate {
	return Coordinate{Row: row, Col: col}
}

// FromIndex creates a coordinate from a grid array index using row-major ordering
func FromIndex(idx, width int) Coordinate {
	return Coordinate{
		Row: idx / width,
		Col: idx % width,
	}
}

// IsValid checks if the coordinate is within the given bounds
func (c Coordinate) IsValid(width, height int) bool {
	return c.Col >= 0 && c.Col < width && c.Row >= 0 && c.Row < height
}

// ToIndex converts the coordinate to a grid array index using row-major ordering
func (c Coordinate) ToIndex(width int) int {
	return c.Row*width + c.Col
}

// Less reports whether c comes before other in reading order (top to bottom, then left to right).
func (c Coordinate) Less(other Coordinate) bool {
	if c.Row != other.Row {
		return c.Row < other.Row
	}
	return c.Col < other.Col
}

// DistanceTo calculates the Manhattan distance to another coordinate
func (c Coordinate) DistanceTo(other Coordinate) int {
	dr := c.Row - other.Row
	dc := c.Col - other.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// IsAdjacentTo checks if this coordinate is orthogonally adjacent to another
func (c Coordinate) IsAdjacentTo(other Coordinate) bool {
	return c.DistanceTo(other) == 1
}

// Neighbors returns the four orthogonal neighbors of this coordinate in reading order
func (c Coordinate) Neighbors() [4]Coordinate {
	return [4]Coordinate{
		{Row: c.Row - 1, Col: c.Col}, // North
		{Row: c.Row, Col: c.Col - 1}, // West
		{Row: c.Row, Col: c.Col + 1}, // East
		{Row: c.Row + 1, Col: c.Col}, // South
	}
}

// Add returns a new coordinate that is the sum of this coordinate and another
func (c Coordinate) Add(other Coordinate) Coordinate {
	return Coordinate{Row: c.Row + other.Row, Col: c.Col + other.Col}
}

// String returns a string representation of the coordinate
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// SortReadingOrder sorts coordinates in place by reading order.
func SortReadingOrder(cs []Coordinate) {
	// insertion sort: callers pass at most a few dozen squares
	for i := 1; i < len(cs); i++ {
		for j := i; j > 0 && cs[j].Less(cs[j-1]); j-- {
			cs[j], cs[j-1] = cs[j-1], cs[j]
		}
	}
}
