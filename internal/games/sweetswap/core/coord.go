package core

import "fmt"

// Coord is a position on the board.
// X increases to the right, Y increases downward; row 0 is the top row.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Manhattan returns the Manhattan distance to another coordinate.
func (c Coord) Manhattan(other Coord) int {
	return abs(c.X-other.X) + abs(c.Y-other.Y)
}

// Adjacent reports whether two coordinates share an edge.
func (c Coord) Adjacent(other Coord) bool {
	return c.Manhattan(other) == 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
