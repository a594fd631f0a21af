package game

import "fmt"

// Position is a grid cell. (0,0) is the bottom-left corner.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the cell reached by taking one step in direction d.
func (p Position) Add(d Direction) Position {
	dx, dy := d.Vector()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}
