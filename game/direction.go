package game

import "fmt"

// Direction is one move an agent can make in a turn.
type Direction string

const (
	North Direction = "North"
	South Direction = "South"
	East  Direction = "East"
	West  Direction = "West"
	Stop  Direction = "Stop"
)

// Directions lists every move in the order the host enumerates them.
var Directions = []Direction{North, South, East, West, Stop}

// ParseDirection converts a wire name back into a Direction.
func ParseDirection(s string) (Direction, error) {
	for _, d := range Directions {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown direction %q", s)
}

// Vector returns the (dx, dy) step of a move. North increases y.
func (d Direction) Vector() (dx, dy int) {
	switch d {
	case North:
		return 0, 1
	case South:
		return 0, -1
	case East:
		return 1, 0
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

func (d Direction) Reverse() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return d
	}
}
