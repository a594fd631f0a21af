package agent

import (
	"errors"
	"fmt"

	"capture/game"
)

var ErrWalledColumn = errors.New("waypoint column has no open cell")

// WaypointFunc picks an agent's raw patrol point for a maze of the given
// size. The result is passed through ImproveWaypoint before use.
type WaypointFunc func(width, height int, red bool) game.Position

// CenterWaypoint sits just inside the home side of the center line.
func CenterWaypoint(width, height int, red bool) game.Position {
	x, y := width/2, height/2
	if red {
		x--
	} else {
		y--
	}
	return game.Position{X: x, Y: y}
}

// ForagerWaypoint is the center point shifted vertically, so that a
// retreating forager and the defender do not share a rally point.
func ForagerWaypoint(width, height int, red bool) game.Position {
	x, y := width/2, height/2
	if red {
		x--
		y -= 4
	} else {
		y += 3
	}
	return game.Position{X: x, Y: y}
}

// ImproveWaypoint wraps p into the maze and walks up its column, wrapping
// at the top, until it finds an open cell.
func ImproveWaypoint(p game.Position, walls *game.Grid) (game.Position, error) {
	width, height := walls.Width, walls.Height
	if width <= 0 || height <= 0 {
		return p, fmt.Errorf("cannot place waypoint in a %dx%d maze", width, height)
	}

	if p.X < 0 {
		p.X += width
	}
	if p.Y < 0 {
		p.Y += height
	}
	p.X = mod(p.X, width)
	p.Y = mod(p.Y, height)

	// TODO: fall back to a neighbouring column instead of failing once the
	// patrol behaviour for that case is decided
	for n := 0; n < height; n++ {
		if !walls.At(p) {
			return p, nil
		}
		p.Y = (p.Y + 1) % height
	}
	return p, fmt.Errorf("%w: x=%d", ErrWalledColumn, p.X)
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}
