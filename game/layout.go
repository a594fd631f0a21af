package game

import (
	"errors"
	"fmt"
)

var ErrEmptyLayout = errors.New("layout has no rows")

// Layout is a parsed maze in the host's text format.
type Layout struct {
	Width    int
	Height   int
	Walls    *Grid
	Food     *Grid
	Capsules []Position
	Spawns   map[int]Position // agent index -> start cell
}

// ParseLayout reads rows top to bottom: '%' wall, '.' food, 'o' capsule,
// '1'-'4' agent spawns. Every other character is an open cell.
func ParseLayout(rows []string) (*Layout, error) {
	// Trailing empty lines are common in layout files. A row of spaces is
	// a row of open cells and is kept.
	for len(rows) > 0 && rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}
	if len(rows) == 0 {
		return nil, ErrEmptyLayout
	}

	height := len(rows)
	width := len(rows[0])
	l := &Layout{
		Width:  width,
		Height: height,
		Walls:  NewGrid(width, height),
		Food:   NewGrid(width, height),
		Spawns: make(map[int]Position),
	}

	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("layout row %d has width %d, expected %d", i, len(row), width)
		}
		y := height - 1 - i
		for x, c := range row {
			p := Position{X: x, Y: y}
			switch {
			case c == '%':
				l.Walls.Set(p, true)
			case c == '.':
				l.Food.Set(p, true)
			case c == 'o':
				l.Capsules = append(l.Capsules, p)
			case c >= '1' && c <= '4':
				l.Spawns[int(c-'1')] = p
			}
		}
	}
	return l, nil
}
