package game

import "sync"

// MazeDistancer computes breadth-first distances over a wall grid. Rows
// of the distance table are filled lazily, one per source cell, and
// shared between callers.
type MazeDistancer struct {
	walls *Grid

	mu    sync.Mutex
	table map[Position][]int
}

func NewMazeDistancer(walls *Grid) *MazeDistancer {
	return &MazeDistancer{
		walls: walls,
		table: make(map[Position][]int),
	}
}

func (d *MazeDistancer) MazeDistance(a, b Position) int {
	if a == b {
		return 0
	}
	if d.walls.At(a) || d.walls.At(b) {
		return Unreachable
	}
	row := d.from(a)
	return row[b.X*d.walls.Height+b.Y]
}

func (d *MazeDistancer) from(src Position) []int {
	d.mu.Lock()
	defer d.mu.Unlock()

	if row, ok := d.table[src]; ok {
		return row
	}

	h := d.walls.Height
	row := make([]int, d.walls.Width*h)
	for i := range row {
		row[i] = Unreachable
	}
	row[src.X*h+src.Y] = 0

	queue := []Position{src}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		next := row[p.X*h+p.Y] + 1
		for _, dir := range Directions[:4] {
			n := p.Add(dir)
			if d.walls.At(n) || row[n.X*h+n.Y] != Unreachable {
				continue
			}
			row[n.X*h+n.Y] = next
			queue = append(queue, n)
		}
	}

	d.table[src] = row
	return row
}
