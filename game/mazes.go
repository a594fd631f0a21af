package game

import (
	"encoding/binary"
	"encoding/hex"
	"sync"

	"github.com/zeebo/blake3"
)

// MazeKey identifies a wall layout independently of the food and agents
// placed on it.
type MazeKey [32]byte

func (k MazeKey) String() string {
	return hex.EncodeToString(k[:8])
}

// Fingerprint hashes the grid's size and cells.
func (g *Grid) Fingerprint() MazeKey {
	buf := make([]byte, 8, 8+g.Width*g.Height)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(g.Width))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(g.Height))
	for x := range g.cells {
		for _, v := range g.cells[x] {
			if v {
				buf = append(buf, 1)
			} else {
				buf = append(buf, 0)
			}
		}
	}
	return blake3.Sum256(buf)
}

// Mazes shares one MazeDistancer per distinct wall layout, so that every
// state of a match (and every match on the same maze) reuses the same
// distance table. Distancers are held on behalf of owners and dropped once
// the last owner releases them.
type Mazes struct {
	mu      sync.Mutex
	entries map[MazeKey]*mazeEntry
	owned   map[string][]MazeKey
}

type mazeEntry struct {
	distancer *MazeDistancer
	owners    map[string]struct{}
}

func NewMazes() *Mazes {
	return &Mazes{
		entries: make(map[MazeKey]*mazeEntry),
		owned:   make(map[string][]MazeKey),
	}
}

// Acquire returns the shared distancer for walls on behalf of owner,
// creating it on first use.
func (m *Mazes) Acquire(owner string, walls *Grid) *MazeDistancer {
	key := walls.Fingerprint()

	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		e = &mazeEntry{distancer: NewMazeDistancer(walls), owners: make(map[string]struct{})}
		m.entries[key] = e
	}
	if _, held := e.owners[owner]; !held {
		e.owners[owner] = struct{}{}
		m.owned[owner] = append(m.owned[owner], key)
	}
	return e.distancer
}

// Release gives up everything owner acquired. Distancers nobody holds any
// more are dropped.
func (m *Mazes) Release(owner string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range m.owned[owner] {
		e := m.entries[key]
		delete(e.owners, owner)
		if len(e.owners) == 0 {
			delete(m.entries, key)
		}
	}
	delete(m.owned, owner)
}

func (m *Mazes) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.entries)
}
