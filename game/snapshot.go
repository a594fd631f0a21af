package game

import (
	"encoding/json"
	"fmt"
)

// Snapshot is a State decoded from the wire. It carries enough of the
// host's state for agents to decide a move: the maze, every agent's
// observation and the remaining food.
type Snapshot struct {
	layout    *Layout
	agents    []AgentState
	food      *Grid
	distancer Distancer
}

type snapshotJSON struct {
	Layout []string     `json:"layout"`
	Agents []AgentState `json:"agents"`
	// Food lists every remaining food cell. When omitted the layout's
	// food is used.
	Food []Position `json:"food,omitempty"`
}

// NewSnapshot builds a snapshot from a parsed layout. A nil food slice
// keeps the layout's food.
func NewSnapshot(l *Layout, agents []AgentState, food []Position) *Snapshot {
	s := &Snapshot{
		layout: l,
		agents: agents,
	}
	if food == nil {
		s.food = l.Food.Copy()
	} else {
		s.food = GridOf(l.Width, l.Height, food...)
	}
	s.distancer = NewMazeDistancer(l.Walls)
	return s
}

func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var raw snapshotJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	l, err := ParseLayout(raw.Layout)
	if err != nil {
		return fmt.Errorf("invalid snapshot layout: %w", err)
	}
	for i, a := range raw.Agents {
		if p, ok := a.Location(); ok && !l.Walls.InBounds(p) {
			return fmt.Errorf("agent %d position %s is off the layout", i, p)
		}
	}
	*s = *NewSnapshot(l, raw.Agents, raw.Food)
	return nil
}

func (s *Snapshot) MarshalJSON() ([]byte, error) {
	rows := make([]string, s.layout.Height)
	for i := range rows {
		y := s.layout.Height - 1 - i
		row := make([]byte, s.layout.Width)
		for x := range row {
			p := Position{X: x, Y: y}
			switch {
			case s.layout.Walls.At(p):
				row[x] = '%'
			default:
				row[x] = ' '
			}
		}
		for _, c := range s.layout.Capsules {
			if c.Y == y {
				row[c.X] = 'o'
			}
		}
		rows[i] = string(row)
	}
	food := s.food.List()
	if food == nil {
		food = []Position{}
	}
	return json.Marshal(snapshotJSON{Layout: rows, Agents: s.agents, Food: food})
}

// WithDistancer replaces the maze oracle, typically with one that has
// already been warmed up for the same layout.
func (s *Snapshot) WithDistancer(d Distancer) *Snapshot {
	c := *s
	c.distancer = d
	return &c
}

// Distancer returns the snapshot's maze oracle.
func (s *Snapshot) Distancer() Distancer {
	return s.distancer
}

// Layout returns the parsed maze backing the snapshot.
func (s *Snapshot) Layout() *Layout {
	return s.layout
}

func (s *Snapshot) NumAgents() int {
	return len(s.agents)
}

func (s *Snapshot) MazeDistance(a, b Position) int {
	return s.distancer.MazeDistance(a, b)
}

// LegalActions returns the open neighbouring moves followed by Stop. An
// agent without a known position may only stop.
func (s *Snapshot) LegalActions(index int) []Direction {
	p, ok := s.AgentPosition(index)
	if !ok {
		return []Direction{Stop}
	}
	actions := make([]Direction, 0, len(Directions))
	for _, d := range Directions[:4] {
		if !s.layout.Walls.At(p.Add(d)) {
			actions = append(actions, d)
		}
	}
	return append(actions, Stop)
}

// Successor moves only the acting agent and updates whether it is a
// pacman. Eating, captures and scoring are left to the host.
func (s *Snapshot) Successor(index int, action Direction) State {
	agents := make([]AgentState, len(s.agents))
	copy(agents, s.agents)

	c := *s
	c.agents = agents

	p, ok := s.AgentPosition(index)
	if !ok {
		return &c
	}
	next := p.Add(action)
	if s.layout.Walls.At(next) {
		panic(fmt.Sprintf("illegal action %s for agent %d at %s", action, index, p))
	}
	agents[index].Position = &next
	agents[index].IsPacman = s.IsRed(index) != OnRedSide(next.X, s.layout.Width)
	return &c
}

func (s *Snapshot) AgentPosition(index int) (Position, bool) {
	if index < 0 || index >= len(s.agents) {
		return Position{}, false
	}
	return s.agents[index].Location()
}

func (s *Snapshot) AgentState(index int) AgentState {
	if index < 0 || index >= len(s.agents) {
		return AgentState{}
	}
	return s.agents[index]
}

func (s *Snapshot) Team(red bool) []int {
	var team []int
	for i := range s.agents {
		if s.IsRed(i) == red {
			team = append(team, i)
		}
	}
	return team
}

func (s *Snapshot) IsRed(index int) bool {
	return RedIndex(index)
}

func (s *Snapshot) Walls() *Grid {
	return s.layout.Walls
}

func (s *Snapshot) Food(red bool) *Grid {
	g := NewGrid(s.layout.Width, s.layout.Height)
	for _, p := range s.food.List() {
		if OnRedSide(p.X, s.layout.Width) != red {
			g.Set(p, true)
		}
	}
	return g
}
