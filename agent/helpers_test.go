package agent

import (
	"testing"

	"capture/game"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var testLayout = []string{
	"%%%%%%%%%%",
	"%1 .  . 2%",
	"% %%  %% %",
	"%3 .  . 4%",
	"%%%%%%%%%%",
}

var openLayout = []string{
	"%%%%%%%%%%%%",
	"%          %",
	"%          %",
	"%          %",
	"%%%%%%%%%%%%",
}

// world builds snapshots over one layout. Agents start on their spawns
// and unknown positions are expressed with nil.
type world struct {
	t      *testing.T
	layout *game.Layout
	agents []game.AgentState
	food   []game.Position
}

func newWorld(t *testing.T, rows []string, numAgents int) *world {
	l, err := game.ParseLayout(rows)
	require.NoError(t, err)
	w := &world{t: t, layout: l, agents: make([]game.AgentState, numAgents)}
	for i := range w.agents {
		if p, ok := l.Spawns[i]; ok {
			w.agents[i].Position = &p
		}
	}
	return w
}

func (w *world) at(index int, p game.Position) *world {
	w.agents[index].Position = &p
	w.agents[index].IsPacman = game.OnRedSide(p.X, w.layout.Width) != (index%2 == 0)
	return w
}

func (w *world) hidden(index int) *world {
	w.agents[index].Position = nil
	return w
}

func (w *world) carrying(index, n int) *world {
	w.agents[index].NumCarrying = n
	return w
}

func (w *world) scared(index, timer int) *world {
	w.agents[index].ScaredTimer = timer
	return w
}

func (w *world) withFood(food ...game.Position) *world {
	w.food = food
	if w.food == nil {
		w.food = []game.Position{}
	}
	return w
}

func (w *world) state() *game.Snapshot {
	agents := make([]game.AgentState, len(w.agents))
	copy(agents, w.agents)
	return game.NewSnapshot(w.layout, agents, w.food)
}

func quiet() Option {
	return WithLogger(zerolog.Nop())
}

func registered[T Agent](t *testing.T, a T, s game.State) T {
	require.NoError(t, a.RegisterInitialState(s))
	return a
}

// assertTowards checks that action is a best step from index to target.
func assertTowards(t *testing.T, s game.State, index int, target game.Position, action game.Direction) {
	t.Helper()
	require.Contains(t, s.LegalActions(index), action)

	chosen, _ := s.Successor(index, action).AgentPosition(index)
	best := s.MazeDistance(chosen, target)
	for _, other := range s.LegalActions(index) {
		p, _ := s.Successor(index, other).AgentPosition(index)
		require.LessOrEqual(t, best, s.MazeDistance(p, target),
			"%s should be at least as close to %s as %s", action, target, other)
	}
}
