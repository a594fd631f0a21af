package game

// Unreachable is the maze distance reported between disconnected cells.
const Unreachable = 100000

// Distancer answers shortest-path questions over a maze.
type Distancer interface {
	MazeDistance(a, b Position) int
}

// State is the host's view of a match. It is read-only to agents:
// Successor returns a new State and never modifies the receiver.
type State interface {
	Distancer

	LegalActions(index int) []Direction
	Successor(index int, action Direction) State
	AgentPosition(index int) (Position, bool)
	AgentState(index int) AgentState
	// Team returns the agent indices playing for red (true) or blue.
	Team(red bool) []int
	IsRed(index int) bool
	Walls() *Grid
	// Food returns the food the given team is allowed to eat, which
	// lies on the opponent's half of the maze.
	Food(red bool) *Grid
}
