package game

// AgentState is what the host reveals about one agent.
type AgentState struct {
	Position    *Position `json:"position,omitempty"` // nil when not observable
	IsPacman    bool      `json:"isPacman"`
	ScaredTimer int       `json:"scaredTimer"`
	NumCarrying int       `json:"numCarrying"`
}

// Location returns the agent's position and whether it is known.
func (a AgentState) Location() (Position, bool) {
	if a.Position == nil {
		return Position{}, false
	}
	return *a.Position, true
}

// Scared reports whether the agent is vulnerable after a capsule was eaten.
func (a AgentState) Scared() bool {
	return a.ScaredTimer > 0
}

// Opponents returns the indices of the team playing against index.
func Opponents(s State, index int) []int {
	return s.Team(!s.IsRed(index))
}

// RedIndex follows the host convention: red agents have even indices.
func RedIndex(index int) bool {
	return index%2 == 0
}

// OnRedSide reports whether x lies in the red (left) half of a maze.
func OnRedSide(x, width int) bool {
	return x < width/2
}
