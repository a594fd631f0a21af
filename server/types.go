package server

import "capture/game"

type CreateTeamRequest struct {
	FirstIndex  int    `json:"firstIndex"`
	SecondIndex int    `json:"secondIndex"`
	Red         bool   `json:"red"`
	First       string `json:"first,omitempty"`
	Second      string `json:"second,omitempty"`
	NumTraining int    `json:"numTraining,omitempty"`
	// Seed makes the team's random choices reproducible.
	Seed *uint64 `json:"seed,omitempty"`
}

type AgentInfo struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

type CreateTeamResponse struct {
	ID     string      `json:"id"`
	Agents []AgentInfo `json:"agents"`
}

type RegisterRequest struct {
	State *game.Snapshot `json:"state"`
}

type ActionRequest struct {
	Index int            `json:"index"`
	State *game.Snapshot `json:"state"`
}

type ActionResponse struct {
	Action game.Direction `json:"action"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
