package agent

import (
	"cmp"
	"slices"

	"capture/game"
)

// Forager raids the opponent's food and falls back to patrolling its own
// waypoint once it has banked a haul.
type Forager struct {
	base
	mode            Mode
	powerMode       bool // an opponent was scared last turn
	successfulSteal bool // carried food home at least once this life
	safety          int
}

func NewForager(index int, opts ...Option) Agent {
	return &Forager{
		base:   newBase(index, ForagerName, ForagerWaypoint, opts),
		mode:   Attack,
		safety: 1,
	}
}

func (f *Forager) Mode() Mode {
	return f.mode
}

func (f *Forager) PowerMode() bool {
	return f.powerMode
}

func (f *Forager) Safety() int {
	return f.safety
}

func (f *Forager) Status() Status {
	return Status{Mode: f.mode, Safety: f.safety, PowerMode: f.powerMode, Target: f.target}
}

func (f *Forager) ChooseAction(state game.State) game.Direction {
	pos, _ := state.AgentPosition(f.index)
	carrying := state.AgentState(f.index).NumCarrying
	actions := state.LegalActions(f.index)

	scared := false
	var ghosts []game.Position
	for _, i := range game.Opponents(state, f.index) {
		opponent := state.AgentState(i)
		if opponent.Scared() {
			scared = true
		}
		if p, ok := opponent.Location(); ok && !opponent.IsPacman {
			ghosts = append(ghosts, p)
		}
	}

	// Back at spawn means we were eaten
	if pos == f.start {
		f.mode = Attack
	}

	if scared {
		f.powerMode = true
		f.mode = Attack
	} else if f.powerMode {
		f.powerMode = false
		if carrying == 0 && f.successfulSteal {
			f.mode = Defense
		} else {
			f.mode = Attack
		}
	}

	f.safety = f.safetyFor(state, pos, ghosts)
	f.target = nil

	var action game.Direction
	if f.mode == Attack {
		action = f.attack(state, pos, actions, carrying, ghosts)
	} else {
		action = f.patrol(state, actions)
	}

	f.log.Debug().
		Str("mode", string(f.mode)).
		Bool("power", f.powerMode).
		Int("safety", f.safety).
		Int("carrying", carrying).
		Interface("target", f.target).
		Str("action", string(action)).
		Msg("forage")
	return action
}

func (f *Forager) attack(state game.State, pos game.Position, actions []game.Direction, carrying int, ghosts []game.Position) game.Direction {
	if carrying >= f.tuning.CarryLimit || f.inDanger(state, pos, ghosts) {
		if carrying > 0 {
			f.successfulSteal = true
			f.mode = Defense
		}
		wp := f.waypoint
		f.target = &wp
		return towards(state, f.index, f.waypoint, actions)
	}

	if food, ok := f.selectFood(state, pos, state.Food(f.red).List(), ghosts); ok {
		f.target = &food
		return towards(state, f.index, food, actions)
	}

	if len(actions) == 0 {
		return game.Stop
	}
	return actions[f.rng.Intn(len(actions))]
}

func (f *Forager) safetyFor(state game.State, pos game.Position, ghosts []game.Position) int {
	if len(ghosts) == 0 {
		return f.tuning.safety(0, false)
	}
	nearest := state.MazeDistance(pos, ghosts[0])
	for _, g := range ghosts[1:] {
		nearest = min(nearest, state.MazeDistance(pos, g))
	}
	return f.tuning.safety(nearest, true)
}

func (f *Forager) inDanger(state game.State, pos game.Position, ghosts []game.Position) bool {
	for _, g := range ghosts {
		if state.MazeDistance(pos, g) < f.tuning.DangerDistance {
			return true
		}
	}
	return false
}

type scoredFood struct {
	score int
	food  game.Position
}

// selectFood scores every food by closeness, penalised for each ghost
// within the safety threshold of it, and samples one of the best few.
func (f *Forager) selectFood(state game.State, pos game.Position, food []game.Position, ghosts []game.Position) (game.Position, bool) {
	scored := make([]scoredFood, 0, len(food))
	for _, p := range food {
		score := f.tuning.FoodBase - state.MazeDistance(pos, p)
		for _, g := range ghosts {
			if state.MazeDistance(p, g) < f.safety {
				score -= f.tuning.GhostPenalty
			}
		}
		scored = append(scored, scoredFood{score: score, food: p})
	}

	slices.SortStableFunc(scored, func(a, b scoredFood) int {
		return cmp.Compare(b.score, a.score)
	})
	top := scored[:min(len(scored), f.tuning.TopFood)]
	if len(top) == 0 {
		return game.Position{}, false
	}
	return top[f.rng.Intn(len(top))].food, true
}
