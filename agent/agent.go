package agent

import (
	"errors"
	"fmt"

	"capture/game"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

var ErrNoStart = errors.New("agent position unknown at registration")

// Mode is the forager's current intent.
type Mode string

const (
	Attack  Mode = "attack"
	Defense Mode = "defense"
)

// Agent picks one move per turn for a single agent index.
type Agent interface {
	Index() int
	Name() string
	// RegisterInitialState is called once before the first turn.
	RegisterInitialState(state game.State) error
	// ChooseAction returns one of state.LegalActions(Index()).
	ChooseAction(state game.State) game.Direction
	// Status describes the reasoning behind the most recent move.
	Status() Status
}

// Status is a per-turn summary of an agent's internal state.
type Status struct {
	Mode      Mode
	Safety    int
	PowerMode bool
	Target    *game.Position
}

// base holds what every agent knows about itself and implements the
// shared patrol behaviour. waypointFn chooses the agent's rally point.
type base struct {
	index      int
	name       string
	red        bool
	start      game.Position
	waypoint   game.Position
	waypointFn WaypointFunc
	target     *game.Position

	rng    *rand.Rand
	log    zerolog.Logger
	tuning Tuning
}

func newBase(index int, name string, waypointFn WaypointFunc, opts []Option) base {
	o := buildOptions(index, opts)
	return base{
		index:      index,
		name:       name,
		waypointFn: waypointFn,
		rng:        o.rng,
		log:        o.logger.With().Int("agent", index).Str("name", name).Logger(),
		tuning:     o.tuning,
	}
}

func (b *base) Index() int {
	return b.index
}

func (b *base) Name() string {
	return b.name
}

// Waypoint returns the patrol point computed at registration.
func (b *base) Waypoint() game.Position {
	return b.waypoint
}

// Start returns the cell the agent spawned on.
func (b *base) Start() game.Position {
	return b.start
}

func (b *base) RegisterInitialState(state game.State) error {
	b.red = state.IsRed(b.index)

	walls := state.Walls()
	wp, err := ImproveWaypoint(b.waypointFn(walls.Width, walls.Height, b.red), walls)
	if err != nil {
		return fmt.Errorf("agent %d: %w", b.index, err)
	}
	b.waypoint = wp

	start, ok := state.AgentPosition(b.index)
	if !ok {
		return fmt.Errorf("agent %d: %w", b.index, ErrNoStart)
	}
	b.start = start

	b.log.Debug().
		Bool("red", b.red).
		Stringer("start", b.start).
		Stringer("waypoint", b.waypoint).
		Msg("registered")
	return nil
}

// patrol chases the closest visible invader on the home side, otherwise
// heads for the waypoint.
func (b *base) patrol(state game.State, actions []game.Direction) game.Direction {
	pos, _ := state.AgentPosition(b.index)

	var invaders []game.Position
	for _, i := range game.Opponents(state, b.index) {
		opponent := state.AgentState(i)
		if p, ok := opponent.Location(); ok && opponent.IsPacman {
			invaders = append(invaders, p)
		}
	}

	target := b.waypoint
	if len(invaders) > 0 {
		target = closest(state, pos, invaders)
	}
	b.target = &target
	return towards(state, b.index, target, actions)
}

// towards returns the action whose successor is nearest to target. Ties
// go to the earliest action; with no actions the agent stops.
func towards(state game.State, index int, target game.Position, actions []game.Direction) game.Direction {
	best := game.Stop
	bestDistance := -1
	for _, action := range actions {
		p, ok := state.Successor(index, action).AgentPosition(index)
		if !ok {
			continue
		}
		if d := state.MazeDistance(p, target); bestDistance < 0 || d < bestDistance {
			bestDistance = d
			best = action
		}
	}
	return best
}

// closest returns the first of candidates at minimum maze distance from pos.
func closest(state game.State, pos game.Position, candidates []game.Position) game.Position {
	best := candidates[0]
	bestDistance := state.MazeDistance(pos, best)
	for _, c := range candidates[1:] {
		if d := state.MazeDistance(pos, c); d < bestDistance {
			bestDistance = d
			best = c
		}
	}
	return best
}
