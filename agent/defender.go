package agent

import "capture/game"

// Defender guards the home side: it chases visible invaders and otherwise
// holds the center waypoint.
type Defender struct {
	base
}

func NewDefender(index int, opts ...Option) Agent {
	return &Defender{base: newBase(index, DefenderName, CenterWaypoint, opts)}
}

func (d *Defender) ChooseAction(state game.State) game.Direction {
	action := d.patrol(state, state.LegalActions(d.index))
	d.log.Debug().Str("action", string(action)).Interface("target", d.target).Msg("patrol")
	return action
}

func (d *Defender) Status() Status {
	return Status{Mode: Defense, Target: d.target}
}
