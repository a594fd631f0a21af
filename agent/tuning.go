package agent

import (
	"errors"
	"fmt"
	"math"
)

// The forager's safety threshold always lies in [MinSafety, MaxSafety].
const (
	MinSafety = 1
	MaxSafety = 10
)

// Tuning holds the forager's heuristic constants.
type Tuning struct {
	// CarryLimit is the carried food count that triggers a retreat.
	CarryLimit int `yaml:"carry_limit"`
	// DangerDistance: a ghost strictly closer than this forces a retreat.
	DangerDistance int `yaml:"danger_distance"`
	FoodBase       int `yaml:"food_base"`
	GhostPenalty   int `yaml:"ghost_penalty"`
	// TopFood is how many of the best scored foods are sampled from.
	TopFood int `yaml:"top_food"`

	SafetyBase  int     `yaml:"safety_base"`
	SafetyScale float64 `yaml:"safety_scale"`
	SafetyMax   int     `yaml:"safety_max"`
	// SafetyIdle is used when no ghost is visible.
	SafetyIdle int `yaml:"safety_idle"`
}

func DefaultTuning() Tuning {
	return Tuning{
		CarryLimit:     2,
		DangerDistance: 4,
		FoodBase:       20,
		GhostPenalty:   30,
		TopFood:        3,
		SafetyBase:     2,
		SafetyScale:    3,
		SafetyMax:      MaxSafety,
		SafetyIdle:     MinSafety,
	}
}

func (t Tuning) Validate() error {
	switch {
	case t.CarryLimit < 1:
		return errors.New("carry_limit must be at least 1")
	case t.DangerDistance < 0:
		return errors.New("danger_distance must not be negative")
	case t.TopFood < 1:
		return errors.New("top_food must be at least 1")
	case t.SafetyIdle != MinSafety:
		return fmt.Errorf("safety_idle must be %d", MinSafety)
	case t.SafetyMax > MaxSafety:
		return fmt.Errorf("safety_max must be at most %d", MaxSafety)
	case t.SafetyBase < t.SafetyIdle || t.SafetyMax < t.SafetyBase:
		return errors.New("safety bounds must satisfy safety_idle <= safety_base <= safety_max")
	case t.SafetyScale < 0:
		return errors.New("safety_scale must not be negative")
	}
	return nil
}

// safety maps the distance to the closest visible ghost to the cutoff used
// when penalising food near ghosts. The bonus falls off with the inverse
// square of the distance.
func (t Tuning) safety(closestGhost int, visible bool) int {
	if !visible {
		return t.SafetyIdle
	}
	falloff := math.Pow(1/float64(closestGhost+1), 2)
	return min(t.SafetyBase+int(t.SafetyScale*falloff), t.SafetyMax)
}
