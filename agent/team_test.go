package agent

import (
	"testing"

	"capture/game"

	"github.com/stretchr/testify/require"
)

const idleName = "idle"

// idle always stops. It exists to exercise the registry.
type idle struct{ base }

func newIdle(index int, opts ...Option) Agent {
	return &idle{base: newBase(index, idleName, CenterWaypoint, opts)}
}

func (a *idle) ChooseAction(game.State) game.Direction { return game.Stop }

func (a *idle) Status() Status { return Status{Mode: Defense} }

func init() {
	if !Known(idleName) {
		Register(idleName, newIdle)
	}
}

func TestNewTeam(t *testing.T) {
	t.Run("defaults to a forager and a defender", func(t *testing.T) {
		team, err := NewTeam(0, 2, true, WithAgentOptions(quiet()))
		require.NoError(t, err)

		agents := team.Agents()
		require.Len(t, agents, 2)
		require.Equal(t, ForagerName, agents[0].Name())
		require.Equal(t, 0, agents[0].Index())
		require.Equal(t, DefenderName, agents[1].Name())
		require.Equal(t, 2, agents[1].Index())
		require.True(t, team.Red)
	})

	t.Run("names select the agents", func(t *testing.T) {
		team, err := NewTeam(1, 3, false, WithFirst(DefenderName), WithSecond(idleName), WithTraining(5))
		require.NoError(t, err)

		require.Equal(t, DefenderName, team.Agents()[0].Name())
		require.Equal(t, idleName, team.Agents()[1].Name())
		require.Equal(t, 5, team.NumTraining)
	})

	t.Run("empty names keep the defaults", func(t *testing.T) {
		team, err := NewTeam(0, 2, true, WithFirst(""), WithSecond(""))
		require.NoError(t, err)
		require.Equal(t, ForagerName, team.Agents()[0].Name())
		require.Equal(t, DefenderName, team.Agents()[1].Name())
	})

	t.Run("unknown names are an error", func(t *testing.T) {
		_, err := NewTeam(0, 2, true, WithFirst("TotallyNotAnAgent"))
		require.ErrorIs(t, err, ErrUnknownAgent)

		_, err = NewTeam(0, 2, true, WithSecond("TotallyNotAnAgent"))
		require.ErrorIs(t, err, ErrUnknownAgent)
	})

	t.Run("indices must differ", func(t *testing.T) {
		_, err := NewTeam(2, 2, true)
		require.Error(t, err)
	})

	t.Run("indices must match the team color", func(t *testing.T) {
		_, err := NewTeam(1, 3, true)
		require.ErrorIs(t, err, ErrTeamColor)

		_, err = NewTeam(0, 2, false)
		require.ErrorIs(t, err, ErrTeamColor)

		_, err = NewTeam(0, 1, true)
		require.ErrorIs(t, err, ErrTeamColor, "Mixed teams are rejected")
	})

	t.Run("finds agents by index", func(t *testing.T) {
		team, err := NewTeam(1, 3, false)
		require.NoError(t, err)

		a, ok := team.Agent(3)
		require.True(t, ok)
		require.Equal(t, DefenderName, a.Name())

		_, ok = team.Agent(0)
		require.False(t, ok)
	})

	t.Run("agents are independent", func(t *testing.T) {
		team, err := NewTeam(0, 2, true, WithFirst(ForagerName), WithSecond(ForagerName), WithAgentOptions(quiet(), WithSeed(3)))
		require.NoError(t, err)

		first, second := team.Agents()[0].(*Forager), team.Agents()[1].(*Forager)
		require.NotSame(t, first, second)
		require.NotSame(t, first.rng, second.rng)
	})
}

func TestRegistry(t *testing.T) {
	t.Run("lists names in order", func(t *testing.T) {
		names := Names()
		require.Contains(t, names, ForagerName)
		require.Contains(t, names, DefenderName)
		require.Contains(t, names, idleName)
		require.IsNonDecreasing(t, names)
	})

	t.Run("registering a name twice panics", func(t *testing.T) {
		require.Panics(t, func() { Register(ForagerName, NewForager) })
	})

	t.Run("builds registered agents", func(t *testing.T) {
		a, err := New(idleName, 4)
		require.NoError(t, err)
		require.Equal(t, 4, a.Index())
		require.Equal(t, game.Stop, a.ChooseAction(nil))
	})

	t.Run("unknown names are reported", func(t *testing.T) {
		require.False(t, Known("nope"))
		_, err := New("nope", 0)
		require.ErrorIs(t, err, ErrUnknownAgent)
	})
}
