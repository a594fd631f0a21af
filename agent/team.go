package agent

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"capture/game"
)

const (
	ForagerName  = "forager"
	DefenderName = "defender"

	DefaultFirst  = ForagerName
	DefaultSecond = DefenderName
)

var (
	ErrUnknownAgent = errors.New("unknown agent name")
	ErrTeamColor    = errors.New("agent index does not play for the team's color")
)

// Factory builds an agent for the given index.
type Factory func(index int, opts ...Option) Agent

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{
		ForagerName:  NewForager,
		DefenderName: NewDefender,
	}
)

// Register adds a named agent factory. Registering a name twice panics.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, ok := registry[name]; ok {
		panic(fmt.Sprintf("agent %q already registered", name))
	}
	registry[name] = factory
}

// Names lists the registered agent names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Known reports whether name is registered.
func Known(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()

	_, ok := registry[name]
	return ok
}

// New builds a single agent by name.
func New(name string, index int, opts ...Option) (Agent, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAgent, name)
	}
	return factory(index, opts...), nil
}

// Team is the pair of agents playing for one color.
type Team struct {
	Red         bool
	NumTraining int
	agents      []Agent
}

type TeamOption func(c *teamConfig)

type teamConfig struct {
	first       string
	second      string
	numTraining int
	agentOpts   []Option
}

func WithFirst(name string) TeamOption {
	return func(c *teamConfig) {
		if name != "" {
			c.first = name
		}
	}
}

func WithSecond(name string) TeamOption {
	return func(c *teamConfig) {
		if name != "" {
			c.second = name
		}
	}
}

// WithTraining records the host's training episode count. No agent
// learns, so the value is only kept for reporting.
func WithTraining(episodes int) TeamOption {
	return func(c *teamConfig) {
		c.numTraining = episodes
	}
}

// WithAgentOptions applies opts to both agents.
func WithAgentOptions(opts ...Option) TeamOption {
	return func(c *teamConfig) {
		c.agentOpts = append(c.agentOpts, opts...)
	}
}

// NewTeam builds the two agents for a team, by default a forager on the
// first index and a defender on the second.
func NewTeam(firstIndex, secondIndex int, red bool, opts ...TeamOption) (*Team, error) {
	if firstIndex == secondIndex {
		return nil, fmt.Errorf("team agents must have distinct indices, got %d twice", firstIndex)
	}
	for _, index := range []int{firstIndex, secondIndex} {
		if game.RedIndex(index) != red {
			return nil, fmt.Errorf("%w: index %d, red=%t", ErrTeamColor, index, red)
		}
	}

	c := teamConfig{first: DefaultFirst, second: DefaultSecond}
	for _, opt := range opts {
		opt(&c)
	}

	first, err := New(c.first, firstIndex, c.agentOpts...)
	if err != nil {
		return nil, err
	}
	second, err := New(c.second, secondIndex, c.agentOpts...)
	if err != nil {
		return nil, err
	}

	return &Team{
		Red:         red,
		NumTraining: c.numTraining,
		agents:      []Agent{first, second},
	}, nil
}

func (t *Team) Agents() []Agent {
	return t.agents
}

// Agent returns the team member playing index.
func (t *Team) Agent(index int) (Agent, bool) {
	for _, a := range t.agents {
		if a.Index() == index {
			return a, true
		}
	}
	return nil, false
}
