package engine

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"capture/agent"
	"capture/game"
	"capture/metrics"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	ErrNotRegistered     = errors.New("team has not been registered")
	ErrAlreadyRegistered = errors.New("team is already registered")
	ErrNotOnTeam         = errors.New("agent is not on this team")
)

// Session is one team's participation in a match. Calls are serialised:
// the host asks for one agent's move at a time.
type Session struct {
	ID   string
	Team *agent.Team

	mu         sync.Mutex
	registered bool
	turns      int
	created    time.Time
	metrics    metrics.Collector
	log        zerolog.Logger
}

type Option func(s *Session)

func WithMetrics(collector metrics.Collector) Option {
	return func(s *Session) {
		if collector != nil {
			s.metrics = collector
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.log = logger
	}
}

func NewSession(id string, team *agent.Team, opts ...Option) *Session {
	s := &Session{ // Default values
		ID:      id,
		Team:    team,
		created: time.Now(),
		metrics: metrics.NewDummyCollector(),
		log:     log.Logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With().Str("session", id).Bool("red", team.Red).Logger()
	return s
}

// Register hands the initial state to both agents.
func (s *Session) Register(state game.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.registered {
		return ErrAlreadyRegistered
	}
	for _, a := range s.Team.Agents() {
		if err := a.RegisterInitialState(state); err != nil {
			return fmt.Errorf("failed to register %s: %w", a.Name(), err)
		}
	}
	s.registered = true
	s.log.Info().Msg("team registered")
	return nil
}

func (s *Session) Registered() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.registered
}

// ChooseAction asks the agent playing index for its move. A move that is
// not among the legal actions is replaced by the first legal one.
func (s *Session) ChooseAction(index int, state game.State) (game.Direction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.registered {
		return "", ErrNotRegistered
	}
	a, ok := s.Team.Agent(index)
	if !ok {
		return "", fmt.Errorf("%w: index %d", ErrNotOnTeam, index)
	}

	start := time.Now()
	action := a.ChooseAction(state)
	elapsed := time.Since(start)

	legal := state.LegalActions(index)
	fallback := false
	if !slices.Contains(legal, action) {
		fallback = true
		s.log.Warn().Int("agent", index).Str("action", string(action)).Msg("agent returned an illegal move, falling back")
		action = game.Stop
		if len(legal) > 0 {
			action = legal[0]
		}
	}

	s.turns++
	status := a.Status()
	d := metrics.Decision{
		Turn:      s.turns,
		Agent:     index,
		Name:      a.Name(),
		Mode:      string(status.Mode),
		Action:    string(action),
		Safety:    status.Safety,
		PowerMode: status.PowerMode,
		Fallback:  fallback,
		Duration:  elapsed,
	}
	if status.Target != nil {
		d.Target = status.Target.String()
	}
	s.metrics.Add(d)

	return action, nil
}

// Turns returns how many moves the session has answered.
func (s *Session) Turns() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.turns
}

func (s *Session) Decisions() []metrics.Decision {
	return s.metrics.Decisions()
}

func (s *Session) Age() time.Duration {
	return time.Since(s.created)
}
