package metrics

import (
	"sync"
	"time"
)

// Decision records one move chosen by one agent.
type Decision struct {
	Turn      int           `json:"turn"`
	Agent     int           `json:"agent"`
	Name      string        `json:"name"`
	Mode      string        `json:"mode"`
	Action    string        `json:"action"`
	Safety    int           `json:"safety"`
	PowerMode bool          `json:"powerMode"`
	Target    string        `json:"target,omitempty"`
	Fallback  bool          `json:"fallback"` // agent's move was illegal and replaced
	Duration  time.Duration `json:"duration"`
}

type Collector interface {
	Add(d Decision)
	Decisions() []Decision
}

type collector struct {
	mu        sync.Mutex
	decisions []Decision
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Add(d Decision) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.decisions = append(c.decisions, d)
}

// Decisions returns a copy of everything collected so far.
func (c *collector) Decisions() []Decision {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Decision, len(c.decisions))
	copy(out, c.decisions)
	return out
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (c *dummyCollector) Add(d Decision)        {}
func (c *dummyCollector) Decisions() []Decision { return []Decision{} }
