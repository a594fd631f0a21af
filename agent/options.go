package agent

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(o *options)

type options struct {
	rng    *rand.Rand
	seed   uint64
	seeded bool
	logger zerolog.Logger
	tuning Tuning
}

// WithSeed makes random choices reproducible. Each agent derives its own
// stream from seed and its index.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// WithRand injects a random source directly, overriding WithSeed.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		if rng != nil {
			o.rng = rng
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func WithTuning(tuning Tuning) Option {
	return func(o *options) {
		o.tuning = tuning
	}
}

func buildOptions(index int, opts []Option) options {
	o := options{ // Default values
		logger: log.Logger,
		tuning: DefaultTuning(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		seed := uint64(time.Now().UnixNano())
		if o.seeded {
			seed = o.seed
		}
		o.rng = rand.New(rand.NewSource(seed + uint64(index)))
	}
	return o
}
