package lang

import (
	"math/rand/v2"

	"github.com/ardnew/randl/log"
)

// DefaultMaxDepth is the default limit on nested chance expressions.
const DefaultMaxDepth = 64

// Option configures parsing and evaluation.
type Option func(*options)

type options struct {
	logger   log.Logger
	rand     Rand
	maxDepth int
}

func makeOptions(opts ...Option) options {
	o := options{maxDepth: DefaultMaxDepth}

	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if o.rand == nil {
		o.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return o
}

// WithLogger sets the logger used for trace and debug output.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMaxDepth limits how deeply chance expressions may nest.
// Values less than 1 select [DefaultMaxDepth].
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth < 1 {
			depth = DefaultMaxDepth
		}

		o.maxDepth = depth
	}
}

// WithRand sets the source of randomness used by evaluation.
func WithRand(r Rand) Option {
	return func(o *options) { o.rand = r }
}

// WithSeed makes evaluation reproducible by seeding a PCG generator.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}
