package parsing

import (
	"fmt"

	"github.com/spacemeshos/bits/config"
	"github.com/spacemeshos/bits/shared"
)

type option struct {
	// maximum packet nesting; a lone literal has depth 1
	maxDepth int
	strategy config.Strategy
	logger   shared.Logger
}

func (o *option) validate() error {
	if o.maxDepth < config.MinMaxDepth {
		return fmt.Errorf("`maxDepth` must be at least %d, given: %d", config.MinMaxDepth, o.maxDepth)
	}
	return o.strategy.Validate()
}

func applyOpts(options ...OptionFunc) (*option, error) {
	opts := &option{
		maxDepth: config.DefaultMaxDepth,
		strategy: config.DefaultStrategy,
		logger:   shared.NoopLogger{},
	}
	for _, opt := range options {
		if err := opt(opts); err != nil {
			return nil, err
		}
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

type OptionFunc func(*option) error

// WithMaxDepth caps the nesting depth of the parsed tree.
func WithMaxDepth(depth int) OptionFunc {
	return func(o *option) error {
		o.maxDepth = depth
		return nil
	}
}

// WithStrategy selects recursive descent or the explicit work-stack parser.
func WithStrategy(strategy config.Strategy) OptionFunc {
	return func(o *option) error {
		o.strategy = strategy
		return nil
	}
}

// WithConfig applies the depth limit and strategy of cfg.
func WithConfig(cfg *config.Config) OptionFunc {
	return func(o *option) error {
		o.maxDepth = cfg.MaxDepth
		o.strategy = cfg.Strategy
		return nil
	}
}

func WithLogger(logger shared.Logger) OptionFunc {
	return func(o *option) error {
		if logger == nil {
			return fmt.Errorf("`logger` must not be nil")
		}
		o.logger = logger
		return nil
	}
}
