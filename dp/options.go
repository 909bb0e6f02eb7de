package dp

import "go.uber.org/zap"

const defaultNumShards = 32

// ParallelConfig configures the parallel engine.
type ParallelConfig struct {
	NumShards int // default: 32
	MaxFanOut int // goroutines per EvalAll call; default: unlimited
}

// NewParallelConfig normalises non-positive values to their defaults.
func NewParallelConfig(numShards, maxFanOut int) ParallelConfig {
	if numShards <= 0 {
		numShards = defaultNumShards
	}
	if maxFanOut <= 0 {
		maxFanOut = -1
	}
	return ParallelConfig{
		NumShards: numShards,
		MaxFanOut: maxFanOut,
	}
}

type options struct {
	name     string
	logger   *zap.Logger
	observer Observer
	parallel *ParallelConfig
}

// Option configures an Evaluator.
type Option func(*options)

// WithName labels the evaluator in logs and cycle errors.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithLogger sets the logger used for run lifecycle and cycle reports.
// A nil logger keeps the default no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithObserver registers fn to receive every memo Event.
// Under WithParallelism, fn is called from many goroutines at once.
func WithObserver(fn Observer) Option {
	return func(o *options) {
		o.observer = fn
	}
}

// WithParallelism switches the evaluator to the sharded, goroutine-backed engine.
func WithParallelism(cfg ParallelConfig) Option {
	return func(o *options) {
		cfg = NewParallelConfig(cfg.NumShards, cfg.MaxFanOut)
		o.parallel = &cfg
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
