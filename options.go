package sketchdist

import (
	"log/slog"
	"time"

	"github.com/hupe1980/sketchdist/join"
)

type options struct {
	maxDistance      float64
	maxPValue        float64
	workers          int
	slotBudget       uint64
	progressInterval time.Duration
	logger           *Logger
	metrics          join.MetricsCollector
}

// Option configures Engine construction behavior.
type Option func(*options)

// WithMaxDistance sets the maximum reportable distance in [0,1].
// A pair at distance exactly 1 is never reported regardless of this value.
func WithMaxDistance(d float64) Option {
	return func(o *options) {
		o.maxDistance = d
	}
}

// WithMaxPValue sets the maximum reportable significance in [0,1].
func WithMaxPValue(p float64) Option {
	return func(o *options) {
		o.maxPValue = p
	}
}

// WithWorkers sets the scoring worker count. Values <= 0 select
// GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithSlotBudget sets the per-round inverted-index slot budget.
// Smaller budgets mean more rounds and lower peak memory.
func WithSlotBudget(budget uint64) Option {
	return func(o *options) {
		o.slotBudget = budget
	}
}

// WithProgressInterval sets how often per-query progress is logged.
func WithProgressInterval(d time.Duration) Option {
	return func(o *options) {
		o.progressInterval = d
	}
}

// WithLogger configures structured logging for runs.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring runs.
func WithMetricsCollector(mc join.MetricsCollector) Option {
	return func(o *options) {
		o.metrics = mc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		maxDistance: 1.0,
		maxPValue:   1.0,
		slotBudget:  join.DefaultSlotBudget,
		logger:      NoopLogger(),
		metrics:     join.NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
