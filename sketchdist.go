package sketchdist

import (
	"context"

	"github.com/hupe1980/sketchdist/join"
	"github.com/hupe1980/sketchdist/sketch"
)

// Engine runs all-vs-all sketch similarity joins with a fixed
// configuration. An Engine is immutable and safe for concurrent use;
// each Run owns its own round state.
type Engine struct {
	opts options
}

// New creates an Engine from functional options. Most callers should use
// the Pairwise builder instead.
func New(optFns ...Option) (*Engine, error) {
	o := applyOptions(optFns)

	if o.maxDistance < 0 || o.maxDistance > 1 {
		return nil, &ErrInvalidThreshold{Name: "distance", Value: o.maxDistance}
	}
	if o.maxPValue < 0 || o.maxPValue > 1 {
		return nil, &ErrInvalidThreshold{Name: "p-value", Value: o.maxPValue}
	}
	if o.slotBudget == 0 {
		return nil, &ErrInvalidSlotBudget{Budget: o.slotBudget}
	}

	return &Engine{opts: o}, nil
}

// Run joins the collection against itself and streams accepted pairs to
// w. It returns once every round has been processed and the writer has
// been flushed.
func (e *Engine) Run(ctx context.Context, coll *sketch.Collection, w join.Writer) (join.Stats, error) {
	if coll == nil || coll.Len() == 0 {
		return join.Stats{}, ErrEmptyCollection
	}
	if w == nil {
		return join.Stats{}, ErrNilWriter
	}

	runner, err := join.NewRunner(coll, func(o *join.Options) {
		o.Workers = e.opts.workers
		o.SlotBudget = e.opts.slotBudget
		o.Thresholds = join.Thresholds{
			MaxDistance: e.opts.maxDistance,
			MaxPValue:   e.opts.maxPValue,
		}
		o.ProgressInterval = e.opts.progressInterval
		if e.opts.logger != nil {
			o.Logger = e.opts.logger.Logger
		}
		o.Metrics = e.opts.metrics
	})
	if err != nil {
		return join.Stats{}, err
	}

	return runner.Run(ctx, w)
}
