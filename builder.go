// Package sketchdist provides pairwise MinHash distance estimation.
//
// This file implements the fluent builder API for creating configured
// Engine instances. The builder is immutable - each method returns a new
// builder with the updated configuration.
package sketchdist

import (
	"time"

	"github.com/hupe1980/sketchdist/join"
)

// Pairwise creates a new engine builder with default thresholds (report
// everything below distance 1).
//
// The builder is immutable - each method returns a new builder with the
// updated configuration.
//
// Example:
//
//	eng, err := sketchdist.Pairwise().
//	    MaxDistance(0.5).
//	    MaxPValue(1e-10).
//	    Workers(8).
//	    Build()
func Pairwise() PairwiseBuilder {
	return PairwiseBuilder{
		maxDistance: 1.0,
		maxPValue:   1.0,
	}
}

// PairwiseBuilder is an immutable fluent builder for creating Engine
// instances. Each method returns a new builder with the updated
// configuration.
type PairwiseBuilder struct {
	maxDistance      float64
	maxPValue        float64
	workers          int
	slotBudget       uint64
	progressInterval time.Duration
	logger           *Logger
	metrics          join.MetricsCollector
}

// MaxDistance sets the maximum reportable distance in [0,1].
func (b PairwiseBuilder) MaxDistance(d float64) PairwiseBuilder {
	b.maxDistance = d
	return b
}

// MaxPValue sets the maximum reportable significance in [0,1].
func (b PairwiseBuilder) MaxPValue(p float64) PairwiseBuilder {
	b.maxPValue = p
	return b
}

// Workers sets the scoring worker count. Values <= 0 select GOMAXPROCS.
func (b PairwiseBuilder) Workers(n int) PairwiseBuilder {
	b.workers = n
	return b
}

// SlotBudget sets the per-round inverted-index slot budget.
func (b PairwiseBuilder) SlotBudget(budget uint64) PairwiseBuilder {
	b.slotBudget = budget
	return b
}

// ProgressInterval sets how often per-query progress is logged.
func (b PairwiseBuilder) ProgressInterval(d time.Duration) PairwiseBuilder {
	b.progressInterval = d
	return b
}

// Logger sets the structured logger for run tracing.
func (b PairwiseBuilder) Logger(l *Logger) PairwiseBuilder {
	b.logger = l
	return b
}

// Metrics sets the metrics collector for monitoring.
func (b PairwiseBuilder) Metrics(mc join.MetricsCollector) PairwiseBuilder {
	b.metrics = mc
	return b
}

// Build creates the Engine.
func (b PairwiseBuilder) Build() (*Engine, error) {
	var optFns []Option
	optFns = append(optFns,
		WithMaxDistance(b.maxDistance),
		WithMaxPValue(b.maxPValue),
	)
	if b.workers > 0 {
		optFns = append(optFns, WithWorkers(b.workers))
	}
	if b.slotBudget > 0 {
		optFns = append(optFns, WithSlotBudget(b.slotBudget))
	}
	if b.progressInterval > 0 {
		optFns = append(optFns, WithProgressInterval(b.progressInterval))
	}
	if b.logger != nil {
		optFns = append(optFns, WithLogger(b.logger))
	}
	if b.metrics != nil {
		optFns = append(optFns, WithMetricsCollector(b.metrics))
	}
	return New(optFns...)
}

// MustBuild creates the Engine, panicking on error.
func (b PairwiseBuilder) MustBuild() *Engine {
	eng, err := b.Build()
	if err != nil {
		panic(err)
	}
	return eng
}
