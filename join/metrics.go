package join

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting join metrics.
// Implement this interface to integrate with monitoring systems.
type MetricsCollector interface {
	// RecordRound is called after each round's index build.
	// entries is the number of distinct hash slots in the round's index.
	RecordRound(round Round, entries int, buildTime time.Duration)

	// RecordQuery is called after each query's candidates are scored.
	RecordQuery(candidates, accepted int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRound(Round, int, time.Duration) {}
func (NoopMetricsCollector) RecordQuery(int, int)                  {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	RoundCount      atomic.Int64
	IndexEntries    atomic.Int64
	BuildTotalNanos atomic.Int64
	QueryCount      atomic.Int64
	CandidateCount  atomic.Int64
	AcceptedCount   atomic.Int64
}

// RecordRound implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRound(_ Round, entries int, buildTime time.Duration) {
	b.RoundCount.Add(1)
	b.IndexEntries.Add(int64(entries))
	b.BuildTotalNanos.Add(buildTime.Nanoseconds())
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(candidates, accepted int) {
	b.QueryCount.Add(1)
	b.CandidateCount.Add(int64(candidates))
	b.AcceptedCount.Add(int64(accepted))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		RoundCount:     b.RoundCount.Load(),
		IndexEntries:   b.IndexEntries.Load(),
		QueryCount:     b.QueryCount.Load(),
		CandidateCount: b.CandidateCount.Load(),
		AcceptedCount:  b.AcceptedCount.Load(),
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	RoundCount     int64
	IndexEntries   int64
	QueryCount     int64
	CandidateCount int64
	AcceptedCount  int64
}
