package sketchdist

import "github.com/hupe1980/sketchdist/join"

// MetricsCollector is re-exported from join for convenience; implement it
// to integrate runs with monitoring systems.
type MetricsCollector = join.MetricsCollector

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector = join.NoopMetricsCollector

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector = join.BasicMetricsCollector

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats = join.BasicMetricsStats
