package join

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/sketchdist/sketch"
)

// joinCollection builds a deterministic collection whose sketches overlap
// in a sliding-window pattern, so every adjacent pair shares hashes.
func joinCollection(t *testing.T, n, sketchSize int) *sketch.Collection {
	t.Helper()

	hashes := make([][]uint64, n)
	for i := range hashes {
		h := make([]uint64, sketchSize)
		for j := range h {
			h[j] = uint64(i*sketchSize/2 + j)
		}
		hashes[i] = h
	}
	return testCollection(t, sketchSize, hashes...)
}

func sortedLines(s string) []string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	sort.Strings(lines)
	return lines
}

func TestRunnerEmptyCollection(t *testing.T) {
	_, err := NewRunner(nil)
	assert.Error(t, err)
}

func TestRunnerInvalidThresholds(t *testing.T) {
	coll := joinCollection(t, 4, 8)

	_, err := NewRunner(coll, func(o *Options) {
		o.Thresholds.MaxDistance = 1.5
	})
	assert.Error(t, err)

	_, err = NewRunner(coll, func(o *Options) {
		o.Thresholds.MaxPValue = -0.1
	})
	assert.Error(t, err)
}

func TestRunnerNilWriter(t *testing.T) {
	coll := joinCollection(t, 4, 8)
	runner, err := NewRunner(coll)
	require.NoError(t, err)

	_, err = runner.Run(context.Background(), nil)
	assert.Error(t, err)
}

func TestRunnerSingleRound(t *testing.T) {
	coll := joinCollection(t, 6, 8)
	runner, err := NewRunner(coll, func(o *Options) {
		o.Workers = 2
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	stats, err := runner.Run(context.Background(), NewTupleWriter(&buf))
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Rounds)
	assert.Equal(t, int64(5), stats.Queries)
	assert.Positive(t, stats.Accepted)

	// Identical sketches do not exist here, but each record shares half
	// its hashes with its neighbors; those pairs must all be present.
	out := buf.String()
	assert.Contains(t, out, "b\ta\t")
	assert.Contains(t, out, "c\tb\t")
}

func TestRunnerSelfPairIsDistanceZero(t *testing.T) {
	h := []uint64{3, 7, 11, 19}
	coll := testCollection(t, 4, h, h)

	runner, err := NewRunner(coll)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = runner.Run(context.Background(), NewTupleWriter(&buf))
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "b\ta\t0\t"), "got %q", out)
	assert.True(t, strings.HasSuffix(out, "\t4/4\n"), "got %q", out)
}

func TestRunnerWorkerCountInvariance(t *testing.T) {
	coll := joinCollection(t, 20, 16)

	run := func(workers int) string {
		runner, err := NewRunner(coll, func(o *Options) {
			o.Workers = workers
		})
		require.NoError(t, err)

		var buf bytes.Buffer
		_, err = runner.Run(context.Background(), NewTupleWriter(&buf))
		require.NoError(t, err)
		return buf.String()
	}

	// Draining is ordered, so the byte output must be identical no matter
	// how many workers race on the scoring.
	serial := run(1)
	assert.Equal(t, serial, run(4))
	assert.Equal(t, serial, run(9))
}

func TestRunnerRoundInvariance(t *testing.T) {
	coll := joinCollection(t, 20, 16)

	run := func(budget uint64) (string, int) {
		runner, err := NewRunner(coll, func(o *Options) {
			o.SlotBudget = budget
		})
		require.NoError(t, err)

		var buf bytes.Buffer
		stats, err := runner.Run(context.Background(), NewTupleWriter(&buf))
		require.NoError(t, err)
		return buf.String(), stats.Rounds
	}

	single, rounds := run(DefaultSlotBudget)
	require.Equal(t, 1, rounds)

	// A tiny slot budget forces multiple rounds. Line order changes but
	// the accepted pair set must not.
	multi, rounds := run(40)
	require.Greater(t, rounds, 1)
	assert.Equal(t, sortedLines(single), sortedLines(multi))
}

func TestRunnerCandidateCount(t *testing.T) {
	coll := joinCollection(t, 10, 8)
	runner, err := NewRunner(coll)
	require.NoError(t, err)

	var buf bytes.Buffer
	stats, err := runner.Run(context.Background(), NewTupleWriter(&buf))
	require.NoError(t, err)

	// Every candidate is a strict lower-triangle pair.
	n := int64(coll.Len())
	assert.LessOrEqual(t, stats.Candidates, n*(n-1)/2)
	assert.LessOrEqual(t, stats.Accepted, stats.Candidates)
}

func TestRunnerCancellation(t *testing.T) {
	coll := joinCollection(t, 50, 16)
	runner, err := NewRunner(coll, func(o *Options) {
		o.Workers = 1
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	_, err = runner.Run(ctx, NewTupleWriter(&buf))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunnerMetrics(t *testing.T) {
	coll := joinCollection(t, 10, 8)

	mc := &BasicMetricsCollector{}
	runner, err := NewRunner(coll, func(o *Options) {
		o.Metrics = mc
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	stats, err := runner.Run(context.Background(), NewTupleWriter(&buf))
	require.NoError(t, err)

	got := mc.GetStats()
	assert.Equal(t, int64(stats.Rounds), got.RoundCount)
	assert.Equal(t, stats.Queries, got.QueryCount)
	assert.Equal(t, stats.Accepted, got.AcceptedCount)
}
