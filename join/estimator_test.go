package join

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/sketchdist/sketch"
)

const testKmerSpace = 5.12e11 // 20^9

func rec(length uint64, hashes ...uint64) *sketch.Record {
	return &sketch.Record{Name: "r", Length: length, Hashes: hashes}
}

func openThresholds() Thresholds {
	return Thresholds{MaxDistance: 1.0, MaxPValue: 1.0}
}

func TestCompareSketchesIdentical(t *testing.T) {
	ref := rec(1000, 10, 20, 30, 40)
	qry := rec(1000, 10, 20, 30, 40)

	p, ok := compareSketches(ref, qry, 4, 9, testKmerSpace, openThresholds())
	require.True(t, ok)

	assert.Equal(t, 0.0, p.Distance)
	assert.Equal(t, 4, p.Common)
	assert.Equal(t, 4, p.Denom)
	assert.False(t, math.Signbit(p.Distance), "distance must not be -0")
}

func TestCompareSketchesDisjoint(t *testing.T) {
	ref := rec(1000, 1, 2, 3, 4)
	qry := rec(1000, 5, 6, 7, 8)

	// Distance 1 is never reported, even with both thresholds wide open.
	_, ok := compareSketches(ref, qry, 4, 9, testKmerSpace, openThresholds())
	assert.False(t, ok)
}

func TestCompareSketchesPartialOverlap(t *testing.T) {
	ref := rec(1000, 1, 2, 3, 4)
	qry := rec(1000, 1, 2, 3, 5)

	p, ok := compareSketches(ref, qry, 4, 9, testKmerSpace, openThresholds())
	require.True(t, ok)

	assert.Equal(t, 3, p.Common)
	assert.Equal(t, 4, p.Denom)

	jaccard := 0.75
	want := -math.Log(2*jaccard/(1+jaccard)) / 9
	assert.InDelta(t, want, p.Distance, 1e-12)
}

func TestCompareSketchesUnionCompletion(t *testing.T) {
	// Lists shorter than the sketch capacity: after the merge exhausts one
	// list the remaining tail of the other still counts toward the union.
	ref := rec(1000, 1, 2)
	qry := rec(1000, 1, 2, 3, 4, 5)

	p, ok := compareSketches(ref, qry, 400, 9, testKmerSpace, openThresholds())
	require.True(t, ok)

	assert.Equal(t, 2, p.Common)
	assert.Equal(t, 5, p.Denom)
}

func TestCompareSketchesDenomClamp(t *testing.T) {
	// Virtual union completion never pushes denom past the sketch size.
	ref := rec(1000, 1, 2, 3)
	qry := rec(1000, 1, 4, 5, 6)

	p, ok := compareSketches(ref, qry, 4, 9, testKmerSpace, openThresholds())
	require.True(t, ok)
	assert.Equal(t, 4, p.Denom)
}

func TestCompareSketchesDistanceThreshold(t *testing.T) {
	ref := rec(1000, 1, 2, 3, 4)
	qry := rec(1000, 1, 2, 3, 5)

	p, ok := compareSketches(ref, qry, 4, 9, testKmerSpace, openThresholds())
	require.True(t, ok)

	// Tighten the cutoff just below the pair's distance.
	tight := Thresholds{MaxDistance: p.Distance / 2, MaxPValue: 1.0}
	_, ok = compareSketches(ref, qry, 4, 9, testKmerSpace, tight)
	assert.False(t, ok)
}

func TestCompareSketchesPValueThreshold(t *testing.T) {
	// A single shared hash in a tiny k-mer space is statistically
	// unremarkable; a strict p-value cutoff must reject it.
	ref := rec(100000, 1, 2, 3, 4)
	qry := rec(100000, 1, 9, 10, 11)

	strict := Thresholds{MaxDistance: 1.0, MaxPValue: 1e-10}
	_, ok := compareSketches(ref, qry, 4, 9, 1e6, strict)
	assert.False(t, ok)
}

func TestPValue(t *testing.T) {
	t.Run("zero shared is never significant", func(t *testing.T) {
		assert.Equal(t, 1.0, pValue(0, 1000, 1000, testKmerSpace, 400))
	})

	t.Run("bounded", func(t *testing.T) {
		p := pValue(5, 1000, 2000, testKmerSpace, 400)
		assert.Greater(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	})

	t.Run("more shared hashes are more significant", func(t *testing.T) {
		p1 := pValue(1, 1000, 1000, 1e6, 400)
		p5 := pValue(5, 1000, 1000, 1e6, 400)
		assert.Less(t, p5, p1)
	})

	t.Run("larger kmer space is more significant", func(t *testing.T) {
		small := pValue(3, 1000, 1000, 1e6, 400)
		large := pValue(3, 1000, 1000, 1e12, 400)
		assert.Less(t, large, small)
	})
}
