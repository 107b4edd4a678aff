package join

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/hupe1980/sketchdist/sketch"
)

// compareSketches estimates the distance between a reference and a query
// sketch and applies the acceptance thresholds. It reports ok=false when
// the pair does not qualify.
//
// The Jaccard estimate comes from a bounded sorted-merge over the two
// ascending hash lists: the merge walks both cursors until sketchSize
// comparisons have been consumed or a list runs out, counting shared
// values. If the merge exhausts early the union is completed virtually
// from the unconsumed tails, clamped to sketchSize, so denom never
// exceeds the sketch capacity.
func compareSketches(ref, qry *sketch.Record, sketchSize, kmerSize int, kmerSpace float64, t Thresholds) (Pair, bool) {
	var i, j, common, denom int

	refHashes := ref.Hashes
	qryHashes := qry.Hashes

	for denom < sketchSize && i < len(refHashes) && j < len(qryHashes) {
		switch {
		case refHashes[i] < qryHashes[j]:
			i++
		case qryHashes[j] < refHashes[i]:
			j++
		default:
			i++
			j++
			common++
		}
		denom++
	}

	if denom < sketchSize {
		// Complete the union operation if possible.
		if i < len(refHashes) {
			denom += len(refHashes) - i
		}
		if j < len(qryHashes) {
			denom += len(qryHashes) - j
		}
		if denom > sketchSize {
			denom = sketchSize
		}
	}

	jaccard := float64(common) / float64(denom)

	var distance float64
	switch {
	case common == denom: // avoid -0
		distance = 0
	case common == 0: // avoid -inf
		distance = 1.
	default:
		distance = -math.Log(2*jaccard/(1.+jaccard)) / float64(kmerSize)
	}

	if distance > t.MaxDistance || distance == 1 {
		return Pair{}, false
	}

	p := pValue(common, ref.Length, qry.Length, kmerSpace, denom)
	if p > t.MaxPValue {
		return Pair{}, false
	}

	return Pair{
		Distance: distance,
		PValue:   p,
		Common:   common,
		Denom:    denom,
	}, true
}

// pValue is the one-sided significance of observing at least x shared
// min-hashes under a null model of random k-mer collisions: binomial
// trials equal to the comparison denominator, success probability derived
// from the k-mer space and the two sequence lengths.
func pValue(x int, lengthRef, lengthQuery uint64, kmerSpace float64, denom int) float64 {
	if x == 0 {
		return 1.
	}

	pX := 1. / (1. + kmerSpace/float64(lengthRef))
	pY := 1. / (1. + kmerSpace/float64(lengthQuery))
	r := pX * pY / (pX + pY - pX*pY)

	bin := distuv.Binomial{N: float64(denom), P: r}
	return bin.Survival(float64(x - 1))
}
