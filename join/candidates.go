package join

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/sketchdist/sketch"
)

// candidates probes the round's index with every hash of query sketch q
// and returns the distinct reference indices sharing at least one hash,
// restricted to indices strictly below q. The bitmap iterates ascending,
// which fixes the reference order of the query's results.
//
// This is the join's sole pruning step: a pair with zero shared hashes is
// never scored, and the candidate set is an exact superset of all pairs
// with nonzero overlap.
func candidates(c *sketch.Collection, ix *invertedIndex, q int) *roaring.Bitmap {
	set := roaring.New()
	for _, h := range c.Record(q).Hashes {
		for _, idx := range ix.postings(h) {
			if int(idx) < q {
				set.Add(idx)
			}
		}
	}
	return set
}
