package join

import (
	"math"

	"github.com/hupe1980/sketchdist/sketch"
)

// invertedIndex maps a hash value to the sketch indices of one round that
// contain it. Posting lists are in ascending index order because sketches
// are scanned in index order during the build. Built once per round by
// the orchestrator, then treated as immutable and shared by all workers.
type invertedIndex struct {
	slots map[uint64][]uint32
	round Round
}

func buildIndex(c *sketch.Collection, round Round) *invertedIndex {
	ix := &invertedIndex{
		slots: make(map[uint64][]uint32, (round.End-round.Start)*c.SketchSize()),
		round: round,
	}
	for i := round.Start; i < round.End; i++ {
		for _, h := range c.Record(i).Hashes {
			ix.slots[h] = append(ix.slots[h], uint32(i))
		}
	}
	return ix
}

func (ix *invertedIndex) postings(h uint64) []uint32 {
	return ix.slots[h]
}

// occupancyStats is the per-slot occupancy diagnostic over the full slot
// space. Slots absent from the map count as empty. Operator visibility
// only; never affects the join.
type occupancyStats struct {
	Mean     float64
	Stddev   float64
	Min      int
	Max      int
	EmptyPct int
}

func (ix *invertedIndex) occupancy(slotSpace uint64) occupancyStats {
	if slotSpace == 0 {
		return occupancyStats{}
	}

	var total, max int
	min := 0
	if uint64(len(ix.slots)) >= slotSpace {
		min = math.MaxInt
	}
	for _, postings := range ix.slots {
		n := len(postings)
		total += n
		if n > max {
			max = n
		}
		if n < min {
			min = n
		}
	}
	mean := float64(total) / float64(slotSpace)

	// The map can hold more distinct hashes than the nominal slot space;
	// round sizing targets roughly twice the budget. No slot is empty then.
	var empty uint64
	if uint64(len(ix.slots)) < slotSpace {
		empty = slotSpace - uint64(len(ix.slots))
	}

	var dev float64
	for _, postings := range ix.slots {
		dev += math.Pow(float64(len(postings))-mean, 2)
	}
	dev += float64(empty) * mean * mean
	dev = math.Sqrt(dev / float64(slotSpace))

	return occupancyStats{
		Mean:     mean,
		Stddev:   dev,
		Min:      min,
		Max:      max,
		EmptyPct: int(100 * empty / slotSpace),
	}
}
