package sketch

import (
	"fmt"
	"math"
)

// Record is one sequence's sketch: its display name, original length and
// the ascending-sorted list of retained min-hash values. Immutable once
// added to a Collection.
type Record struct {
	Name   string
	Length uint64
	Hashes []uint64
}

// Collection is an ordered set of sketches built with a single set of
// parameters. It is the unit the join engine operates on.
type Collection struct {
	params    Parameters
	use64     bool
	kmerSpace float64
	records   []Record
}

// NewCollection creates an empty collection for the given parameters.
func NewCollection(params Parameters) (*Collection, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Collection{
		params:    params,
		use64:     params.Use64(),
		kmerSpace: params.KmerSpace(),
	}, nil
}

// Add appends a sketch record. Records must be appended in input order;
// the index assigned is the current length.
func (c *Collection) Add(r Record) {
	c.records = append(c.records, r)
}

// Len returns the number of sketches.
func (c *Collection) Len() int { return len(c.records) }

// Record returns the sketch at index i.
func (c *Collection) Record(i int) *Record { return &c.records[i] }

// Params returns the sketching parameters the collection was built with.
func (c *Collection) Params() Parameters { return c.params }

// KmerSize returns the k-mer length.
func (c *Collection) KmerSize() int { return c.params.KmerSize }

// SketchSize returns the per-sketch hash capacity.
func (c *Collection) SketchSize() int { return c.params.SketchSize }

// Use64 reports whether hash values are 64-bit (as opposed to 32-bit
// values zero-extended to uint64).
func (c *Collection) Use64() bool { return c.use64 }

// KmerSpace returns the total k-mer space size, used by the significance
// model.
func (c *Collection) KmerSpace() float64 { return c.kmerSpace }

// RandomChance returns the probability that a random k-mer collides with
// record i, given its length.
func (c *Collection) RandomChance(i int) float64 {
	return 1. / (c.kmerSpace/float64(c.records[i].Length) + 1.)
}

// MinKmerSize returns the smallest k for which record i stays below the
// warning collision probability.
func (c *Collection) MinKmerSize(i int) int {
	w := c.params.Warning
	n := float64(c.records[i].Length)
	return int(math.Ceil(math.Log(n*(1.-w)/w) / math.Log(float64(c.params.Alphabet.Size()))))
}

// LengthAdvisory describes sequences long enough that random k-mer
// collisions become likely at the current k-mer size. Non-fatal; surfaced
// to the operator at the end of a run.
type LengthAdvisory struct {
	Count         int
	LongestName   string
	LongestLength uint64
	RandomChance  float64
	MinKmerSize   int
}

// Advisory scans the collection and reports the oversized-sequence
// advisory, or nil if every sequence is within the length threshold.
func (c *Collection) Advisory() *LengthAdvisory {
	threshold := c.params.LengthThreshold()

	var adv *LengthAdvisory
	for i := range c.records {
		length := c.records[i].Length
		if float64(length) <= threshold {
			continue
		}
		if adv == nil || length > adv.LongestLength {
			if adv == nil {
				adv = &LengthAdvisory{}
			}
			adv.LongestName = c.records[i].Name
			adv.LongestLength = length
			adv.RandomChance = c.RandomChance(i)
			adv.MinKmerSize = c.MinKmerSize(i)
		}
		adv.Count++
	}
	return adv
}

// ErrKmerSizeConflict is returned when an explicit k-mer size override is
// combined with a pre-built sketch carrying a different k-mer size.
type ErrKmerSizeConflict struct {
	Override int
	Sketch   int
}

func (e *ErrKmerSizeConflict) Error() string {
	return fmt.Sprintf("k-mer size %d conflicts with sketch file (k=%d); the value is inherited from the sketch", e.Override, e.Sketch)
}

// ErrSketchSizeConflict is returned when a sketch-size override is
// incompatible with a fixed-capacity pre-built sketch.
type ErrSketchSizeConflict struct {
	Override int
	Sketch   int
}

func (e *ErrSketchSizeConflict) Error() string {
	return fmt.Sprintf("sketch size %d conflicts with sketch file (s=%d); leave the option out to inherit it", e.Override, e.Sketch)
}
