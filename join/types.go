package join

// Pair is one accepted query/reference pair. Ref is always strictly less
// than Query; only the lower triangle of the symmetric matrix is emitted.
type Pair struct {
	Query    int
	Ref      int
	Distance float64
	PValue   float64
	Common   int
	Denom    int
}

// Result carries all accepted pairs for one query index, ordered by
// ascending reference index and confined to the references of the round
// the result was produced in. A Result with no pairs is still delivered
// to the writer (matrix output emits a row for it).
type Result struct {
	Query int
	Pairs []Pair
}

// Thresholds are the caller-supplied acceptance limits.
type Thresholds struct {
	// MaxDistance is the maximum reportable distance. A pair with a
	// distance of exactly 1 is always rejected regardless of this value.
	MaxDistance float64

	// MaxPValue is the maximum reportable significance.
	MaxPValue float64
}

// Stats summarizes one run.
type Stats struct {
	Rounds     int
	Queries    int64
	Candidates int64
	Accepted   int64
}
