package join

// DefaultSlotBudget is the target inverted-index slot count per round.
// Round sizing keeps roundSize*sketchSize near this budget so index
// memory stays flat no matter how large the collection is.
const DefaultSlotBudget = uint64(1) << 25

// Round is a half-open index range [Start, End) over the reference
// collection.
type Round struct {
	Start int
	End   int
}

// PlanRounds partitions [0, count) into contiguous, non-overlapping
// rounds sized so one round's index stays within the slot budget. The
// round count is a coarse heuristic: count*sketchSize/budget/2, never
// less than one. The last round absorbs any division remainder so the
// union of all rounds always covers the full collection.
func PlanRounds(count, sketchSize int, budget uint64) []Round {
	if count <= 0 {
		return nil
	}
	if budget == 0 {
		budget = DefaultSlotBudget
	}

	rounds := int(uint64(count) * uint64(sketchSize) / budget / 2)
	if rounds < 1 {
		rounds = 1
	}
	if rounds > count {
		rounds = count
	}
	size := count / rounds

	out := make([]Round, 0, rounds)
	for i := 0; i < rounds; i++ {
		r := Round{Start: i * size, End: (i + 1) * size}
		if i == rounds-1 || r.End > count {
			r.End = count
		}
		out = append(out, r)
	}
	return out
}
