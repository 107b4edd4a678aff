package join

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanRounds(t *testing.T) {
	tests := []struct {
		name       string
		count      int
		sketchSize int
		budget     uint64
		wantRounds int
	}{
		{name: "empty collection", count: 0, sketchSize: 400, budget: 1 << 25, wantRounds: 0},
		{name: "small collection is one round", count: 100, sketchSize: 400, budget: 1 << 25, wantRounds: 1},
		{name: "zero budget uses default", count: 100, sketchSize: 400, budget: 0, wantRounds: 1},
		{name: "tight budget splits", count: 1000, sketchSize: 400, budget: 100_000, wantRounds: 2},
		{name: "rounds capped at count", count: 3, sketchSize: 400, budget: 1, wantRounds: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rounds := PlanRounds(tt.count, tt.sketchSize, tt.budget)
			assert.Len(t, rounds, tt.wantRounds)
		})
	}
}

func TestPlanRoundsCoverContiguously(t *testing.T) {
	for _, count := range []int{1, 2, 7, 100, 999, 1000, 1001} {
		rounds := PlanRounds(count, 400, 50_000)
		require.NotEmpty(t, rounds)

		assert.Equal(t, 0, rounds[0].Start)
		assert.Equal(t, count, rounds[len(rounds)-1].End, "count=%d", count)
		for i := 1; i < len(rounds); i++ {
			assert.Equal(t, rounds[i-1].End, rounds[i].Start, "count=%d round=%d", count, i)
		}
		for _, r := range rounds {
			assert.Less(t, r.Start, r.End)
		}
	}
}
