package partition

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name         string
		n, nt        int
		wantWorkers  int
		wantRanges   []Range
		wantLeftover Range
	}{
		{
			name:        "empty work",
			n:           0,
			nt:          4,
			wantWorkers: 0,
		},
		{
			name:        "negative work is empty",
			n:           -3,
			nt:          4,
			wantWorkers: 0,
		},
		{
			name:        "single element",
			n:           1,
			nt:          8,
			wantWorkers: 1,
			wantRanges:  []Range{{0, 1}},
		},
		{
			name:        "single worker",
			n:           10,
			nt:          1,
			wantWorkers: 1,
			wantRanges:  []Range{{0, 10}},
		},
		{
			name:        "zero workers runs serially",
			n:           10,
			nt:          0,
			wantWorkers: 1,
			wantRanges:  []Range{{0, 10}},
		},
		{
			name:        "more workers than work",
			n:           3,
			nt:          8,
			wantWorkers: 3,
			wantRanges:  []Range{{0, 1}, {1, 2}, {2, 3}},
		},
		{
			name:        "even split",
			n:           8,
			nt:          4,
			wantWorkers: 4,
			wantRanges:  []Range{{0, 2}, {2, 4}, {4, 6}, {6, 8}},
		},
		{
			name:         "uneven split has leftover",
			n:            10,
			nt:           3,
			wantWorkers:  3,
			wantRanges:   []Range{{0, 3}, {3, 6}, {6, 9}},
			wantLeftover: Range{9, 10},
		},
		{
			name:         "seven over two",
			n:            7,
			nt:           2,
			wantWorkers:  2,
			wantRanges:   []Range{{0, 3}, {3, 6}},
			wantLeftover: Range{6, 7},
		},
		{
			name:        "n equals nt",
			n:           4,
			nt:          4,
			wantWorkers: 4,
			wantRanges:  []Range{{0, 1}, {1, 2}, {2, 3}, {3, 4}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := Compute(tt.n, tt.nt)

			assert.Equal(t, tt.wantWorkers, plan.Workers)
			assert.Equal(t, tt.wantRanges, plan.Ranges)
			assert.Equal(t, tt.wantLeftover, plan.Leftover)
			assert.Equal(t, !tt.wantLeftover.Empty(), plan.HasLeftover())
		})
	}
}

func TestCompute_CoverageAndDisjointness(t *testing.T) {
	for n := 0; n <= 64; n++ {
		for nt := 0; nt <= 17; nt++ {
			plan := Compute(n, nt)
			require.NoError(t, plan.Validate(), "n=%d nt=%d", n, nt)

			hits := make([]int, n)
			for _, r := range plan.All() {
				for i := r.From; i < r.To; i++ {
					hits[i]++
				}
			}
			for i, h := range hits {
				require.Equal(t, 1, h, "n=%d nt=%d index %d", n, nt, i)
			}
		}
	}
}

func TestCompute_WorkerRangesAreEqualSize(t *testing.T) {
	for _, tc := range []struct{ n, nt int }{{100, 7}, {38525, 8}, {5, 5}, {9, 2}} {
		t.Run(fmt.Sprintf("n=%d,nt=%d", tc.n, tc.nt), func(t *testing.T) {
			plan := Compute(tc.n, tc.nt)
			size := plan.WorkSize()
			require.Positive(t, size)
			for _, r := range plan.Ranges {
				assert.Equal(t, size, r.Len())
			}
			assert.Equal(t, tc.n%plan.Workers, plan.Leftover.Len())
			assert.LessOrEqual(t, plan.Workers, tc.nt)
		})
	}
}

func TestCompute_FewerItemsThanWorkers(t *testing.T) {
	for n := 2; n < 16; n++ {
		plan := Compute(n, 16)
		assert.Len(t, plan.Ranges, n)
		assert.False(t, plan.HasLeftover())
		for _, r := range plan.Ranges {
			assert.Equal(t, 1, r.Len())
		}
	}
}

func TestPlan_Serial(t *testing.T) {
	assert.True(t, Compute(1, 4).Serial())
	assert.True(t, Compute(100, 1).Serial())
	assert.False(t, Compute(100, 2).Serial())
	assert.False(t, Compute(0, 2).Serial())
	assert.True(t, Compute(0, 2).Empty())
}

func TestPlan_All(t *testing.T) {
	plan := Compute(10, 3)
	assert.Equal(t, []Range{{0, 3}, {3, 6}, {6, 9}, {9, 10}}, plan.All())

	plan = Compute(9, 3)
	assert.Equal(t, []Range{{0, 3}, {3, 6}, {6, 9}}, plan.All())
}

func TestPlan_Validate(t *testing.T) {
	tests := []struct {
		name        string
		plan        Plan
		errContains string
	}{
		{
			name: "valid",
			plan: Plan{N: 4, Workers: 2, Ranges: []Range{{0, 2}, {2, 4}}},
		},
		{
			name:        "gap",
			plan:        Plan{N: 4, Workers: 2, Ranges: []Range{{0, 1}, {2, 4}}},
			errContains: "gap",
		},
		{
			name:        "overlap",
			plan:        Plan{N: 4, Workers: 2, Ranges: []Range{{0, 3}, {2, 4}}},
			errContains: "overlaps",
		},
		{
			name:        "short",
			plan:        Plan{N: 5, Workers: 2, Ranges: []Range{{0, 2}, {2, 4}}},
			errContains: "want 5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.plan.Validate()
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestRange_String(t *testing.T) {
	assert.Equal(t, "[3,6)", Range{3, 6}.String())
	assert.Equal(t, 3, Range{3, 6}.Len())
	assert.True(t, Range{4, 4}.Empty())
}
