// Package partition splits n independent units of work into contiguous,
// non-overlapping index ranges, one per worker, plus an optional leftover
// range for the remainder n % workers.
package partition

import (
	"fmt"
)

// Range is a half-open index interval [From, To).
type Range struct {
	From int `json:"from" yaml:"from"`
	To   int `json:"to" yaml:"to"`
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	return r.To - r.From
}

// Empty reports whether the range covers no indices.
func (r Range) Empty() bool {
	return r.To <= r.From
}

// String returns the range in interval notation.
func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.From, r.To)
}

// Plan is the partitioning of [0, N) for one invocation.
// Ranges are handed to workers; Leftover, when non-empty, runs on the
// calling goroutine after every worker has joined.
type Plan struct {
	// N is the total work size
	N int `json:"n" yaml:"n"`

	// Workers is the effective worker count after clamping
	Workers int `json:"workers" yaml:"workers"`

	// Ranges holds one equal-size range per worker, in index order
	Ranges []Range `json:"ranges" yaml:"ranges"`

	// Leftover is [Workers*size, N) when N is not a multiple of Workers
	Leftover Range `json:"leftover" yaml:"leftover"`
}

// Compute builds the plan for n units of work and nt requested workers.
//
//   - n <= 0: empty plan
//   - n == 1 or nt <= 1: one range [0, n), run serially
//   - 0 < n < nt: nt is clamped to n, one index per worker
//   - otherwise: nt ranges of n/nt indices, leftover [nt*(n/nt), n) if n%nt != 0
func Compute(n, nt int) Plan {
	if n <= 0 {
		return Plan{}
	}

	if n == 1 || nt <= 1 {
		return Plan{
			N:       n,
			Workers: 1,
			Ranges:  []Range{{From: 0, To: n}},
		}
	}

	if n < nt {
		nt = n
	}

	size := n / nt
	ranges := make([]Range, nt)
	for i := range ranges {
		ranges[i] = Range{From: i * size, To: (i + 1) * size}
	}

	plan := Plan{
		N:       n,
		Workers: nt,
		Ranges:  ranges,
	}

	if n%nt != 0 {
		plan.Leftover = Range{From: nt * size, To: n}
	}

	return plan
}

// Empty reports whether the plan has no work.
func (p Plan) Empty() bool {
	return len(p.Ranges) == 0 && p.Leftover.Empty()
}

// Serial reports whether the plan is a single range with no leftover, in
// which case no worker needs to be spawned.
func (p Plan) Serial() bool {
	return len(p.Ranges) == 1 && p.Leftover.Empty()
}

// HasLeftover reports whether a trailing range must run after the join.
func (p Plan) HasLeftover() bool {
	return !p.Leftover.Empty()
}

// WorkSize returns the size of each worker range, or 0 for an empty plan.
func (p Plan) WorkSize() int {
	if len(p.Ranges) == 0 {
		return 0
	}
	return p.Ranges[0].Len()
}

// All returns the worker ranges followed by the leftover, if any.
func (p Plan) All() []Range {
	all := make([]Range, 0, len(p.Ranges)+1)
	all = append(all, p.Ranges...)
	if p.HasLeftover() {
		all = append(all, p.Leftover)
	}
	return all
}

// Validate checks that the ranges cover [0, N) exactly once, in order.
func (p Plan) Validate() error {
	next := 0
	for i, r := range p.All() {
		if r.From != next {
			if r.From < next {
				return fmt.Errorf("range %d %s overlaps previous range ending at %d", i, r, next)
			}
			return fmt.Errorf("gap [%d,%d) before range %d %s", next, r.From, i, r)
		}
		if r.To < r.From {
			return fmt.Errorf("range %d %s is inverted", i, r)
		}
		next = r.To
	}

	if next != p.N {
		return fmt.Errorf("ranges end at %d, want %d", next, p.N)
	}
	return nil
}
