// Package kernel implements the serial DAXPY kernel, y = a*x + y, over a
// half-open index range.
//
// The kernel performs no bounds validation beyond what the Go runtime does on
// slicing: callers (normally the executor, via a partition plan) guarantee
// 0 <= from <= to <= len(x), len(y).
package kernel

// Apply sets y[i] = a*x[i] + y[i] for every i in [from, to).
// Only y[from:to] is written.
func Apply(from, to int, a float64, x, y []float64) {
	if from >= to {
		return
	}

	xs := x[from:to]
	ys := y[from:to:to]
	for i := range ys {
		// The conversion rounds the product, so the compiler never fuses it into an FMA.
		ys[i] = float64(a*xs[i]) + ys[i]
	}
}

// ApplyAll runs Apply over [0, n) on the calling goroutine.
func ApplyAll(n int, a float64, x, y []float64) {
	Apply(0, n, a, x, y)
}
