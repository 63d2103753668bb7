// Package bench is the measurement driver around the executor: it builds input
// vectors, times repeated runs and verifies every result against the serial formula.
package bench

import (
	"fmt"
	"io"
)

// Vectors is the x/y pair a measurement runs on
type Vectors struct {
	X []float64
	Y []float64
}

// NewVectors allocates n-element vectors with x[i] = i and y[i] = i + yOffset
func NewVectors(n int, yOffset float64) *Vectors {
	if n < 0 {
		n = 0
	}

	v := &Vectors{
		X: make([]float64, n),
		Y: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		v.X[i] = float64(i)
		v.Y[i] = float64(i) + yOffset
	}
	return v
}

// Len returns the number of elements
func (v *Vectors) Len() int {
	return len(v.X)
}

// Clone returns a deep copy
func (v *Vectors) Clone() *Vectors {
	c := &Vectors{
		X: make([]float64, len(v.X)),
		Y: make([]float64, len(v.Y)),
	}
	copy(c.X, v.X)
	copy(c.Y, v.Y)
	return c
}

// DumpVectors writes up to limit x/y pairs, one per line. limit <= 0 writes all.
func DumpVectors(w io.Writer, v *Vectors, limit int) error {
	n := v.Len()
	if limit > 0 && limit < n {
		n = limit
	}

	for i := 0; i < n; i++ {
		if _, err := fmt.Fprintf(w, "x[%d] = %g\ty[%d] = %g\n", i, v.X[i], i, v.Y[i]); err != nil {
			return err
		}
	}

	if n < v.Len() {
		if _, err := fmt.Fprintf(w, "... %d more\n", v.Len()-n); err != nil {
			return err
		}
	}
	return nil
}
