package bench

import (
	"fmt"

	"github.com/aryankumar/pdaxpy/internal/kernel"
	"github.com/aryankumar/pdaxpy/internal/util"
)

// maxReported caps how many mismatches are recorded individually
const maxReported = 10

// Verify checks that v holds exactly what one serial DAXPY pass with scalar a
// produces from y[i] = x[i] + yOffset, i.e. y[i] == a*x[i] + (x[i] + yOffset)
// bit for bit. Mismatches are returned as a *util.MultiError wrapping
// util.ErrVerification.
func Verify(a, yOffset float64, v *Vectors) error {
	expected := make([]float64, len(v.Y))
	for i := range expected {
		expected[i] = v.X[i] + yOffset
	}
	kernel.ApplyAll(len(expected), a, v.X, expected)

	var errs util.MultiError
	mismatches := 0

	for i, want := range expected {
		if v.Y[i] == want {
			continue
		}

		mismatches++
		if mismatches <= maxReported {
			errs.Add(fmt.Errorf("%w: y[%d] = %g, want %g", util.ErrVerification, i, v.Y[i], want))
		}
	}

	if mismatches > maxReported {
		errs.Add(fmt.Errorf("%w: %d further mismatches", util.ErrVerification, mismatches-maxReported))
	}

	return errs.ErrorOrNil()
}
