package executor

import (
	"fmt"

	"github.com/aryankumar/pdaxpy/internal/partition"
	"github.com/aryankumar/pdaxpy/internal/util"
	"github.com/sourcegraph/conc"
)

// managedLauncher runs one goroutine per range under a conc.WaitGroup,
// which joins all of them and re-raises any panic as a value
type managedLauncher struct{}

func (managedLauncher) launch(ranges []partition.Range, work workFunc) error {
	errs := make([]error, len(ranges))

	var wg conc.WaitGroup
	for i, r := range ranges {
		wg.Go(func() {
			errs[i] = work(i, r)
		})
	}

	// errs is safe to read: every write happens before Wait returns.
	if recovered := wg.WaitAndRecover(); recovered != nil {
		return fmt.Errorf("%w: %w", util.ErrWorkerFailed, recovered.AsError())
	}

	return util.CombineErrors(errs...)
}
