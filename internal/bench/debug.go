package bench

import (
	"fmt"
	"io"
	"sync"

	"github.com/aryankumar/pdaxpy/internal/executor"
)

// DebugObserver returns an executor.Observer that prints every completed range to w.
// Writes are serialized, so it is safe to share across workers.
func DebugObserver(w io.Writer) executor.Observer {
	var mu sync.Mutex

	return func(r executor.Result) {
		mu.Lock()
		defer mu.Unlock()

		who := fmt.Sprintf("worker %d", r.Worker)
		if r.Inline {
			who = "inline"
		}
		if r.Leftover {
			who += " (leftover)"
		}

		status := "ok"
		if r.Err != nil {
			status = r.Err.Error()
		}

		fmt.Fprintf(w, "%s: range %s len=%d took %v: %s\n", who, r.Range, r.Range.Len(), r.Duration, status)
	}
}
