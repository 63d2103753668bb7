package executor

import (
	"fmt"
	"testing"
)

// BenchmarkExecutor_Run benchmarks each backend with different worker counts
func BenchmarkExecutor_Run(b *testing.B) {
	const n = 1 << 20
	workerCounts := []int{1, 2, 4, 8, 16}

	for _, backend := range Backends() {
		for _, workers := range workerCounts {
			b.Run(fmt.Sprintf("%s/workers_%d", backend, workers), func(b *testing.B) {
				exec, err := New(backend, WithLogger(quietLogger()), WithPolicy(PolicyPropagate))
				if err != nil {
					b.Fatal(err)
				}
				defer exec.Close()

				x, y := testVectors(n)

				b.SetBytes(int64(n * 8 * 3))
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					if err := exec.Run(n, 1.37, x, y, workers); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

// BenchmarkExecutor_SmallWork measures orchestration overhead when the kernel is trivial
func BenchmarkExecutor_SmallWork(b *testing.B) {
	for _, backend := range Backends() {
		b.Run(backend.String(), func(b *testing.B) {
			exec, err := New(backend, WithLogger(quietLogger()), WithPolicy(PolicyPropagate))
			if err != nil {
				b.Fatal(err)
			}
			defer exec.Close()

			x, y := testVectors(64)

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = exec.Run(64, 1.37, x, y, 8)
			}
		})
	}
}

// BenchmarkObserverOverhead benchmarks the per-range callback cost
func BenchmarkObserverOverhead(b *testing.B) {
	const n = 1 << 16

	b.Run("WithObserver", func(b *testing.B) {
		exec, _ := New(BackendManaged, WithLogger(quietLogger()), WithObserver(func(Result) {}))
		x, y := testVectors(n)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = exec.Run(n, 1.37, x, y, 4)
		}
	})

	b.Run("WithoutObserver", func(b *testing.B) {
		exec, _ := New(BackendManaged, WithLogger(quietLogger()))
		x, y := testVectors(n)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = exec.Run(n, 1.37, x, y, 4)
		}
	})
}
