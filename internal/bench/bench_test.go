package bench

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aryankumar/pdaxpy/internal/executor"
	"github.com/aryankumar/pdaxpy/internal/kernel"
	"github.com/aryankumar/pdaxpy/internal/partition"
	"github.com/aryankumar/pdaxpy/internal/util"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewVectors(t *testing.T) {
	v := NewVectors(4, 3.25)

	assert.Equal(t, []float64{0, 1, 2, 3}, v.X)
	assert.Equal(t, []float64{3.25, 4.25, 5.25, 6.25}, v.Y)
	assert.Equal(t, 4, v.Len())
}

func TestNewVectors_NonPositive(t *testing.T) {
	assert.Equal(t, 0, NewVectors(0, 1).Len())
	assert.Equal(t, 0, NewVectors(-3, 1).Len())
}

func TestVectors_Clone(t *testing.T) {
	v := NewVectors(3, 1)
	c := v.Clone()
	c.Y[0] = 42

	assert.Equal(t, 1.0, v.Y[0])
	assert.Equal(t, v.X, c.X)
}

func TestVerify(t *testing.T) {
	const a, off = 1.37, 3.25

	v := NewVectors(1000, off)
	kernel.ApplyAll(v.Len(), a, v.X, v.Y)
	require.NoError(t, Verify(a, off, v))
}

func TestVerify_Untouched(t *testing.T) {
	v := NewVectors(100, 3.25)

	err := Verify(1.37, 3.25, v)
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrVerification))

	var multi *util.MultiError
	require.True(t, errors.As(err, &multi))
	// index 0 matches since x[0] = 0
	assert.Equal(t, maxReported+1, multi.Len())
	assert.Contains(t, multi.Errors[maxReported].Error(), "89 further mismatches")
}

func TestVerify_SingleMismatch(t *testing.T) {
	v := NewVectors(10, 0)
	kernel.ApplyAll(10, 2, v.X, v.Y)
	v.Y[7] = -1

	err := Verify(2, 0, v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "y[7] = -1, want 21")
}

func TestVerify_OneULPDetected(t *testing.T) {
	v := NewVectors(8, 3.25)
	kernel.ApplyAll(8, 1.37, v.X, v.Y)
	v.Y[5] = math.Nextafter(v.Y[5], math.Inf(1))

	err := Verify(1.37, 3.25, v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "y[5]")
}

func TestVerify_PartialUpdateDetected(t *testing.T) {
	// Skipping the trailing range must be caught.
	v := NewVectors(10, 3.25)
	kernel.Apply(0, 9, 1.37, v.X, v.Y)

	err := Verify(1.37, 3.25, v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "y[9]")
}

func TestMeasure(t *testing.T) {
	for _, backend := range executor.Backends() {
		t.Run(backend.String(), func(t *testing.T) {
			exec, err := executor.New(backend, executor.WithLogger(quietLogger()))
			require.NoError(t, err)
			defer exec.Close()

			m := Measure(context.Background(), exec, Params{
				Size:    38525,
				Workers: 4,
				Alpha:   1.37,
				YOffset: 3.25,
				Repeat:  3,
			})

			require.NoError(t, m.Err)
			assert.True(t, m.Verified)
			assert.Len(t, m.Runs, 3)
			assert.Equal(t, backend.String(), m.Backend)
			assert.Equal(t, exec.Policy().String(), m.Policy)
			assert.LessOrEqual(t, m.Min(), m.Average())
			assert.LessOrEqual(t, m.Average(), m.Max())
		})
	}
}

func TestMeasure_RepeatDefaultsToOne(t *testing.T) {
	exec, err := executor.New(executor.BackendManaged, executor.WithLogger(quietLogger()))
	require.NoError(t, err)

	m := Measure(context.Background(), exec, Params{Size: 10, Workers: 3, Alpha: 2})
	assert.Len(t, m.Runs, 1)
	assert.True(t, m.Verified)
}

func TestMeasure_EmptyVectors(t *testing.T) {
	exec, err := executor.New(executor.BackendThread, executor.WithLogger(quietLogger()))
	require.NoError(t, err)

	m := Measure(context.Background(), exec, Params{Size: 0, Workers: 4, Alpha: 1, Repeat: 2})
	assert.True(t, m.Verified)
	assert.Len(t, m.Runs, 2)
}

func TestMeasure_Cancelled(t *testing.T) {
	exec, err := executor.New(executor.BackendManaged, executor.WithLogger(quietLogger()))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := Measure(ctx, exec, Params{Size: 100, Workers: 2, Alpha: 1, Repeat: 5})
	assert.False(t, m.Verified)
	assert.ErrorIs(t, m.Err, context.Canceled)
	assert.Empty(t, m.Runs)
	assert.NotEmpty(t, m.Error)
}

type failingExecutor struct {
	executor.Executor
}

func (failingExecutor) Run(int, float64, []float64, []float64, int) error {
	return util.ErrWorkerFailed
}

func TestMeasure_RunError(t *testing.T) {
	exec, err := executor.New(executor.BackendManaged, executor.WithLogger(quietLogger()))
	require.NoError(t, err)

	m := Measure(context.Background(), failingExecutor{exec}, Params{Size: 10, Workers: 2, Alpha: 1, Repeat: 3})
	assert.False(t, m.Verified)
	assert.ErrorIs(t, m.Err, util.ErrWorkerFailed)
	assert.Contains(t, m.Error, "run 1")
	assert.Empty(t, m.Runs)
}

func TestMeasure_Trace(t *testing.T) {
	exec, err := executor.New(executor.BackendManaged, executor.WithLogger(quietLogger()))
	require.NoError(t, err)

	var buf bytes.Buffer
	m := Measure(context.Background(), exec, Params{
		Size: 3, Workers: 2, Alpha: 2, Repeat: 1,
		Trace: &buf, TraceLimit: 2,
	})
	require.NoError(t, m.Err)

	assert.Equal(t, "run 1, before update:\n"+
		"x[0] = 0\ty[0] = 0\nx[1] = 1\ty[1] = 1\n... 1 more\n"+
		"run 1, after update:\n"+
		"x[0] = 0\ty[0] = 0\nx[1] = 1\ty[1] = 3\n... 1 more\n", buf.String())
}

func TestMeasure_BeforeRun(t *testing.T) {
	var mu sync.Mutex
	perRun := map[int]int{}
	current := -1

	exec, err := executor.New(executor.BackendPool,
		executor.WithLogger(quietLogger()),
		executor.WithObserver(func(executor.Result) {
			mu.Lock()
			perRun[current]++
			mu.Unlock()
		}))
	require.NoError(t, err)
	defer exec.Close()

	var runs []int
	m := Measure(context.Background(), exec, Params{
		Size: 10, Workers: 3, Alpha: 1, Repeat: 3,
		BeforeRun: func(run int) {
			mu.Lock()
			current = run
			mu.Unlock()
			runs = append(runs, run)
		},
	})
	require.NoError(t, m.Err)

	assert.Equal(t, []int{0, 1, 2}, runs)
	// three workers plus the inline leftover, per run
	assert.Equal(t, map[int]int{0: 4, 1: 4, 2: 4}, perRun)
}

func TestMeasurement_EmptyDurations(t *testing.T) {
	var m Measurement
	assert.Zero(t, m.Average())
	assert.Zero(t, m.Min())
	assert.Zero(t, m.Max())
}

func TestDebugObserver(t *testing.T) {
	var buf bytes.Buffer

	exec, err := executor.New(executor.BackendManaged,
		executor.WithLogger(quietLogger()),
		executor.WithObserver(DebugObserver(&buf)))
	require.NoError(t, err)

	v := NewVectors(10, 0)
	require.NoError(t, exec.Run(10, 1, v.X, v.Y, 3))

	out := buf.String()
	assert.Equal(t, 4, strings.Count(out, "\n"))
	assert.Contains(t, out, "inline (leftover): range "+partition.Range{From: 9, To: 10}.String())
	assert.Contains(t, out, "range [3,6) len=3")
}

func TestDumpVectors(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DumpVectors(&buf, NewVectors(5, 1), 2))

	assert.Equal(t, "x[0] = 0\ty[0] = 1\nx[1] = 1\ty[1] = 2\n... 3 more\n", buf.String())
}

func TestDumpVectors_All(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DumpVectors(&buf, NewVectors(2, 0.5), 0))

	assert.Equal(t, "x[0] = 0\ty[0] = 0.5\nx[1] = 1\ty[1] = 1.5\n", buf.String())
}

func BenchmarkMeasure(b *testing.B) {
	exec, err := executor.New(executor.BackendPool, executor.WithLogger(quietLogger()))
	if err != nil {
		b.Fatal(err)
	}
	defer exec.Close()

	p := Params{Size: 38525, Workers: 4, Alpha: 1.37, YOffset: 3.25, Repeat: 1}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Measure(context.Background(), exec, p)
	}
}
