package bench

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aryankumar/pdaxpy/internal/executor"
	"github.com/aryankumar/pdaxpy/internal/util"
)

// Params describes one measurement
type Params struct {
	Size    int
	Workers int
	Alpha   float64
	YOffset float64
	Repeat  int

	// Trace, when set, receives the vectors before and after every run
	Trace      io.Writer
	TraceLimit int

	// BeforeRun, when set, is called with the zero-based run index before each run
	BeforeRun func(run int)
}

// Measurement is the outcome of running one executor Repeat times
type Measurement struct {
	Backend  string          `json:"backend" yaml:"backend"`
	Policy   string          `json:"policy" yaml:"policy"`
	Size     int             `json:"size" yaml:"size"`
	Workers  int             `json:"workers" yaml:"workers"`
	Alpha    float64         `json:"alpha" yaml:"alpha"`
	Runs     []time.Duration `json:"runs" yaml:"runs"`
	Verified bool            `json:"verified" yaml:"verified"`
	Err      error           `json:"-" yaml:"-"`

	// Error is Err rendered for serialization
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Average returns the mean run time
func (m Measurement) Average() time.Duration {
	if len(m.Runs) == 0 {
		return 0
	}

	var total time.Duration
	for _, d := range m.Runs {
		total += d
	}
	return total / time.Duration(len(m.Runs))
}

// Min returns the fastest run
func (m Measurement) Min() time.Duration {
	if len(m.Runs) == 0 {
		return 0
	}

	least := m.Runs[0]
	for _, d := range m.Runs[1:] {
		if d < least {
			least = d
		}
	}
	return least
}

// Max returns the slowest run
func (m Measurement) Max() time.Duration {
	var most time.Duration
	for _, d := range m.Runs {
		if d > most {
			most = d
		}
	}
	return most
}

// Measure runs exec Repeat times on fresh vectors, timing and verifying each run.
// It stops at the first failing run or when ctx is cancelled between runs.
func Measure(ctx context.Context, exec executor.Executor, p Params) Measurement {
	repeat := p.Repeat
	if repeat < 1 {
		repeat = 1
	}

	m := Measurement{
		Backend:  exec.Backend().String(),
		Policy:   exec.Policy().String(),
		Size:     p.Size,
		Workers:  p.Workers,
		Alpha:    p.Alpha,
		Runs:     make([]time.Duration, 0, repeat),
		Verified: true,
	}

	for i := 0; i < repeat; i++ {
		if err := ctx.Err(); err != nil {
			m.fail(err)
			return m
		}

		if p.BeforeRun != nil {
			p.BeforeRun(i)
		}

		v := NewVectors(p.Size, p.YOffset)
		p.trace("before", i, v)

		start := time.Now()
		err := exec.Run(p.Size, p.Alpha, v.X, v.Y, p.Workers)
		elapsed := time.Since(start)

		if err != nil {
			m.fail(util.WrapErrorf(err, "run %d", i+1))
			return m
		}
		m.Runs = append(m.Runs, elapsed)
		p.trace("after", i, v)

		if err := Verify(p.Alpha, p.YOffset, v); err != nil {
			m.fail(util.WrapErrorf(err, "run %d", i+1))
			return m
		}
	}

	return m
}

func (m *Measurement) fail(err error) {
	m.Verified = false
	m.Err = err
	m.Error = err.Error()
}

func (p Params) trace(stage string, run int, v *Vectors) {
	if p.Trace == nil {
		return
	}
	fmt.Fprintf(p.Trace, "run %d, %s update:\n", run+1, stage)
	_ = DumpVectors(p.Trace, v, p.TraceLimit)
}
