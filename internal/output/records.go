package output

import (
	"time"

	"github.com/aryankumar/pdaxpy/internal/bench"
	"github.com/aryankumar/pdaxpy/internal/executor"
	"github.com/aryankumar/pdaxpy/internal/partition"
)

// The record helpers convert domain values into the map shape shared by the
// JSON and YAML formatters, with durations rendered as strings.

func rangeRecord(r partition.Range) map[string]interface{} {
	return map[string]interface{}{
		"from": r.From,
		"to":   r.To,
		"len":  r.Len(),
	}
}

func planRecord(plan partition.Plan) map[string]interface{} {
	ranges := make([]map[string]interface{}, len(plan.Ranges))
	for i, r := range plan.Ranges {
		ranges[i] = rangeRecord(r)
	}

	record := map[string]interface{}{
		"n":        plan.N,
		"workers":  plan.Workers,
		"workSize": plan.WorkSize(),
		"ranges":   ranges,
	}
	if plan.HasLeftover() {
		record["leftover"] = rangeRecord(plan.Leftover)
	}
	return record
}

func resultRecord(r executor.Result) map[string]interface{} {
	record := rangeRecord(r.Range)
	record["worker"] = r.Worker
	record["inline"] = r.Inline
	record["leftover"] = r.Leftover
	record["duration"] = formatDuration(r.Duration)

	if r.Err != nil {
		record["status"] = "failed"
		record["error"] = r.Err.Error()
	} else {
		record["status"] = "success"
	}
	return record
}

func measurementRecord(m bench.Measurement) map[string]interface{} {
	runs := make([]string, len(m.Runs))
	for i, d := range m.Runs {
		runs[i] = formatDuration(d)
	}

	record := map[string]interface{}{
		"backend":  m.Backend,
		"policy":   m.Policy,
		"size":     m.Size,
		"workers":  m.Workers,
		"alpha":    m.Alpha,
		"runs":     runs,
		"avg":      formatDuration(m.Average()),
		"min":      formatDuration(m.Min()),
		"max":      formatDuration(m.Max()),
		"verified": m.Verified,
	}
	if m.Err != nil {
		record["error"] = m.Err.Error()
	}
	return record
}

// formatDuration rounds to microseconds, keeping sub-microsecond values intact
func formatDuration(d time.Duration) string {
	if d >= time.Microsecond {
		d = d.Round(time.Microsecond)
	}
	return d.String()
}
