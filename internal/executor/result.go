package executor

import (
	"fmt"
	"strings"
	"time"

	"github.com/aryankumar/pdaxpy/internal/partition"
)

// InlineWorker is the Worker index reported for ranges run on the calling goroutine
const InlineWorker = -1

// Result describes one completed range
type Result struct {
	// Worker is the index of the worker that ran the range, or InlineWorker
	Worker int

	// Range is the half-open index interval that was updated
	Range partition.Range

	// Inline is true when the range ran on the calling goroutine
	Inline bool

	// Leftover is true for the trailing n % workers range
	Leftover bool

	// Duration is how long the kernel took on this range
	Duration time.Duration

	// Err is non-nil if the range was not fully updated
	Err error
}

// Observer receives a Result for every range of every Run
type Observer func(Result)

// CountFailed returns the number of failed results (has error)
func CountFailed(results []Result) int {
	count := 0
	for _, r := range results {
		if r.Err != nil {
			count++
		}
	}
	return count
}

// FilterFailed returns only the failed results
func FilterFailed(results []Result) []Result {
	filtered := make([]Result, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// TotalElements returns the number of indices covered by the successful results
func TotalElements(results []Result) int {
	total := 0
	for _, r := range results {
		if r.Err == nil {
			total += r.Range.Len()
		}
	}
	return total
}

// AverageDuration calculates the average duration of all results
func AverageDuration(results []Result) time.Duration {
	if len(results) == 0 {
		return 0
	}

	var total time.Duration
	for _, r := range results {
		total += r.Duration
	}

	return total / time.Duration(len(results))
}

// MaxDuration returns the maximum duration among all results
func MaxDuration(results []Result) time.Duration {
	if len(results) == 0 {
		return 0
	}

	max := results[0].Duration
	for _, r := range results {
		if r.Duration > max {
			max = r.Duration
		}
	}
	return max
}

// MinDuration returns the minimum duration among all results
func MinDuration(results []Result) time.Duration {
	if len(results) == 0 {
		return 0
	}

	min := results[0].Duration
	for _, r := range results {
		if r.Duration < min {
			min = r.Duration
		}
	}
	return min
}

// Summary provides a summary of range results
type Summary struct {
	Ranges      int
	Inline      int
	Failed      int
	Elements    int
	AvgDuration time.Duration
	MaxDuration time.Duration
	MinDuration time.Duration
}

// Summarize creates a summary of the results
func Summarize(results []Result) Summary {
	inline := 0
	for _, r := range results {
		if r.Inline {
			inline++
		}
	}

	return Summary{
		Ranges:      len(results),
		Inline:      inline,
		Failed:      CountFailed(results),
		Elements:    TotalElements(results),
		AvgDuration: AverageDuration(results),
		MaxDuration: MaxDuration(results),
		MinDuration: MinDuration(results),
	}
}

// String returns a human-readable string representation of the summary
func (s Summary) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Ranges: %d, ", s.Ranges))
	sb.WriteString(fmt.Sprintf("Inline: %d, ", s.Inline))
	sb.WriteString(fmt.Sprintf("Failed: %d, ", s.Failed))
	sb.WriteString(fmt.Sprintf("Elements: %d", s.Elements))

	if s.Ranges > 0 {
		sb.WriteString(fmt.Sprintf(", Avg: %s", s.AvgDuration.Round(time.Microsecond)))
		sb.WriteString(fmt.Sprintf(", Max: %s", s.MaxDuration.Round(time.Microsecond)))
		sb.WriteString(fmt.Sprintf(", Min: %s", s.MinDuration.Round(time.Microsecond)))
	}

	return sb.String()
}
