package executor

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aryankumar/pdaxpy/internal/partition"
)

func sampleResults() []Result {
	return []Result{
		{Worker: 0, Range: partition.Range{From: 0, To: 3}, Duration: 10 * time.Millisecond},
		{Worker: 1, Range: partition.Range{From: 3, To: 6}, Duration: 30 * time.Millisecond, Err: errors.New("boom")},
		{Worker: 2, Range: partition.Range{From: 6, To: 9}, Duration: 20 * time.Millisecond},
		{Worker: InlineWorker, Range: partition.Range{From: 9, To: 10}, Inline: true, Leftover: true, Duration: 5 * time.Millisecond},
	}
}

func TestCountFailed(t *testing.T) {
	tests := []struct {
		name     string
		results  []Result
		expected int
	}{
		{
			name:     "empty results",
			results:  []Result{},
			expected: 0,
		},
		{
			name:     "mixed",
			results:  sampleResults(),
			expected: 1,
		},
		{
			name: "all failed",
			results: []Result{
				{Err: errors.New("error1")},
				{Err: errors.New("error2")},
			},
			expected: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CountFailed(tt.results)
			if got != tt.expected {
				t.Errorf("CountFailed() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestFilterFailed(t *testing.T) {
	failed := FilterFailed(sampleResults())

	if len(failed) != 1 {
		t.Fatalf("expected 1 failed result, got %d", len(failed))
	}
	if failed[0].Worker != 1 {
		t.Errorf("expected worker 1, got %d", failed[0].Worker)
	}
}

func TestTotalElements(t *testing.T) {
	if got := TotalElements(sampleResults()); got != 7 {
		t.Errorf("TotalElements() = %d, want 7", got)
	}
	if got := TotalElements(nil); got != 0 {
		t.Errorf("TotalElements(nil) = %d, want 0", got)
	}
}

func TestDurations(t *testing.T) {
	tests := []struct {
		name    string
		results []Result
		avg     time.Duration
		max     time.Duration
		min     time.Duration
	}{
		{
			name:    "empty",
			results: nil,
		},
		{
			name:    "sample",
			results: sampleResults(),
			avg:     65 * time.Millisecond / 4,
			max:     30 * time.Millisecond,
			min:     5 * time.Millisecond,
		},
		{
			name:    "single",
			results: []Result{{Duration: time.Second}},
			avg:     time.Second,
			max:     time.Second,
			min:     time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AverageDuration(tt.results); got != tt.avg {
				t.Errorf("AverageDuration() = %v, want %v", got, tt.avg)
			}
			if got := MaxDuration(tt.results); got != tt.max {
				t.Errorf("MaxDuration() = %v, want %v", got, tt.max)
			}
			if got := MinDuration(tt.results); got != tt.min {
				t.Errorf("MinDuration() = %v, want %v", got, tt.min)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	summary := Summarize(sampleResults())

	if summary.Ranges != 4 {
		t.Errorf("expected 4 ranges, got %d", summary.Ranges)
	}
	if summary.Inline != 1 {
		t.Errorf("expected 1 inline, got %d", summary.Inline)
	}
	if summary.Failed != 1 {
		t.Errorf("expected 1 failed, got %d", summary.Failed)
	}
	if summary.Elements != 7 {
		t.Errorf("expected 7 elements, got %d", summary.Elements)
	}
	if summary.MaxDuration != 30*time.Millisecond {
		t.Errorf("expected max 30ms, got %v", summary.MaxDuration)
	}
}

func TestSummary_String(t *testing.T) {
	s := Summarize(sampleResults()).String()

	for _, want := range []string{"Ranges: 4", "Inline: 1", "Failed: 1", "Elements: 7", "Max: 30ms"} {
		if !strings.Contains(s, want) {
			t.Errorf("expected %q in %q", want, s)
		}
	}
}

func TestSummary_String_Empty(t *testing.T) {
	s := Summarize(nil).String()

	if strings.Contains(s, "Avg") {
		t.Errorf("empty summary should not include durations: %q", s)
	}
	if !strings.Contains(s, "Ranges: 0") {
		t.Errorf("unexpected summary: %q", s)
	}
}
