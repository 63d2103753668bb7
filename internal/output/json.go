package output

import (
	"encoding/json"
	"io"

	"github.com/aryankumar/pdaxpy/internal/bench"
	"github.com/aryankumar/pdaxpy/internal/executor"
	"github.com/aryankumar/pdaxpy/internal/partition"
)

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	options *Options
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(opts *Options) *JSONFormatter {
	if opts == nil {
		opts = &Options{}
	}
	return &JSONFormatter{
		options: opts,
	}
}

// Format outputs a single data item as JSON
func (f *JSONFormatter) Format(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// FormatPlan outputs a partition plan as JSON
func (f *JSONFormatter) FormatPlan(w io.Writer, plan partition.Plan) error {
	return f.Format(w, planRecord(plan))
}

// FormatResults outputs per-range results as JSON
func (f *JSONFormatter) FormatResults(w io.Writer, results []executor.Result) error {
	output := make([]map[string]interface{}, len(results))
	for i, result := range results {
		output[i] = resultRecord(result)
	}
	return f.Format(w, output)
}

// FormatMeasurements outputs measurements as JSON
func (f *JSONFormatter) FormatMeasurements(w io.Writer, measurements []bench.Measurement) error {
	output := make([]map[string]interface{}, len(measurements))
	for i, m := range measurements {
		output[i] = measurementRecord(m)
	}
	return f.Format(w, output)
}
