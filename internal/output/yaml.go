package output

import (
	"io"

	"github.com/aryankumar/pdaxpy/internal/bench"
	"github.com/aryankumar/pdaxpy/internal/executor"
	"github.com/aryankumar/pdaxpy/internal/partition"
	"gopkg.in/yaml.v3"
)

// YAMLFormatter formats output as YAML
type YAMLFormatter struct {
	options *Options
}

// NewYAMLFormatter creates a new YAML formatter
func NewYAMLFormatter(opts *Options) *YAMLFormatter {
	if opts == nil {
		opts = &Options{}
	}
	return &YAMLFormatter{
		options: opts,
	}
}

// Format outputs a single data item as YAML
func (f *YAMLFormatter) Format(w io.Writer, data interface{}) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	return encoder.Encode(data)
}

// FormatPlan outputs a partition plan as YAML
func (f *YAMLFormatter) FormatPlan(w io.Writer, plan partition.Plan) error {
	return f.Format(w, planRecord(plan))
}

// FormatResults outputs per-range results as YAML
func (f *YAMLFormatter) FormatResults(w io.Writer, results []executor.Result) error {
	output := make([]map[string]interface{}, len(results))
	for i, result := range results {
		output[i] = resultRecord(result)
	}
	return f.Format(w, output)
}

// FormatMeasurements outputs measurements as YAML
func (f *YAMLFormatter) FormatMeasurements(w io.Writer, measurements []bench.Measurement) error {
	output := make([]map[string]interface{}, len(measurements))
	for i, m := range measurements {
		output[i] = measurementRecord(m)
	}
	return f.Format(w, output)
}
