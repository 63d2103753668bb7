// Package output provides formatters for displaying pdaxpy command results.
//
// The package supports multiple output formats (table, JSON, YAML) behind a
// single Formatter interface covering partition plans, per-range run results
// and benchmark measurements.
//
// # Basic Usage
//
//	formatter := output.NewFormatter(output.FormatTable, output.WithNoColor(true))
//
//	// Show how 10 elements split across 3 workers
//	formatter.FormatPlan(os.Stdout, partition.Compute(10, 3))
//
//	// Compare backends
//	formatter.FormatMeasurements(os.Stdout, measurements)
//
// # Formatters
//
// Table Formatter:
//   - Borderless tables with tab-separated columns
//   - Rows sorted by index range for run results
//   - Summary line (failures, elements, fastest configuration)
//   - Wide mode adds policy, alpha and error columns
//
// JSON and YAML Formatters emit maps with durations rendered as strings, so
// the output is stable for scripting.
//
// # Color Support
//
// Colors are enabled only for TTY outputs and can be disabled with
// WithNoColor(true). Backend names are cyan, failures red, durations blue.
package output
