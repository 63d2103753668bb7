package output

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/aryankumar/pdaxpy/internal/bench"
	"github.com/aryankumar/pdaxpy/internal/executor"
	"github.com/aryankumar/pdaxpy/internal/partition"
	"github.com/olekukonko/tablewriter"
)

// TableFormatter formats output as a borderless, tab-separated table
type TableFormatter struct {
	options *Options
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(opts *Options) *TableFormatter {
	if opts == nil {
		opts = &Options{}
	}
	return &TableFormatter{
		options: opts,
	}
}

// Format outputs a single data item as a table
func (f *TableFormatter) Format(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case map[string]interface{}:
		return f.formatMap(f.createTable(w), v)
	case map[string]string:
		m := make(map[string]interface{}, len(v))
		for k, s := range v {
			m[k] = s
		}
		return f.formatMap(f.createTable(w), m)
	case string:
		fmt.Fprintln(w, v)
		return nil
	default:
		fmt.Fprintln(w, v)
		return nil
	}
}

// FormatPlan outputs one row per range, the leftover last
func (f *TableFormatter) FormatPlan(w io.Writer, plan partition.Plan) error {
	if plan.Empty() {
		fmt.Fprintln(w, "No data")
		return nil
	}

	colors := NewColorScheme(w, f.options.NoColor)
	table := f.createTable(w)
	f.setHeaders(table, []string{"INDEX", "FROM", "TO", "LEN", "KIND"}, colors)

	kind := "worker"
	if plan.Serial() {
		kind = "serial"
	}
	for i, r := range plan.Ranges {
		table.Append([]string{strconv.Itoa(i), strconv.Itoa(r.From), strconv.Itoa(r.To), strconv.Itoa(r.Len()), kind})
	}
	if plan.HasLeftover() {
		r := plan.Leftover
		table.Append([]string{"-", strconv.Itoa(r.From), strconv.Itoa(r.To), strconv.Itoa(r.Len()), colors.Warning("%s", "leftover")})
	}

	table.Render()

	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Plan: n=%d, workers=%d, size=%d, leftover=%d\n",
		plan.N, plan.Workers, plan.WorkSize(), plan.Leftover.Len())
	return nil
}

// FormatResults outputs the per-range results of one run, ordered by index
func (f *TableFormatter) FormatResults(w io.Writer, results []executor.Result) error {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results")
		return nil
	}

	sorted := make([]executor.Result, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Range.From < sorted[j].Range.From })

	colors := NewColorScheme(w, f.options.NoColor)
	table := f.createTable(w)

	headers := []string{"WORKER", "RANGE", "LEN", "STATUS", "DURATION"}
	if f.options.Wide {
		headers = append(headers, "ERROR")
	}
	f.setHeaders(table, headers, colors)

	for _, result := range sorted {
		table.Append(f.formatResultRow(result, colors))
	}

	table.Render()

	f.printResultSummary(w, sorted, colors)
	return nil
}

// formatResultRow formats a single result as a table row
func (f *TableFormatter) formatResultRow(result executor.Result, colors *ColorScheme) []string {
	worker := strconv.Itoa(result.Worker)
	if result.Inline {
		worker = "inline"
	}
	if result.Leftover {
		worker += "*"
	}

	status := "Success"
	if result.Err != nil {
		status = "Failed"
	}
	status = colors.StatusColor(result.Err != nil)("%s", status)

	row := []string{
		worker,
		result.Range.String(),
		strconv.Itoa(result.Range.Len()),
		status,
		colors.Duration("%s", formatDuration(result.Duration)),
	}

	if f.options.Wide {
		errStr := ""
		if result.Err != nil {
			errStr = truncate(result.Err.Error(), 60)
		}
		row = append(row, errStr)
	}

	return row
}

// FormatMeasurements outputs one row per measurement
func (f *TableFormatter) FormatMeasurements(w io.Writer, measurements []bench.Measurement) error {
	if len(measurements) == 0 {
		fmt.Fprintln(w, "No results")
		return nil
	}

	colors := NewColorScheme(w, f.options.NoColor)
	table := f.createTable(w)

	headers := []string{"BACKEND", "WORKERS", "SIZE", "RUNS", "AVG", "MIN", "MAX", "VERIFIED"}
	if f.options.Wide {
		headers = append(headers, "POLICY", "ALPHA", "ERROR")
	}
	f.setHeaders(table, headers, colors)

	for _, m := range measurements {
		table.Append(f.formatMeasurementRow(m, colors))
	}

	table.Render()

	f.printMeasurementSummary(w, measurements, colors)
	return nil
}

func (f *TableFormatter) formatMeasurementRow(m bench.Measurement, colors *ColorScheme) []string {
	verified := "yes"
	if !m.Verified {
		verified = "no"
	}

	row := []string{
		colors.Backend("%s", m.Backend),
		strconv.Itoa(m.Workers),
		strconv.Itoa(m.Size),
		strconv.Itoa(len(m.Runs)),
		colors.Duration("%s", formatDuration(m.Average())),
		formatDuration(m.Min()),
		formatDuration(m.Max()),
		colors.StatusColor(!m.Verified)("%s", verified),
	}

	if f.options.Wide {
		errStr := ""
		if m.Err != nil {
			errStr = truncate(m.Err.Error(), 60)
		}
		row = append(row, m.Policy, strconv.FormatFloat(m.Alpha, 'g', -1, 64), errStr)
	}

	return row
}

// formatMap formats a map as a two-column table, sorted by key
func (f *TableFormatter) formatMap(table *tablewriter.Table, data map[string]interface{}) error {
	if !f.options.NoHeaders {
		table.SetHeader([]string{"KEY", "VALUE"})
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		table.Append([]string{k, fmt.Sprintf("%v", data[k])})
	}

	table.Render()
	return nil
}

func (f *TableFormatter) setHeaders(table *tablewriter.Table, headers []string, colors *ColorScheme) {
	if f.options.NoHeaders {
		return
	}

	if colors.Disabled {
		table.SetHeader(headers)
		return
	}

	coloredHeaders := make([]string, len(headers))
	for i, h := range headers {
		coloredHeaders[i] = colors.Header("%s", h)
	}
	table.SetHeader(coloredHeaders)
}

// createTable creates a new borderless table
func (f *TableFormatter) createTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)

	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)

	return table
}

// printResultSummary prints the aggregated range statistics
func (f *TableFormatter) printResultSummary(w io.Writer, results []executor.Result, colors *ColorScheme) {
	summary := executor.Summarize(results)

	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Summary: ")

	rangesText := fmt.Sprintf("%d ranges (%d inline), %d elements", summary.Ranges, summary.Inline, summary.Elements)

	failedText := fmt.Sprintf("%d failed", summary.Failed)
	if summary.Failed > 0 {
		failedText = colors.Error("%s", failedText)
	} else {
		failedText = colors.Success("%s", failedText)
	}

	durationText := colors.Duration("max=%s", formatDuration(summary.MaxDuration))

	fmt.Fprintf(w, "%s, %s, %s\n", rangesText, failedText, durationText)
}

// printMeasurementSummary prints verification counts and the fastest configuration
func (f *TableFormatter) printMeasurementSummary(w io.Writer, measurements []bench.Measurement, colors *ColorScheme) {
	verified, failed := 0, 0
	var fastest *bench.Measurement
	for i := range measurements {
		m := &measurements[i]
		if !m.Verified {
			failed++
			continue
		}
		verified++
		if len(m.Runs) > 0 && (fastest == nil || m.Average() < fastest.Average()) {
			fastest = m
		}
	}

	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Summary: ")

	verifiedText := colors.Success("%d verified", verified)
	failedText := fmt.Sprintf("%d failed", failed)
	if failed > 0 {
		failedText = colors.Error("%s", failedText)
	}

	if fastest == nil {
		fmt.Fprintf(w, "%s, %s\n", verifiedText, failedText)
		return
	}

	fastestText := fmt.Sprintf("fastest=%s/%d (%s)", fastest.Backend, fastest.Workers, formatDuration(fastest.Average()))
	fmt.Fprintf(w, "%s, %s, %s\n", verifiedText, failedText, colors.Duration("%s", fastestText))
}

func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) > max {
		return s[:max-3] + "..."
	}
	return s
}
