package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/reglog/internal/logging"
	"github.com/ccollicutt/reglog/pkg/classifier"
	"github.com/ccollicutt/reglog/pkg/parser"
)

// maxDetails caps the detail lines per check outside verbose mode.
const maxDetails = 10

// DiagnoseOptions holds options for the diagnose command
type DiagnoseOptions struct {
	Config  string
	Verbose bool
}

// DiagnosticResult represents the result of a single diagnostic check
type DiagnosticResult struct {
	Check    string
	Status   string // "ok", "warning", "error"
	Message  string
	Details  []string
	Suggests []string
}

// NewDiagnoseCommand creates the diagnose command
func NewDiagnoseCommand() *cobra.Command {
	opts := &DiagnoseOptions{}

	cmd := &cobra.Command{
		Use:   "diagnose <log-file>",
		Short: "Diagnose problems in a registration log",
		Long: `Diagnose problems in a registration log.

This command checks a log for common problems:
- Log file existence, type and size
- Record reassembly (complete, duplicate and corrupt records)
- Orphaned end markers and an unterminated final record
- Records that match no flavor or OS rule, or more than one

Example:
  reglog diagnose registrations.log
  reglog diagnose -v registrations.log  # list every anomaly`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiagnose(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Rules configuration file (YAML)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show detailed diagnostic output")

	return cmd
}

func runDiagnose(cmd *cobra.Command, logPath string, opts *DiagnoseOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	w := cmd.OutOrStdout()
	results := []DiagnosticResult{}

	// 1. Check log file existence
	result := checkLogExists(logPath)
	results = append(results, result)
	if result.Status == "error" {
		printDiagnostics(w, results, opts)
		return nil
	}

	cfg, err := loadConfig(ctx, opts.Config)
	if err != nil {
		return err
	}

	// 2. Reassemble records
	reassembled, result := checkReassembly(ctx, logPath)
	results = append(results, result)
	if result.Status == "error" {
		printDiagnostics(w, results, opts)
		return nil
	}

	// 3. Anomalies found while reassembling
	results = append(results, checkAnomalies(reassembled, opts))

	// 4. Classification of unique records
	results = append(results, checkClassification(reassembled, classifier.RulesFromConfig(cfg), opts)...)

	printDiagnostics(w, results, opts)
	return nil
}

func checkLogExists(path string) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Log File",
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		result.Status = "error"
		result.Message = fmt.Sprintf("The file %s does not exist!", path)
		result.Suggests = []string{"Check the file path is correct"}
		return result
	}
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot access log file: %v", err)
		result.Suggests = []string{"Check file permissions"}
		return result
	}
	if info.IsDir() {
		result.Status = "error"
		result.Message = "Path is a directory, not a file"
		return result
	}
	if info.Size() == 0 {
		result.Status = "warning"
		result.Message = "Log file is empty"
		result.Suggests = []string{"The report will show zero registrations"}
		return result
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("Found: %s (%s, modified %s)",
		path, humanize.Bytes(uint64(info.Size())), humanize.Time(info.ModTime()))
	return result
}

func checkReassembly(ctx context.Context, path string) (*parser.Result, DiagnosticResult) {
	result := DiagnosticResult{
		Check: "Record Reassembly",
	}

	src, err := parser.OpenFile(path)
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot open log: %v", err)
		return nil, result
	}
	defer src.Close()

	reassembled, err := parser.Reassemble(ctx, src, parser.WithLogger(logging.FromContext(ctx)))
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Failed to read log: %v", err)
		return nil, result
	}

	result.Details = []string{
		fmt.Sprintf("Lines read: %s", humanize.Comma(int64(reassembled.LinesProcessed))),
		fmt.Sprintf("Complete records: %s", humanize.Comma(int64(reassembled.TransactionCount))),
		fmt.Sprintf("Unique clients: %s", humanize.Comma(int64(reassembled.Records.Len()))),
		fmt.Sprintf("Repeat registrations: %s", humanize.Comma(int64(reassembled.Duplicates()))),
	}
	if reassembled.FirstDate != "" {
		result.Details = append(result.Details, fmt.Sprintf("First registration: %s", reassembled.FirstDate))
	}

	if reassembled.TransactionCount == 0 {
		result.Status = "warning"
		result.Message = fmt.Sprintf("No complete records in %d line(s)", reassembled.LinesProcessed)
		result.Suggests = []string{
			fmt.Sprintf("Records start with %s and end with %s", parser.StartMarker, parser.EndMarker),
		}
		return reassembled, result
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("%s records from %s unique clients",
		humanize.Comma(int64(reassembled.TransactionCount)),
		humanize.Comma(int64(reassembled.Records.Len())))
	return reassembled, result
}

func checkAnomalies(reassembled *parser.Result, opts *DiagnoseOptions) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Log Integrity",
	}

	if len(reassembled.Anomalies) == 0 {
		result.Status = "ok"
		result.Message = "No corrupt or unterminated records"
		return result
	}

	details := make([]string, 0, len(reassembled.Anomalies))
	for _, a := range reassembled.Anomalies {
		details = append(details, describeAnomaly(a))
	}
	result.Details = limitDetails(details, opts)

	result.Status = "warning"
	result.Message = fmt.Sprintf("%d corrupt, %d orphaned end marker(s), trailing record dropped: %t",
		reassembled.CorruptCount, reassembled.Orphans, reassembled.TrailingDropped)
	if reassembled.CorruptCount > 0 {
		result.Suggests = append(result.Suggests,
			"Corrupt records are usually interleaved writes; they are skipped in the report")
	}
	if reassembled.TrailingDropped {
		result.Suggests = append(result.Suggests,
			"The final record has no end marker; the log may still be being written")
	}
	return result
}

func describeAnomaly(a parser.Anomaly) string {
	switch a.Kind {
	case parser.AnomalyCorrupt:
		return fmt.Sprintf("line %d: record started at line %d interrupted by a new %s", a.LineNum, a.StartLine, parser.StartMarker)
	case parser.AnomalyOrphan:
		return fmt.Sprintf("line %d: %s without a preceding %s", a.LineNum, parser.EndMarker, parser.StartMarker)
	case parser.AnomalyTrailing:
		return fmt.Sprintf("line %d: record started at line %d has no %s", a.LineNum, a.StartLine, parser.EndMarker)
	default:
		return fmt.Sprintf("line %d: %s", a.LineNum, a.Kind)
	}
}

// checkClassification reports, per exclusive category, the unique records
// that match no rule or more than one.
func checkClassification(reassembled *parser.Result, rules classifier.RuleSet, opts *DiagnoseOptions) []DiagnosticResult {
	agg := classifier.NewAggregator(rules)

	unassigned := make(map[classifier.Category][]string)
	multiple := make(map[classifier.Category][]string)

	for _, id := range reassembled.Records.ClientIDs() {
		rec := reassembled.Records[id]
		for _, v := range agg.Classify(rec.Text).Violations(rules.Exclusive) {
			if v.Matches == 0 {
				unassigned[v.Category] = append(unassigned[v.Category], fmt.Sprintf("client %s (line %d)", id, rec.StartLine))
				continue
			}
			multiple[v.Category] = append(multiple[v.Category], fmt.Sprintf("client %s (line %d): %d matches", id, rec.StartLine, v.Matches))
		}
	}

	results := make([]DiagnosticResult, 0, len(rules.Exclusive))
	for _, cat := range rules.Exclusive {
		result := DiagnosticResult{
			Check: fmt.Sprintf("Classification: %s", cat),
		}

		if len(unassigned[cat]) == 0 && len(multiple[cat]) == 0 {
			result.Status = "ok"
			result.Message = fmt.Sprintf("Every record matches exactly one %s rule", cat)
			results = append(results, result)
			continue
		}

		var details []string
		for _, d := range unassigned[cat] {
			details = append(details, "unassigned: "+d)
		}
		for _, d := range multiple[cat] {
			details = append(details, "multiply assigned: "+d)
		}
		result.Details = limitDetails(details, opts)

		result.Status = "warning"
		result.Message = fmt.Sprintf("%d unassigned, %d multiply assigned", len(unassigned[cat]), len(multiple[cat]))
		result.Suggests = []string{
			fmt.Sprintf("Add a %s rule with a rules file (see 'reglog rules -o yaml')", cat),
		}
		results = append(results, result)
	}

	return results
}

func limitDetails(details []string, opts *DiagnoseOptions) []string {
	if opts.Verbose || len(details) <= maxDetails {
		return details
	}
	out := append([]string{}, details[:maxDetails]...)
	return append(out, fmt.Sprintf("... and %d more (use -v to list all)", len(details)-maxDetails))
}

func printDiagnostics(w io.Writer, results []DiagnosticResult, opts *DiagnoseOptions) {
	fmt.Fprintln(w, "=== reglog Log Diagnostics ===")
	fmt.Fprintln(w)

	counts := map[string]int{}

	for _, r := range results {
		// Status icon
		var icon string
		switch r.Status {
		case "ok":
			icon = "PASS"
		case "warning":
			icon = "WARN"
		case "error":
			icon = "FAIL"
		}
		counts[r.Status]++

		fmt.Fprintf(w, "[%s] %s\n", icon, r.Check)
		fmt.Fprintf(w, "    %s\n", r.Message)

		if opts.Verbose || r.Status != "ok" {
			for _, d := range r.Details {
				fmt.Fprintf(w, "      - %s\n", d)
			}
		}

		for _, s := range r.Suggests {
			fmt.Fprintf(w, "      Hint: %s\n", s)
		}

		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d passed, %d warnings, %d errors\n", counts["ok"], counts["warning"], counts["error"])

	switch {
	case counts["error"] > 0:
		fmt.Fprintln(w, "\nFix the errors above before running a report.")
	case counts["warning"] > 0:
		fmt.Fprintln(w, "\nThe log is usable but has warnings.")
	default:
		fmt.Fprintln(w, "\nLog looks good!")
	}
}
