package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ccollicutt/reglog/internal/logging"
	"github.com/ccollicutt/reglog/pkg/classifier"
	"github.com/ccollicutt/reglog/pkg/config"
	"github.com/ccollicutt/reglog/pkg/output"
	"github.com/ccollicutt/reglog/pkg/parser"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// ReportOptions holds command-line options for the report command.
type ReportOptions struct {
	Config  string
	Output  string
	Verbose bool
	Quiet   bool
}

// NewReportCommand creates the report command.
func NewReportCommand() *cobra.Command {
	opts := &ReportOptions{}

	cmd := &cobra.Command{
		Use:   "report <log-file>",
		Short: "Summarize a registration log",
		Long: `Parse a registration log and print installation statistics.

Records run from <MACID> to </DATE>. Repeated registrations from the same
client are counted once, using the latest record. Each unique record is
classified by flavor, operating system, CPU, runtime environment and word size.

Use --debug to log records that match no flavor or OS, or more than one.

Exit codes:
  0 - Report written
  1 - Log file does not exist
  2 - Configuration or runtime error`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Rules configuration file (YAML)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output format (text|json), overrides the config file")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Include run metadata in the report")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no breakdowns")

	return cmd
}

func runReport(cmd *cobra.Command, args []string, opts *ReportOptions) error {
	logPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	cfg, err := loadConfig(ctx, opts.Config)
	if err != nil {
		return err
	}

	formatter, err := createFormatter(cfg, opts)
	if err != nil {
		return err
	}

	start := time.Now()

	src, err := parser.OpenFile(logPath)
	if errors.Is(err, parser.ErrInputNotFound) {
		fmt.Fprintf(cmd.ErrOrStderr(), "The file %s does not exist!\n", logPath)
		ExitCode = 1
		return nil
	}
	if err != nil {
		return err
	}
	defer src.Close()

	var asOf time.Time
	if info, err := os.Stat(logPath); err == nil {
		asOf = info.ModTime()
	}

	result, err := parser.Reassemble(ctx, src, parser.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("reading %s: %w", logPath, err)
	}

	agg := classifier.NewAggregator(classifier.RulesFromConfig(cfg), classifier.WithLogger(logger))
	stats := agg.Aggregate(result)

	logger.Debug("log parsed",
		zap.String("source", logPath),
		zap.Int("lines", result.LinesProcessed),
		zap.Int("transactions", result.TransactionCount),
		zap.Int("unique", stats.UniqueCount),
		zap.Int("corrupt", result.CorruptCount),
		zap.Int("orphans", result.Orphans),
		zap.Bool("trailing_dropped", result.TrailingDropped))

	layout := output.DefaultLayout()
	if cfg.ReplaceDefaults {
		layout = output.TrimLayout(layout, stats.Counters())
	}

	report := output.NewReport(stats, layout, cfg.Report.Title, output.Metadata{
		LogFile:     logPath,
		ConfigFile:  opts.Config,
		AsOf:        asOf,
		GeneratedAt: time.Now(),
		Duration:    time.Since(start),
	})

	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	return nil
}

// loadConfig loads the rules file at path, or the defaults when path is empty.
func loadConfig(ctx context.Context, path string) (*config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func createFormatter(cfg *config.Config, opts *ReportOptions) (output.Formatter, error) {
	name := opts.Output
	if name == "" {
		name = string(cfg.Report.Output)
	}

	f, ok := output.NewFormatter(name, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	})
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (use text or json)", name)
	}
	return f, nil
}
