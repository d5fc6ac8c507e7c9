package output

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
)

// asOfLayout is the timestamp layout for the log modification time.
const asOfLayout = "January 2, 2006 15:04:05"

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(ctx, report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	_, err := fmt.Fprintf(w, "reglog: %s transactions, %s unique installations, %s corrupt records\n",
		humanize.Comma(int64(report.Summary.Transactions)),
		humanize.Comma(int64(report.Summary.UniqueInstalls)),
		humanize.Comma(int64(report.Summary.CorruptRecords)))
	return err
}

func (f *TextFormatter) formatFull(ctx context.Context, report *Report, w io.Writer) error {
	fmt.Fprintf(w, "=== %s ===\n", report.Title)
	if !report.Metadata.AsOf.IsZero() {
		fmt.Fprintf(w, "As of %s\n", report.Metadata.AsOf.Format(asOfLayout))
	}
	fmt.Fprintln(w)

	s := report.Summary
	fmt.Fprintf(w, "Downloads and updates: %s", humanize.Comma(int64(s.Transactions)))
	if s.FirstDate != "" {
		fmt.Fprintf(w, " since %s", s.FirstDate)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Unique installations:  %s\n", humanize.Comma(int64(s.UniqueInstalls)))
	fmt.Fprintln(w)

	for _, section := range report.Sections {
		if err := ctx.Err(); err != nil {
			return err
		}
		f.formatSection(section, w)
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Lines processed:  %s\n", humanize.Comma(int64(s.LinesProcessed)))
	fmt.Fprintf(w, "Corrupt records:  %s\n", humanize.Comma(int64(s.CorruptRecords)))

	if f.opts.Verbose {
		if report.Metadata.LogFile != "" {
			fmt.Fprintf(w, "Log file: %s\n", report.Metadata.LogFile)
		}
		if report.Metadata.ConfigFile != "" {
			fmt.Fprintf(w, "Rules:    %s\n", report.Metadata.ConfigFile)
		}
		fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(1e6))
	}

	return nil
}

func (f *TextFormatter) formatSection(section Section, w io.Writer) {
	fmt.Fprintf(w, "[%s]\n", section.Title)

	width := 0
	for _, row := range section.Rows {
		if len(row.Label) > width {
			width = len(row.Label)
		}
	}

	for _, row := range section.Rows {
		fmt.Fprintf(w, "  %-*s  %8s", width, row.Label, humanize.Comma(int64(row.Count)))
		if row.Percent != nil {
			fmt.Fprintf(w, "  (%5.1f%%)", *row.Percent)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
}
