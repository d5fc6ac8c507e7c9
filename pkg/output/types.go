// Package output provides formatting and output generation for registration statistics.
package output

import (
	"time"

	"github.com/ccollicutt/reglog/pkg/classifier"
)

// Report is the complete statistics output.
type Report struct {
	// Title is printed as the report header.
	Title string `json:"title"`

	// Summary provides the headline counts.
	Summary Summary `json:"summary"`

	// Sections holds the per-category breakdowns in display order.
	Sections []Section `json:"sections"`

	// Counters holds every raw counter by name.
	Counters map[string]int `json:"counters"`

	// Metadata provides context about the run.
	Metadata Metadata `json:"metadata"`
}

// Summary provides the headline counts.
type Summary struct {
	// Transactions is the number of downloads plus updates.
	Transactions int `json:"transactions"`

	// UniqueInstalls is the number of distinct clients.
	UniqueInstalls int `json:"unique_installs"`

	// FirstDate is the earliest registration in the log.
	FirstDate string `json:"first_date,omitempty"`

	// LinesProcessed is the number of log lines read.
	LinesProcessed int `json:"lines_processed"`

	// CorruptRecords is the number of invalid, skipped log entries.
	CorruptRecords int `json:"corrupt_records"`
}

// Section is one breakdown table.
type Section struct {
	Title string `json:"title"`
	Rows  []Row  `json:"rows"`
}

// Row is one counter within a section.
type Row struct {
	Label   string `json:"label"`
	Counter string `json:"counter"`
	Count   int    `json:"count"`

	// Percent is set when the row has a denominator.
	Percent *float64 `json:"percent,omitempty"`
}

// Metadata provides context about the run.
type Metadata struct {
	// LogFile is the registration log that was parsed.
	LogFile string `json:"log_file,omitempty"`

	// ConfigFile is the rules file used, if any.
	ConfigFile string `json:"config_file,omitempty"`

	// AsOf is the modification time of the log file.
	AsOf time.Time `json:"as_of"`

	// GeneratedAt is when the report was built.
	GeneratedAt time.Time `json:"generated_at"`

	// Duration is how long parsing and aggregation took.
	Duration time.Duration `json:"duration"`
}

// NewReport builds a Report from statistics using the given layout.
// Counters not referenced by the layout are listed in a trailing section.
func NewReport(stats *classifier.Statistics, layout []SectionSpec, title string, meta Metadata) *Report {
	report := &Report{
		Title: title,
		Summary: Summary{
			Transactions:   stats.TransactionCount,
			UniqueInstalls: stats.UniqueCount,
			FirstDate:      stats.FirstDate,
			LinesProcessed: stats.LinesProcessed,
			CorruptRecords: stats.CorruptCount,
		},
		Sections: make([]Section, 0, len(layout)+1),
		Counters: stats.Counters(),
		Metadata: meta,
	}

	referenced := map[string]bool{classifier.CounterTotal: true}
	for _, def := range layout {
		section := Section{Title: def.Title, Rows: make([]Row, 0, len(def.Rows))}
		for _, rs := range def.Rows {
			referenced[rs.Counter] = true
			section.Rows = append(section.Rows, newRow(stats, rs))
		}
		report.Sections = append(report.Sections, section)
	}

	var extra Section
	for _, name := range stats.Names() {
		if referenced[name] {
			continue
		}
		extra.Rows = append(extra.Rows, newRow(stats, RowSpec{Label: name, Counter: name}))
	}
	if len(extra.Rows) > 0 {
		extra.Title = "Additional counters"
		report.Sections = append(report.Sections, extra)
	}

	return report
}

func newRow(stats *classifier.Statistics, def RowSpec) Row {
	row := Row{
		Label:   def.Label,
		Counter: def.Counter,
		Count:   stats.Count(def.Counter),
	}
	if def.PercentOf != "" {
		pct := stats.Percent(def.Counter, def.PercentOf)
		row.Percent = &pct
	}
	return row
}

// Row returns the row for a counter and whether it is present.
func (r *Report) Row(counter string) (Row, bool) {
	for _, s := range r.Sections {
		for _, row := range s.Rows {
			if row.Counter == counter {
				return row, true
			}
		}
	}
	return Row{}, false
}

// HasCorruption returns true if invalid log entries were skipped.
func (r *Report) HasCorruption() bool {
	return r.Summary.CorruptRecords > 0
}
