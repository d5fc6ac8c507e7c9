package parser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// AnomalyKind categorizes irregularities found while reassembling.
type AnomalyKind string

const (
	// AnomalyCorrupt is a start marker seen while a record was still open.
	AnomalyCorrupt AnomalyKind = "corrupt"

	// AnomalyOrphan is an end marker reached without any start marker.
	AnomalyOrphan AnomalyKind = "orphan"

	// AnomalyTrailing is a record still open at end of input.
	AnomalyTrailing AnomalyKind = "trailing"
)

// Anomaly records where an irregular record was found.
type Anomaly struct {
	Kind AnomalyKind

	// StartLine is the line the affected record started on (0 for orphans).
	StartLine int

	// LineNum is the line at which the anomaly was detected.
	LineNum int
}

// Result is the outcome of reassembling a registration log.
type Result struct {
	// Records holds the last record seen per client.
	Records RecordTable

	// TransactionCount is the number of completed records, duplicates included.
	TransactionCount int

	// CorruptCount is the number of records abandoned because a new start
	// marker arrived before their end marker.
	CorruptCount int

	// LinesProcessed is the number of input lines read.
	LinesProcessed int

	// Orphans is the number of end markers reached with no start marker.
	Orphans int

	// TrailingDropped is set when input ended inside an open record.
	// Such a record is not counted as corrupt.
	TrailingDropped bool

	// FirstDate is the <DATE> value of the first completed record.
	FirstDate string

	// Anomalies lists every corrupt, orphan and trailing event in input order.
	Anomalies []Anomaly
}

// Duplicates returns how many completed records were superseded by a later
// record for the same client.
func (r *Result) Duplicates() int {
	return r.TransactionCount - r.Records.Len()
}

// Option configures a Reassembler.
type Option func(*Reassembler)

// WithLogger sets the logger used for per-record diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Reassembler) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Reassembler turns a stream of lines into records.
//
// It has two states: idle and accumulating. A start marker moves it to
// accumulating (abandoning any open record), reaching the end marker emits
// the record and returns it to idle.
type Reassembler struct {
	logger *zap.Logger

	inRecord  bool
	buf       strings.Builder
	startLine int
	result    *Result
}

// NewReassembler creates a reassembler with empty state.
func NewReassembler(opts ...Option) *Reassembler {
	r := &Reassembler{
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.Reset()
	return r
}

// Reset clears internal state for reuse.
func (r *Reassembler) Reset() {
	r.inRecord = false
	r.buf.Reset()
	r.startLine = 0
	r.result = &Result{Records: make(RecordTable)}
}

// Feed processes a single input line.
func (r *Reassembler) Feed(line *RawLine) {
	r.result.LinesProcessed++

	for _, seg := range splitAtStart(line.Content + "\n") {
		r.step(seg, line)
	}
}

func (r *Reassembler) step(seg string, line *RawLine) {
	if strings.Contains(seg, StartMarker) {
		if r.inRecord {
			r.result.CorruptCount++
			r.result.Anomalies = append(r.result.Anomalies, Anomaly{
				Kind:      AnomalyCorrupt,
				StartLine: r.startLine,
				LineNum:   line.LineNum,
			})
			r.logger.Debug("corrupt, unfinished record skipped",
				zap.String("source", line.Source),
				zap.Int("start_line", r.startLine),
				zap.Int("line", line.LineNum))
		}

		r.inRecord = true
		r.buf.Reset()
		r.startLine = line.LineNum
	}

	r.buf.WriteString(seg)

	if !strings.Contains(r.buf.String(), EndMarker) {
		return
	}

	text := r.buf.String()
	startLine := r.startLine
	r.buf.Reset()
	r.inRecord = false

	id, err := ClientID(text)
	if err != nil {
		r.result.Orphans++
		r.result.Anomalies = append(r.result.Anomalies, Anomaly{
			Kind:    AnomalyOrphan,
			LineNum: line.LineNum,
		})
		r.logger.Debug("end marker without start marker",
			zap.String("source", line.Source),
			zap.Int("line", line.LineNum),
			zap.Error(err))
		return
	}

	r.result.Records[id] = Record{
		Text:      text,
		ClientID:  id,
		StartLine: startLine,
		Source:    line.Source,
	}
	r.result.TransactionCount++

	if r.result.TransactionCount == 1 {
		r.result.FirstDate, _ = TagValue(text, "DATE")
	}
}

// Finish ends the input and returns the result.
// An open record is dropped without being counted as corrupt.
func (r *Reassembler) Finish() *Result {
	if r.inRecord {
		r.result.TrailingDropped = true
		r.result.Anomalies = append(r.result.Anomalies, Anomaly{
			Kind:      AnomalyTrailing,
			StartLine: r.startLine,
			LineNum:   r.result.LinesProcessed,
		})
		r.logger.Debug("unterminated record at end of input dropped",
			zap.Int("start_line", r.startLine))
		r.inRecord = false
		r.buf.Reset()
	}
	return r.result
}

// Reassemble reads every line from src and returns the reassembled records.
func Reassemble(ctx context.Context, src LineSource, opts ...Option) (*Result, error) {
	r := NewReassembler(opts...)

	for {
		line, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading log source: %w", err)
		}
		r.Feed(line)
	}

	return r.Finish(), nil
}
