package output

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/ccollicutt/reglog/pkg/classifier"
)

func TestNewJSONFormatter(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})
	if f == nil {
		t.Fatal("NewJSONFormatter() returned nil")
	}
	if f.Name() != "json" {
		t.Errorf("Name() = %q, want %q", f.Name(), "json")
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})
	report := createTestReport(t)

	var buf bytes.Buffer
	err := f.Format(context.Background(), report, &buf)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var parsed Report
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	if parsed.Summary.Transactions != 2 {
		t.Errorf("Transactions = %d, want 2", parsed.Summary.Transactions)
	}
	if parsed.Counters[classifier.CounterFlavorStable] != 1 {
		t.Errorf("flavor.stable = %d, want 1", parsed.Counters[classifier.CounterFlavorStable])
	}
	row, ok := parsed.Row(classifier.CounterWindows)
	if !ok || row.Percent == nil || *row.Percent != 50 {
		t.Errorf("os.windows row = %+v, want 50%%", row)
	}
}

func TestJSONFormatter_Format_Quiet(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{Quiet: true})
	report := createTestReport(t)

	var buf bytes.Buffer
	err := f.Format(context.Background(), report, &buf)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var parsed Summary
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	if parsed.UniqueInstalls != 2 {
		t.Errorf("UniqueInstalls = %d, want 2", parsed.UniqueInstalls)
	}

	var raw map[string]any
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if _, ok := raw["sections"]; ok {
		t.Error("Quiet output should not include sections")
	}
}

func TestJSONFormatter_Format_OmitsPercentWithoutDenominator(t *testing.T) {
	f := NewJSONFormatter(FormatOptions{})
	report := &Report{
		Sections: []Section{{
			Title: "Breakdown by flavor",
			Rows:  []Row{{Label: "'beta'", Counter: "flavor.beta", Count: 3}},
		}},
	}

	var buf bytes.Buffer
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	if bytes.Contains(buf.Bytes(), []byte(`"percent"`)) {
		t.Errorf("Output should omit percent for rows without a denominator: %s", buf.String())
	}
}
