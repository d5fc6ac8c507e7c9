package output

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccollicutt/reglog/pkg/classifier"
	"github.com/ccollicutt/reglog/pkg/parser"
)

const sampleLog = `<MACID>ABC</MACID><DATE>2020-01-01</DATE><FLAVOR>beta</FLAVOR><OS>Linux</OS>
<MACID>DEF</MACID><DATE>2020-01-02</DATE><FLAVOR>stable</FLAVOR><OS>Windows</OS>
`

func statsFor(t *testing.T, rules classifier.RuleSet, log string) *classifier.Statistics {
	t.Helper()
	src := parser.NewReaderSource(strings.NewReader(log), "test.log")
	result, err := parser.Reassemble(context.Background(), src)
	require.NoError(t, err)
	return classifier.NewAggregator(rules).Aggregate(result)
}

func createTestReport(t *testing.T) *Report {
	t.Helper()
	stats := statsFor(t, classifier.DefaultRules(), sampleLog)
	return NewReport(stats, DefaultLayout(), "Registered installations", Metadata{
		LogFile:     "test.log",
		AsOf:        time.Date(2020, 1, 3, 12, 0, 0, 0, time.UTC),
		GeneratedAt: time.Date(2020, 1, 4, 0, 0, 0, 0, time.UTC),
		Duration:    25 * time.Millisecond,
	})
}

func TestNewReport_Summary(t *testing.T) {
	report := createTestReport(t)

	assert.Equal(t, Summary{
		Transactions:   2,
		UniqueInstalls: 2,
		FirstDate:      "2020-01-01",
		LinesProcessed: 2,
		CorruptRecords: 0,
	}, report.Summary)
	assert.False(t, report.HasCorruption())
}

func TestNewReport_SectionsFollowLayout(t *testing.T) {
	report := createTestReport(t)
	layout := DefaultLayout()

	require.Len(t, report.Sections, len(layout), "default counters should not produce an extra section")
	for i, def := range layout {
		assert.Equal(t, def.Title, report.Sections[i].Title)
		assert.Len(t, report.Sections[i].Rows, len(def.Rows))
	}
}

func TestNewReport_RowsAndPercentages(t *testing.T) {
	report := createTestReport(t)

	linux, ok := report.Row(classifier.CounterLinux)
	require.True(t, ok)
	assert.Equal(t, 1, linux.Count)
	require.NotNil(t, linux.Percent)
	assert.InDelta(t, 50.0, *linux.Percent, 1e-9)

	beta, ok := report.Row(classifier.CounterFlavorBeta)
	require.True(t, ok)
	assert.Equal(t, 1, beta.Count)
	assert.Nil(t, beta.Percent, "flavor rows carry no percentage")
}

func TestNewReport_ZeroDenominator(t *testing.T) {
	report := createTestReport(t)

	ppc, ok := report.Row(classifier.CounterOSXPPC)
	require.True(t, ok)
	assert.Equal(t, 0, ppc.Count)
	require.NotNil(t, ppc.Percent)
	assert.Equal(t, 0.0, *ppc.Percent)
}

func TestNewReport_UnlistedCountersGetOwnSection(t *testing.T) {
	rules := classifier.DefaultRules()
	rules.Rules = append(rules.Rules, classifier.Rule{
		Category: classifier.CategoryFlavor,
		Match:    "<FLAVOR>beta</FLAVOR>",
		Counter:  "flavor.custom",
	})
	stats := statsFor(t, rules, sampleLog)

	report := NewReport(stats, DefaultLayout(), "t", Metadata{})

	last := report.Sections[len(report.Sections)-1]
	assert.Equal(t, "Additional counters", last.Title)
	require.Len(t, last.Rows, 1)
	assert.Equal(t, "flavor.custom", last.Rows[0].Counter)
	assert.Equal(t, 1, last.Rows[0].Count)
}

func TestNewReport_CountersCopied(t *testing.T) {
	report := createTestReport(t)

	assert.Equal(t, 2, report.Counters[classifier.CounterTotal])
	assert.Equal(t, 1, report.Counters[classifier.CounterWindows])
}

func TestNewReport_Corruption(t *testing.T) {
	stats := statsFor(t, classifier.DefaultRules(), "<MACID>A</MACID><MACID>B</MACID><DATE></DATE>\n")
	report := NewReport(stats, DefaultLayout(), "t", Metadata{})

	assert.Equal(t, 1, report.Summary.CorruptRecords)
	assert.Equal(t, 1, report.Summary.UniqueInstalls)
	assert.True(t, report.HasCorruption())
}

func TestNewFormatter(t *testing.T) {
	for _, name := range []string{"text", "json"} {
		f, ok := NewFormatter(name, FormatOptions{})
		require.True(t, ok, name)
		assert.Equal(t, name, f.Name())
	}

	_, ok := NewFormatter("html", FormatOptions{})
	assert.False(t, ok)
}

func TestTrimLayout(t *testing.T) {
	layout := []SectionSpec{
		{Title: "OS", Rows: []RowSpec{
			{Label: "Linux", Counter: classifier.CounterLinux, PercentOf: classifier.CounterTotal},
			{Label: "BeOS", Counter: "os.beos"},
		}},
		{Title: "Gone", Rows: []RowSpec{{Label: "x", Counter: "missing"}}},
	}

	got := TrimLayout(layout, map[string]int{classifier.CounterLinux: 0, classifier.CounterTotal: 3})

	want := []SectionSpec{
		{Title: "OS", Rows: []RowSpec{
			{Label: "Linux", Counter: classifier.CounterLinux, PercentOf: classifier.CounterTotal},
		}},
	}
	assert.Equal(t, want, got)
}

func TestNewReport_ReplacedRulesTrimmedLayout(t *testing.T) {
	rules := classifier.RuleSet{Rules: []classifier.Rule{
		{Category: classifier.CategoryOS, Match: "<OS>Linux", Counter: classifier.CounterLinux},
		{Category: classifier.CategoryOS, Match: "<OS>Haiku", Counter: "os.haiku"},
	}}
	stats := statsFor(t, rules, sampleLog)

	report := NewReport(stats, TrimLayout(DefaultLayout(), stats.Counters()), "t", Metadata{})

	require.Len(t, report.Sections, 2)
	assert.Equal(t, "Breakdown by operating system", report.Sections[0].Title)
	require.Len(t, report.Sections[0].Rows, 1)
	assert.Equal(t, classifier.CounterLinux, report.Sections[0].Rows[0].Counter)
	assert.Equal(t, "Additional counters", report.Sections[1].Title)
	assert.Equal(t, "os.haiku", report.Sections[1].Rows[0].Counter)

	_, ok := report.Row(classifier.CounterWindows)
	assert.False(t, ok, "built-in counters absent from the table are not reported")
}
