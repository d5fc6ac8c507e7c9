package commands

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccollicutt/reglog/pkg/classifier"
)

func TestNewDiagnoseCommand(t *testing.T) {
	cmd := NewDiagnoseCommand()

	assert.Equal(t, "diagnose <log-file>", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("verbose"))
	assert.NotNil(t, cmd.Flags().Lookup("config"))
}

func TestCheckLogExists_NotFound(t *testing.T) {
	result := checkLogExists("/nonexistent/registrations.log")

	assert.Equal(t, "error", result.Status)
	assert.Contains(t, result.Message, "does not exist")
}

func TestCheckLogExists_Empty(t *testing.T) {
	path := writeFile(t, "empty.log", "")

	result := checkLogExists(path)
	assert.Equal(t, "warning", result.Status)
}

func TestCheckLogExists_Directory(t *testing.T) {
	result := checkLogExists(t.TempDir())

	assert.Equal(t, "error", result.Status)
	assert.Contains(t, result.Message, "directory")
}

func TestCheckLogExists_Success(t *testing.T) {
	path := writeFile(t, "registrations.log", sampleLog)

	result := checkLogExists(path)
	assert.Equal(t, "ok", result.Status)
	assert.Contains(t, result.Message, fmt.Sprintf("%d B", len(sampleLog)))
}

func TestCheckReassembly(t *testing.T) {
	log := sampleLog + "<MACID>ABC</MACID><DATE>2020-02-01</DATE><FLAVOR>beta</FLAVOR><OS>Linux</OS>\n"
	path := writeFile(t, "registrations.log", log)

	reassembled, result := checkReassembly(context.Background(), path)
	require.NotNil(t, reassembled)

	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, "3 records from 2 unique clients", result.Message)
	assert.Contains(t, result.Details, "Repeat registrations: 1")
	assert.Contains(t, result.Details, "First registration: 2020-01-01")
}

func TestCheckReassembly_NoRecords(t *testing.T) {
	path := writeFile(t, "registrations.log", "no markers here\n")

	_, result := checkReassembly(context.Background(), path)

	assert.Equal(t, "warning", result.Status)
	require.Len(t, result.Suggests, 1)
	assert.Contains(t, result.Suggests[0], "<MACID>")
}

func TestCheckAnomalies(t *testing.T) {
	log := "<MACID>A</MACID><MACID>B</MACID><DATE></DATE>\n" +
		"</DATE>\n" +
		"<MACID>C</MACID>\n"
	path := writeFile(t, "registrations.log", log)

	reassembled, _ := checkReassembly(context.Background(), path)
	require.NotNil(t, reassembled)

	result := checkAnomalies(reassembled, &DiagnoseOptions{})
	assert.Equal(t, "warning", result.Status)
	assert.Equal(t, "1 corrupt, 1 orphaned end marker(s), trailing record dropped: true", result.Message)
	require.Len(t, result.Details, 3)
	assert.Contains(t, result.Details[0], "interrupted")
	assert.Contains(t, result.Details[1], "without a preceding")
	assert.Contains(t, result.Details[2], "has no </DATE>")
	assert.Len(t, result.Suggests, 2)
}

func TestCheckAnomalies_Clean(t *testing.T) {
	path := writeFile(t, "registrations.log", sampleLog)
	reassembled, _ := checkReassembly(context.Background(), path)

	result := checkAnomalies(reassembled, &DiagnoseOptions{})
	assert.Equal(t, "ok", result.Status)
	assert.Empty(t, result.Details)
}

func TestCheckClassification(t *testing.T) {
	log := sampleLog +
		"<MACID>NOFLAVOR</MACID><DATE>2020-01-03</DATE><OS>Linux</OS>\n" +
		"<MACID>TWICE</MACID><DATE>2020-01-04</DATE><FLAVOR>beta</FLAVOR><FLAVOR>trunk</FLAVOR><OS>Linux</OS>\n"
	path := writeFile(t, "registrations.log", log)
	reassembled, _ := checkReassembly(context.Background(), path)
	require.NotNil(t, reassembled)

	results := checkClassification(reassembled, classifier.DefaultRules(), &DiagnoseOptions{})
	require.Len(t, results, 2)

	flavor := results[0]
	assert.Equal(t, "Classification: flavor", flavor.Check)
	assert.Equal(t, "warning", flavor.Status)
	assert.Equal(t, "1 unassigned, 1 multiply assigned", flavor.Message)
	assert.Equal(t, []string{
		"unassigned: client NOFLAVOR (line 3)",
		"multiply assigned: client TWICE (line 4): 2 matches",
	}, flavor.Details)

	assert.Equal(t, "ok", results[1].Status)
}

func TestLimitDetails(t *testing.T) {
	details := make([]string, maxDetails+5)
	for i := range details {
		details[i] = fmt.Sprintf("d%d", i)
	}

	limited := limitDetails(details, &DiagnoseOptions{})
	assert.Len(t, limited, maxDetails+1)
	assert.Equal(t, "... and 5 more (use -v to list all)", limited[maxDetails])

	assert.Len(t, limitDetails(details, &DiagnoseOptions{Verbose: true}), maxDetails+5)
}

func TestPrintDiagnostics(t *testing.T) {
	results := []DiagnosticResult{
		{Check: "Test1", Status: "ok", Message: "All good", Details: []string{"hidden"}},
		{Check: "Test2", Status: "warning", Message: "Hmm", Details: []string{"detail1"}},
		{Check: "Test3", Status: "error", Message: "Bad", Suggests: []string{"Fix it"}},
	}

	var buf bytes.Buffer
	printDiagnostics(&buf, results, &DiagnoseOptions{})
	out := buf.String()

	assert.Contains(t, out, "[PASS] Test1")
	assert.Contains(t, out, "[WARN] Test2")
	assert.Contains(t, out, "[FAIL] Test3")
	assert.Contains(t, out, "      - detail1")
	assert.NotContains(t, out, "hidden", "ok details are verbose-only")
	assert.Contains(t, out, "Hint: Fix it")
	assert.Contains(t, out, "Summary: 1 passed, 1 warnings, 1 errors")
	assert.Contains(t, out, "Fix the errors above")
}

func TestRunDiagnose_MissingLog(t *testing.T) {
	cmd := NewDiagnoseCommand()
	cmd.SetArgs([]string{"/nonexistent/registrations.log"})
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	require.NoError(t, cmd.ExecuteContext(context.Background()))

	out := buf.String()
	assert.Contains(t, out, "[FAIL] Log File")
	assert.NotContains(t, out, "Record Reassembly")
}

func TestRunDiagnose_CleanLog(t *testing.T) {
	path := writeFile(t, "registrations.log", sampleLog)

	cmd := NewDiagnoseCommand()
	cmd.SetArgs([]string{"-v", path})
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	require.NoError(t, cmd.ExecuteContext(context.Background()))

	out := buf.String()
	assert.Contains(t, out, "Summary: 5 passed, 0 warnings, 0 errors")
	assert.Contains(t, out, "Log looks good!")
	assert.Contains(t, out, "Unique clients: 2", "verbose mode lists ok details")
}

func TestRunDiagnose_Directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(dir+"/logs", 0755))

	cmd := NewDiagnoseCommand()
	cmd.SetArgs([]string{dir + "/logs"})
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.True(t, strings.Contains(buf.String(), "Path is a directory"))
}
