package reporter_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"robustgo/pkg/analysis"
	"robustgo/pkg/core"
	"robustgo/pkg/reporter"

	"github.com/stretchr/testify/require"
)

func sampleReport() reporter.CellReport {
	return reporter.CellReport{
		Task:         "sentiment",
		Model:        "mock",
		Perturbation: "noise",
		Level:        0.1,
		Languages:    []string{"en", "hi"},
		Summaries: map[string]core.RobustnessSummary{
			"en": {AccClean: 0.9, AccPerturbed: 0.8, AbsDropAcc: 0.1, Consistency: 0.85},
			"hi": {AccClean: 0.7, AccPerturbed: 0.6, AbsDropAcc: 0.1, Consistency: 0.75},
		},
		Stats: map[string]analysis.Stats{
			"en": {TotalSamples: 20, ConsistentCount: 17, FlippedCount: 3, FlipRate: 0.15},
		},
	}
}

func TestCSVReporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, reporter.CSVReporter{Writer: &buf}.Report(sampleReport()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, "language", records[0][4])
	require.Equal(t, "en", records[1][4])
	require.Equal(t, "hi", records[2][4])
	require.Equal(t, "0.9000", records[1][5])
}

func TestMarkdownReporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, reporter.MarkdownReporter{Writer: &buf}.Report(sampleReport()))

	out := buf.String()
	require.Contains(t, out, "# Robustness Report")
	require.Contains(t, out, "| en | 0.9000 |")
	require.Contains(t, out, "## Prediction flips")
	require.Contains(t, out, "| en | 20 | 17 | 3 | 0.1500 |")
}

func TestJSONReporterRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, reporter.JSONReporter{Writer: &buf, Pretty: true}.Report(sampleReport()))
	require.Contains(t, buf.String(), `"perturbation": "noise"`)
}

func TestHTMLReporterRendersRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, reporter.HTMLReporter{Writer: &buf}.Report(sampleReport()))

	out := buf.String()
	require.Contains(t, out, "<td>en</td>")
	require.Contains(t, out, "<td>hi</td>")
	require.True(t, strings.Contains(out, "0.1500"))
}
