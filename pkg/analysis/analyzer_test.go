package analysis_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"robustgo/pkg/analysis"
	"robustgo/pkg/results"

	"github.com/stretchr/testify/require"
)

func TestAnalyzerRun(t *testing.T) {
	store, err := results.NewStore(t.TempDir())
	require.NoError(t, err)

	cleanKey := results.Key{Task: "sentiment", Perturbation: results.CleanTag, Language: "en"}
	_, err = store.WritePredictions(cleanKey, []results.Row{
		{ID: "1", Text: "good", Label: "positive", Prediction: "positive", Score: 1.0},
		{ID: "2", Text: "bad", Label: "negative", Prediction: "negative", Score: 1.0},
	})
	require.NoError(t, err)

	noiseKey := results.Key{Task: "sentiment", Perturbation: "noise", Level: 0.1, Language: "en"}
	_, err = store.WritePredictions(noiseKey, []results.Row{
		{ID: "1", Text: "god", Label: "positive", Prediction: "positive", Score: 1.0},
		{ID: "2", Text: "bd", Label: "negative", Prediction: "positive", Score: 0.95},
	})
	require.NoError(t, err)

	analyzer := analysis.Analyzer{Store: store}
	cases, err := analyzer.Run()
	require.NoError(t, err)

	// ID 2 flipped and is a high-confidence failure, so it appears twice.
	require.Len(t, cases, 2)
	require.Equal(t, analysis.CaseFlip, cases[0].Type)
	require.Equal(t, analysis.CaseHighConfFailure, cases[1].Type)
	require.Equal(t, "2", cases[0].ID)

	data, err := os.ReadFile(filepath.Join(store.Dir, noiseKey.ConsistencyName()))
	require.NoError(t, err)
	var report analysis.Report
	require.NoError(t, json.Unmarshal(data, &report))
	require.Equal(t, 2, report.Summary.TotalSamples)
	require.Equal(t, 1, report.Summary.FlippedCount)
	require.InDelta(t, 0.5, report.Summary.FlipRate, 1e-9)
}

func TestAnalyzerKeepsPerModelSubtreesApart(t *testing.T) {
	root := t.TempDir()
	store, err := results.NewStore(root)
	require.NoError(t, err)

	cleanKey := results.Key{Task: "sentiment", Perturbation: results.CleanTag, Language: "en"}
	noiseKey := results.Key{Task: "sentiment", Perturbation: "noise", Level: 0.1, Language: "en"}

	write := func(model string, key results.Key, rows []results.Row) {
		sub, err := results.NewStore(filepath.Join(root, model))
		require.NoError(t, err)
		_, err = sub.WritePredictions(key, rows)
		require.NoError(t, err)
	}

	clean := []results.Row{
		{ID: "1", Label: "positive", Prediction: "positive", Score: 1.0},
		{ID: "2", Label: "negative", Prediction: "negative", Score: 1.0},
	}
	write("model-a", cleanKey, clean)
	write("model-b", cleanKey, clean)
	// model-a flips nothing, model-b flips one prediction.
	write("model-a", noiseKey, clean)
	write("model-b", noiseKey, []results.Row{
		{ID: "1", Label: "positive", Prediction: "positive", Score: 1.0},
		{ID: "2", Label: "negative", Prediction: "positive", Score: 1.0},
	})

	analyzer := analysis.Analyzer{Store: store}
	_, err = analyzer.Run()
	require.NoError(t, err)

	read := func(model string) analysis.Report {
		data, err := os.ReadFile(filepath.Join(root, model, noiseKey.ConsistencyName()))
		require.NoError(t, err)
		var report analysis.Report
		require.NoError(t, json.Unmarshal(data, &report))
		return report
	}

	// Each model's report lands in its own subtree; neither overwrites the
	// other despite sharing the same key.
	require.Zero(t, read("model-a").Summary.FlippedCount)
	require.Equal(t, 1, read("model-b").Summary.FlippedCount)
}

func TestWriteErrorCases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "error_cases.json")
	cases := []analysis.ErrorCase{{Type: analysis.CaseFlip, ID: "1"}}

	require.NoError(t, analysis.WriteErrorCases(path, cases))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got []analysis.ErrorCase
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, cases, got)
}
