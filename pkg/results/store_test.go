package results_test

import (
	"os"
	"path/filepath"
	"testing"

	"robustgo/pkg/core"
	"robustgo/pkg/results"

	"github.com/stretchr/testify/require"
)

func TestWriteReadPredictions(t *testing.T) {
	store, err := results.NewStore(t.TempDir())
	require.NoError(t, err)

	key := results.Key{Task: "sentiment", Perturbation: results.CleanTag, Language: "en"}
	rows := []results.Row{
		{ID: "1", Text: "a good day", Label: "positive", Prediction: "positive", Score: 1.0},
		{ID: "2", Text: "text, with commas", Label: "negative", Prediction: "neutral", Score: 0.5},
	}

	path, err := store.WritePredictions(key, rows)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(store.Dir, "sentiment_clean_en_preds.csv"), path)

	got, err := store.ReadPredictions(path)
	require.NoError(t, err)
	require.Equal(t, rows, got)
}

func TestCleanPredictionFilesAndCounterparts(t *testing.T) {
	store, err := results.NewStore(t.TempDir())
	require.NoError(t, err)

	rows := []results.Row{{ID: "1", Text: "x", Label: "a", Prediction: "a", Score: 1.0}}
	write := func(key results.Key) string {
		path, err := store.WritePredictions(key, rows)
		require.NoError(t, err)
		return path
	}

	cleanEN := write(results.Key{Task: "sentiment", Perturbation: results.CleanTag, Language: "en"})
	write(results.Key{Task: "sentiment", Perturbation: results.CleanTag, Language: "hi"})
	noiseEN := write(results.Key{Task: "sentiment", Perturbation: "noise", Level: 0.1, Language: "en"})
	write(results.Key{Task: "sentiment", Perturbation: "noise", Level: 0.1, Language: "hi"})
	write(results.Key{Task: "nli", Perturbation: "noise", Level: 0.1, Language: "en"})

	cleanPaths, err := store.CleanPredictionFiles()
	require.NoError(t, err)
	require.Len(t, cleanPaths, 2)
	require.Contains(t, cleanPaths, cleanEN)

	counterparts, err := store.PerturbedCounterparts(cleanEN)
	require.NoError(t, err)
	// Same task and language only.
	require.Equal(t, []string{noiseEN}, counterparts)
}

func TestWriteMetricsAndSummary(t *testing.T) {
	store, err := results.NewStore(t.TempDir())
	require.NoError(t, err)

	key := results.Key{Task: "sentiment", Perturbation: "noise", Level: 0.1}
	path, err := store.WriteMetrics(key, map[string]core.MetricsRecord{
		"en": {Accuracy: 0.9, F1Macro: 0.85},
	})
	require.NoError(t, err)
	require.FileExists(t, path)

	key.Language = "en"
	path, err = store.WriteSummary(key, core.RobustnessSummary{AccClean: 0.9})
	require.NoError(t, err)
	require.FileExists(t, path)
}

func TestWriteConsistencyUsesGivenDir(t *testing.T) {
	store, err := results.NewStore(t.TempDir())
	require.NoError(t, err)

	sub := filepath.Join(store.Dir, "model-a")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	key := results.Key{Task: "sentiment", Perturbation: "noise", Level: 0.1, Language: "en"}
	path, err := store.WriteConsistency(sub, key, map[string]int{"total_samples": 2})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(sub, key.ConsistencyName()), path)
	require.FileExists(t, path)
}

func TestWriteProvenance(t *testing.T) {
	store, err := results.NewStore(t.TempDir())
	require.NoError(t, err)

	key := results.Key{Task: "sentiment", Perturbation: "noise", Level: 0.1}
	path, err := store.WriteProvenance(key, []map[string]string{
		{"id": "1", "original_text": "good", "perturbed_text": "god"},
	})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(store.Dir, "sentiment_noise_0.1_provenance.json"), path)
	require.FileExists(t, path)
}
