package results_test

import (
	"testing"

	"robustgo/pkg/results"

	"github.com/stretchr/testify/require"
)

func TestKeyTag(t *testing.T) {
	clean := results.Key{Task: "sentiment", Perturbation: results.CleanTag, Language: "en"}
	require.Equal(t, "clean", clean.Tag())

	noisy := results.Key{Task: "sentiment", Perturbation: "noise", Level: 0.25, Language: "en"}
	require.Equal(t, "noise_0.25", noisy.Tag())
}

func TestKeyFilenames(t *testing.T) {
	key := results.Key{Task: "nli", Perturbation: "codemix", Level: 0.3, Language: "hi"}
	require.Equal(t, "nli_codemix_0.3_hi_preds.csv", key.PredictionsName())
	require.Equal(t, "nli_codemix_0.3.json", key.MetricsName())
	require.Equal(t, "robustness_nli_codemix_0.3_hi.json", key.SummaryName())
	require.Equal(t, "consistency_nli_codemix_0.3_hi.json", key.ConsistencyName())
	require.Equal(t, "nli_codemix_0.3_provenance.json", key.ProvenanceName())
}

func TestParsePredictionsNameRoundTrip(t *testing.T) {
	keys := []results.Key{
		{Task: "sentiment", Perturbation: results.CleanTag, Language: "en"},
		{Task: "sentiment", Perturbation: "noise", Level: 0.1, Language: "bn"},
		{Task: "nli", Perturbation: "vowel_drop", Level: 0.5, Language: "mr"},
	}
	for _, key := range keys {
		parsed, ok := results.ParsePredictionsName(key.PredictionsName())
		require.True(t, ok, key.PredictionsName())
		require.Equal(t, key, parsed)
	}
}

func TestParsePredictionsNameRejectsOtherFiles(t *testing.T) {
	_, ok := results.ParsePredictionsName("sentiment_noise_0.1.json")
	require.False(t, ok)

	_, ok = results.ParsePredictionsName("short_preds.csv")
	require.False(t, ok)
}

func TestCellIdentifier(t *testing.T) {
	key := results.Key{Task: "sentiment", Perturbation: "noise", Level: 0.1, Language: "en"}
	require.Equal(t, "sentiment/noise_0.1/en", key.Cell())
}
