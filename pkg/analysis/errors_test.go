package analysis_test

import (
	"fmt"
	"testing"

	"robustgo/pkg/analysis"
	"robustgo/pkg/results"

	"github.com/stretchr/testify/require"
)

func TestHighConfidenceFailuresThresholdIsStrict(t *testing.T) {
	pairs := []analysis.JoinedPair{
		{ID: "at", Label: "a", PerturbedPrediction: "b", PerturbedScore: 0.9},
		{ID: "above", Label: "a", PerturbedPrediction: "b", PerturbedScore: 0.91},
		{ID: "correct", Label: "a", PerturbedPrediction: "a", PerturbedScore: 0.99},
	}

	failures := analysis.HighConfidenceFailures(pairs, 0.9)
	require.Len(t, failures, 1)
	require.Equal(t, "above", failures[0].ID)
}

func TestErrorCasesCapped(t *testing.T) {
	key := results.Key{Task: "sentiment", Perturbation: "noise", Level: 0.1, Language: "en"}

	var pairs []analysis.JoinedPair
	for i := 0; i < 8; i++ {
		pairs = append(pairs, analysis.JoinedPair{
			ID:                  fmt.Sprintf("%d", i),
			Label:               "a",
			CleanPrediction:     "a",
			PerturbedPrediction: "b",
			PerturbedScore:      0.95,
			Consistent:          false,
		})
	}

	cases := analysis.ErrorCases(key, pairs, analysis.DefaultHighConfThreshold)

	flips := 0
	failures := 0
	for _, c := range cases {
		require.Equal(t, "sentiment", c.Task)
		require.Equal(t, "en", c.Language)
		require.Equal(t, "noise_0.1", c.Perturbation)
		switch c.Type {
		case analysis.CaseFlip:
			flips++
		case analysis.CaseHighConfFailure:
			failures++
		}
	}
	require.Equal(t, 5, flips)
	require.Equal(t, 5, failures)
}

func TestErrorCasesFlipFields(t *testing.T) {
	key := results.Key{Task: "nli", Perturbation: "codemix", Level: 0.3, Language: "hi"}
	pairs := []analysis.JoinedPair{{
		ID:                  "7",
		Label:               "entailment",
		CleanText:           "clean text",
		PerturbedText:       "mixed text",
		CleanPrediction:     "entailment",
		PerturbedPrediction: "contradiction",
		Consistent:          false,
	}}

	cases := analysis.ErrorCases(key, pairs, analysis.DefaultHighConfThreshold)
	require.Len(t, cases, 1)
	c := cases[0]
	require.Equal(t, analysis.CaseFlip, c.Type)
	require.Equal(t, "7", c.ID)
	require.Equal(t, "clean text", c.TextClean)
	require.Equal(t, "mixed text", c.TextPerturbed)
	require.Equal(t, "entailment", c.PredClean)
	require.Equal(t, "contradiction", c.PredPerturbed)
	require.Equal(t, "entailment", c.GroundTruth)
}
