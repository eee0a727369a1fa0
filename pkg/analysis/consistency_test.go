package analysis_test

import (
	"testing"

	"robustgo/pkg/analysis"
	"robustgo/pkg/results"

	"github.com/stretchr/testify/require"
)

func TestJoinExcludesOneSidedIDs(t *testing.T) {
	clean := []results.Row{
		{ID: "1", Prediction: "a"},
		{ID: "2", Prediction: "b"},
		{ID: "only-clean", Prediction: "c"},
	}
	perturbed := []results.Row{
		{ID: "2", Prediction: "b"},
		{ID: "1", Prediction: "a"},
		{ID: "only-perturbed", Prediction: "c"},
	}

	pairs := analysis.Join(clean, perturbed)
	require.Len(t, pairs, 2)
	// Clean order wins.
	require.Equal(t, "1", pairs[0].ID)
	require.Equal(t, "2", pairs[1].ID)
}

func TestAnalyzePairFlipRate(t *testing.T) {
	clean := []results.Row{
		{ID: "1", Label: "a", Prediction: "a"},
		{ID: "2", Label: "a", Prediction: "a"},
		{ID: "3", Label: "b", Prediction: "b"},
	}
	perturbed := []results.Row{
		{ID: "1", Label: "a", Prediction: "a"},
		{ID: "2", Label: "a", Prediction: "b"},
		{ID: "3", Label: "b", Prediction: "b"},
	}

	stats, pairs := analysis.AnalyzePair(clean, perturbed)
	require.Equal(t, 3, stats.TotalSamples)
	require.Equal(t, 2, stats.ConsistentCount)
	require.Equal(t, 1, stats.FlippedCount)
	require.InDelta(t, 2.0/3.0, stats.ConsistencyScore, 1e-9)
	require.InDelta(t, 1.0/3.0, stats.FlipRate, 1e-9)
	require.InDelta(t, 1.0, stats.ConsistencyScore+stats.FlipRate, 1e-9)

	flips := analysis.Flips(pairs)
	require.Len(t, flips, 1)
	require.Equal(t, "2", flips[0].ID)
}

func TestAnalyzePairSelfJoinIsFullyConsistent(t *testing.T) {
	rows := []results.Row{
		{ID: "1", Prediction: "a"},
		{ID: "2", Prediction: "b"},
	}
	stats, _ := analysis.AnalyzePair(rows, rows)
	require.InDelta(t, 1.0, stats.ConsistencyScore, 1e-9)
	require.Zero(t, stats.FlippedCount)
}

func TestAnalyzePairEmptyJoin(t *testing.T) {
	stats, pairs := analysis.AnalyzePair(nil, nil)
	require.Zero(t, stats.TotalSamples)
	require.Zero(t, stats.ConsistencyScore)
	require.Zero(t, stats.FlipRate)
	require.Empty(t, pairs)
}
