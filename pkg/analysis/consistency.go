// Package analysis pairs clean and perturbed prediction sets by example ID
// and derives consistency statistics and qualitative error cases.
package analysis

import (
	"robustgo/pkg/results"
)

// JoinedPair is one row of the inner join between a clean and a perturbed
// prediction table. The label is shared: perturbation never changes ground
// truth.
type JoinedPair struct {
	ID                  string  `json:"id"`
	Label               string  `json:"label"`
	CleanText           string  `json:"text_clean,omitempty"`
	PerturbedText       string  `json:"text_perturbed,omitempty"`
	CleanPrediction     string  `json:"clean_prediction"`
	PerturbedPrediction string  `json:"perturbed_prediction"`
	CleanScore          float64 `json:"clean_score"`
	PerturbedScore      float64 `json:"perturbed_score"`
	Consistent          bool    `json:"is_consistent"`
}

// Stats aggregates a joined prediction pair. FlipRate and ConsistencyScore
// always sum to 1 for a non-empty join; an empty join is all zeros.
type Stats struct {
	TotalSamples     int     `json:"total_samples"`
	ConsistentCount  int     `json:"consistent_count"`
	FlippedCount     int     `json:"flipped_count"`
	ConsistencyScore float64 `json:"consistency_score"`
	FlipRate         float64 `json:"flip_rate"`
}

// Report is the persisted per-language consistency document.
type Report struct {
	Summary Stats        `json:"summary"`
	Details []JoinedPair `json:"details"`
}

// Join inner-joins two prediction tables on ID, preserving the clean side's
// order. IDs present on only one side are excluded; they are neither flips
// nor failures.
func Join(clean, perturbed []results.Row) []JoinedPair {
	byID := make(map[string]results.Row, len(perturbed))
	for _, row := range perturbed {
		byID[row.ID] = row
	}
	pairs := make([]JoinedPair, 0, len(clean))
	for _, c := range clean {
		p, ok := byID[c.ID]
		if !ok {
			continue
		}
		pairs = append(pairs, JoinedPair{
			ID:                  c.ID,
			Label:               c.Label,
			CleanText:           c.Text,
			PerturbedText:       p.Text,
			CleanPrediction:     c.Prediction,
			PerturbedPrediction: p.Prediction,
			CleanScore:          c.Score,
			PerturbedScore:      p.Score,
			Consistent:          c.Prediction == p.Prediction,
		})
	}
	return pairs
}

// Summarize aggregates joined pairs. An empty join yields a zero-sample
// result rather than an error.
func Summarize(pairs []JoinedPair) Stats {
	if len(pairs) == 0 {
		return Stats{}
	}
	consistent := 0
	for _, pair := range pairs {
		if pair.Consistent {
			consistent++
		}
	}
	total := len(pairs)
	score := float64(consistent) / float64(total)
	return Stats{
		TotalSamples:     total,
		ConsistentCount:  consistent,
		FlippedCount:     total - consistent,
		ConsistencyScore: score,
		FlipRate:         1.0 - score,
	}
}

// AnalyzePair joins and summarizes two prediction tables in one step.
func AnalyzePair(clean, perturbed []results.Row) (Stats, []JoinedPair) {
	pairs := Join(clean, perturbed)
	return Summarize(pairs), pairs
}
