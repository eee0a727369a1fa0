package analysis

import (
	"robustgo/pkg/results"
)

const (
	// DefaultHighConfThreshold flags perturbed predictions that are wrong
	// with confidence strictly above this value.
	DefaultHighConfThreshold = 0.9

	// qualitativeCap bounds the example rows retained per cell so reports
	// stay small regardless of dataset size.
	qualitativeCap = 5
)

// Error case types.
const (
	CaseFlip            = "prediction_flip"
	CaseHighConfFailure = "high_confidence_failure"
)

// ErrorCase is one qualitative example retained for a report.
type ErrorCase struct {
	Type          string  `json:"type"`
	Task          string  `json:"task"`
	Language      string  `json:"language"`
	Perturbation  string  `json:"perturbation"`
	ID            string  `json:"id"`
	TextClean     string  `json:"text_clean,omitempty"`
	TextPerturbed string  `json:"text_perturbed,omitempty"`
	PredClean     string  `json:"pred_clean,omitempty"`
	PredPerturbed string  `json:"pred_perturbed"`
	GroundTruth   string  `json:"ground_truth"`
	Confidence    float64 `json:"confidence,omitempty"`
}

// Flips returns the pairs whose predictions disagree between passes.
func Flips(pairs []JoinedPair) []JoinedPair {
	var flips []JoinedPair
	for _, pair := range pairs {
		if !pair.Consistent {
			flips = append(flips, pair)
		}
	}
	return flips
}

// HighConfidenceFailures returns the pairs where the perturbed prediction
// disagrees with ground truth and its confidence strictly exceeds the
// threshold. A confidence exactly at the threshold is excluded.
func HighConfidenceFailures(pairs []JoinedPair, threshold float64) []JoinedPair {
	var failures []JoinedPair
	for _, pair := range pairs {
		if pair.PerturbedPrediction != pair.Label && pair.PerturbedScore > threshold {
			failures = append(failures, pair)
		}
	}
	return failures
}

// ErrorCases extracts the bounded qualitative sample for one cell: up to
// qualitativeCap flips and qualitativeCap high-confidence failures.
func ErrorCases(key results.Key, pairs []JoinedPair, threshold float64) []ErrorCase {
	var cases []ErrorCase
	for _, pair := range capPairs(Flips(pairs)) {
		cases = append(cases, ErrorCase{
			Type:          CaseFlip,
			Task:          key.Task,
			Language:      key.Language,
			Perturbation:  key.Tag(),
			ID:            pair.ID,
			TextClean:     pair.CleanText,
			TextPerturbed: pair.PerturbedText,
			PredClean:     pair.CleanPrediction,
			PredPerturbed: pair.PerturbedPrediction,
			GroundTruth:   pair.Label,
		})
	}
	for _, pair := range capPairs(HighConfidenceFailures(pairs, threshold)) {
		cases = append(cases, ErrorCase{
			Type:          CaseHighConfFailure,
			Task:          key.Task,
			Language:      key.Language,
			Perturbation:  key.Tag(),
			ID:            pair.ID,
			TextPerturbed: pair.PerturbedText,
			PredPerturbed: pair.PerturbedPrediction,
			GroundTruth:   pair.Label,
			Confidence:    pair.PerturbedScore,
		})
	}
	return cases
}

func capPairs(pairs []JoinedPair) []JoinedPair {
	if len(pairs) > qualitativeCap {
		return pairs[:qualitativeCap]
	}
	return pairs
}
