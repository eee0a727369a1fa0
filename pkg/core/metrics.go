package core

import (
	"errors"
	"fmt"
	"sort"
)

// ErrLengthMismatch reports reference/prediction lists of unequal length.
// This is an input contract violation and aborts the caller's cell.
var ErrLengthMismatch = errors.New("metrics: reference and prediction lengths differ")

// Classification computes accuracy, macro-F1, and a confusion matrix over a
// (references, predictions) pair. Empty input yields a zeroed record, a
// defined edge case for languages with no samples. Macro-F1 averages
// per-class F1 unweighted by support; classes with zero predicted-or-true
// instances contribute 0.
func Classification(references, predictions []string) (MetricsRecord, error) {
	if len(references) != len(predictions) {
		return MetricsRecord{}, fmt.Errorf("%w: refs %d vs preds %d", ErrLengthMismatch, len(references), len(predictions))
	}
	if len(references) == 0 {
		return MetricsRecord{}, nil
	}

	labels := labelUnion(references, predictions)
	index := make(map[string]int, len(labels))
	for i, l := range labels {
		index[l] = i
	}

	matrix := make([][]int, len(labels))
	for i := range matrix {
		matrix[i] = make([]int, len(labels))
	}

	correct := 0
	for i := range references {
		if references[i] == predictions[i] {
			correct++
		}
		matrix[index[references[i]]][index[predictions[i]]]++
	}

	var f1Sum float64
	for c := range labels {
		tp := matrix[c][c]
		var fp, fn int
		for other := range labels {
			if other == c {
				continue
			}
			fp += matrix[other][c]
			fn += matrix[c][other]
		}
		// Zero-division-safe: a class with no true or predicted
		// instances scores 0.
		if denom := 2*tp + fp + fn; denom > 0 {
			f1Sum += 2 * float64(tp) / float64(denom)
		}
	}

	return MetricsRecord{
		Accuracy:        float64(correct) / float64(len(references)),
		F1Macro:         f1Sum / float64(len(labels)),
		ConfusionMatrix: matrix,
		Labels:          labels,
	}, nil
}

// Consistency is the fraction of positions where the two label lists agree.
// Pairing is positional: callers must guarantee both lists follow the same
// underlying example order. Mismatched lengths and empty input both yield
// 0.0, a defined result rather than an error.
func Consistency(cleanPreds, perturbedPreds []string) float64 {
	if len(cleanPreds) != len(perturbedPreds) || len(cleanPreds) == 0 {
		return 0.0
	}
	agreements := 0
	for i := range cleanPreds {
		if cleanPreds[i] == perturbedPreds[i] {
			agreements++
		}
	}
	return float64(agreements) / float64(len(cleanPreds))
}

// Summarize computes absolute and relative robustness drops between a clean
// and a perturbed metrics record. Relative drop is 0.0 when the clean value
// is 0, a documented convention to avoid division by zero.
func Summarize(clean, perturbed MetricsRecord, consistency float64) RobustnessSummary {
	return RobustnessSummary{
		AccClean:     clean.Accuracy,
		AccPerturbed: perturbed.Accuracy,
		AbsDropAcc:   clean.Accuracy - perturbed.Accuracy,
		RelDropAcc:   relativeDrop(clean.Accuracy, perturbed.Accuracy),
		F1Clean:      clean.F1Macro,
		F1Perturbed:  perturbed.F1Macro,
		AbsDropF1:    clean.F1Macro - perturbed.F1Macro,
		RelDropF1:    relativeDrop(clean.F1Macro, perturbed.F1Macro),
		Consistency:  consistency,
	}
}

func relativeDrop(clean, perturbed float64) float64 {
	if clean <= 0 {
		return 0.0
	}
	return (clean - perturbed) / clean
}

func labelUnion(references, predictions []string) []string {
	seen := make(map[string]struct{}, len(references))
	for _, r := range references {
		seen[r] = struct{}{}
	}
	for _, p := range predictions {
		seen[p] = struct{}{}
	}
	labels := make([]string, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}
