package core

import (
	"context"
	"errors"
	"fmt"
)

// Evaluation is the result of one evaluator pass over a dataset: per-language
// metrics plus the ordered per-language predictions needed to pair this pass
// against another one in process, without a round trip through storage.
type Evaluation struct {
	Task        string
	RunTag      string
	Languages   []string
	Metrics     map[string]MetricsRecord
	Predictions map[string][]Prediction
	Examples    map[string][]Example
}

// Evaluator runs a dataset through the model boundary, one language group at
// a time. It is invoked once for a clean dataset and once for a perturbed
// dataset carrying the same IDs; it does not itself enforce that pairing.
type Evaluator struct {
	Runner    Runner
	BatchSize int
	Progress  func(language string, completed, total int)
}

// EvaluateTask groups examples by language (preserving relative order within
// each group), batch-predicts each group, and computes per-language metrics.
// Predictions pair back to examples by position; the Runner contract
// guarantees output order matches input order. A backend failure aborts the
// whole call.
func (e *Evaluator) EvaluateTask(ctx context.Context, examples []Example, task, runTag string) (Evaluation, error) {
	if e.Runner == nil {
		return Evaluation{}, errors.New("evaluator: runner is required")
	}
	batchSize := e.BatchSize
	if batchSize <= 0 {
		batchSize = 16
	}

	languages, groups := groupByLanguage(examples)

	eval := Evaluation{
		Task:        task,
		RunTag:      runTag,
		Languages:   languages,
		Metrics:     make(map[string]MetricsRecord, len(groups)),
		Predictions: make(map[string][]Prediction, len(groups)),
		Examples:    groups,
	}

	for i, lang := range languages {
		group := groups[lang]

		inputs := make([]ModelInput, len(group))
		labels := make([]string, len(group))
		for j, ex := range group {
			inputs[j] = ex.Input()
			labels[j] = ex.Label
		}

		raw, err := e.Runner.BatchPredict(ctx, inputs, batchSize)
		if err != nil {
			return Evaluation{}, fmt.Errorf("evaluator: %s[%s] %s: %w", task, runTag, lang, err)
		}
		if len(raw) != len(group) {
			return Evaluation{}, fmt.Errorf("evaluator: %s[%s] %s: got %d predictions for %d inputs", task, runTag, lang, len(raw), len(group))
		}

		preds := make([]Prediction, len(raw))
		predLabels := make([]string, len(raw))
		for j, rp := range raw {
			preds[j] = Prediction{ID: group[j].ID, Label: rp.Label, Score: rp.Score}
			predLabels[j] = rp.Label
		}

		record, err := Classification(labels, predLabels)
		if err != nil {
			return Evaluation{}, err
		}

		eval.Metrics[lang] = record
		eval.Predictions[lang] = preds

		if e.Progress != nil {
			e.Progress(lang, i+1, len(languages))
		}
	}

	return eval, nil
}

// groupByLanguage partitions examples by language. Grouping is stable: group
// order follows first appearance and examples keep their relative order
// within a group, so two passes over ID-aligned datasets stay index-aligned.
func groupByLanguage(examples []Example) ([]string, map[string][]Example) {
	var languages []string
	groups := make(map[string][]Example)
	for _, ex := range examples {
		lang := ex.Language
		if lang == "" {
			lang = "unknown"
		}
		if _, ok := groups[lang]; !ok {
			languages = append(languages, lang)
		}
		groups[lang] = append(groups[lang], ex)
	}
	return languages, groups
}
