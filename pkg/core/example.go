package core

// Example is one standardized dataset record. ID is the stable join key
// between the clean and perturbed variants of the same underlying example
// and must survive perturbation unchanged, as must Label.
type Example struct {
	ID         string `json:"id"`
	Language   string `json:"language"`
	Task       string `json:"task"`
	Text       string `json:"text,omitempty"`
	Premise    string `json:"premise,omitempty"`
	Hypothesis string `json:"hypothesis,omitempty"`
	Label      string `json:"label"`
}

// IsPair reports whether the example carries a premise/hypothesis pair.
// The pair form wins only when both sides are present.
func (e Example) IsPair() bool {
	return e.Premise != "" && e.Hypothesis != ""
}

// Input builds the model-boundary input for the example. Examples with no
// recognizable text field degrade to an empty flat input rather than failing.
func (e Example) Input() ModelInput {
	if e.IsPair() {
		return PremiseHypothesis(e.Premise, e.Hypothesis)
	}
	return FlatText(e.Text)
}

// InputKind discriminates the two model input shapes.
type InputKind int

const (
	KindFlatText InputKind = iota
	KindPremiseHypothesis
)

// ModelInput is the tagged union passed across the model boundary: either a
// flat text or a premise/hypothesis pair.
type ModelInput struct {
	Kind       InputKind `json:"kind"`
	Text       string    `json:"text,omitempty"`
	Premise    string    `json:"premise,omitempty"`
	Hypothesis string    `json:"hypothesis,omitempty"`
}

func FlatText(text string) ModelInput {
	return ModelInput{Kind: KindFlatText, Text: text}
}

func PremiseHypothesis(premise, hypothesis string) ModelInput {
	return ModelInput{Kind: KindPremiseHypothesis, Premise: premise, Hypothesis: hypothesis}
}

// Flatten renders the input as a single string, joining pair inputs with a
// space. Used by backends that accept only flat prompts and by the
// persisted prediction tables.
func (in ModelInput) Flatten() string {
	if in.Kind == KindPremiseHypothesis {
		return in.Premise + " " + in.Hypothesis
	}
	return in.Text
}

// RawPrediction is the tagged union a backend returns for one input: a label
// with a confidence score, or a bare label (score defaults to 1.0).
type RawPrediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// LabelOnly wraps a bare label. The 1.0 confidence is a documented fallback
// for backends that expose no score, not a claim of certainty.
func LabelOnly(label string) RawPrediction {
	return RawPrediction{Label: label, Score: 1.0}
}

func LabelWithScore(label string, score float64) RawPrediction {
	return RawPrediction{Label: label, Score: score}
}

// Prediction is one normalized model output, identified by example ID rather
// than position.
type Prediction struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// MetricsRecord holds classification metrics for one (references, predictions)
// pair. Derived and immutable; recomputed per (task, perturbation, language)
// cell.
type MetricsRecord struct {
	Accuracy        float64  `json:"accuracy"`
	F1Macro         float64  `json:"f1_macro"`
	ConfusionMatrix [][]int  `json:"confusion_matrix,omitempty"`
	Labels          []string `json:"labels,omitempty"`
}

// RobustnessSummary compares a clean and a perturbed MetricsRecord. One
// instance per language per (task, perturbation, level).
type RobustnessSummary struct {
	AccClean     float64 `json:"acc_clean"`
	AccPerturbed float64 `json:"acc_perturbed"`
	AbsDropAcc   float64 `json:"abs_drop_acc"`
	RelDropAcc   float64 `json:"rel_drop_acc"`
	F1Clean      float64 `json:"f1_clean"`
	F1Perturbed  float64 `json:"f1_perturbed"`
	AbsDropF1    float64 `json:"abs_drop_f1"`
	RelDropF1    float64 `json:"rel_drop_f1"`
	Consistency  float64 `json:"consistency"`
}
