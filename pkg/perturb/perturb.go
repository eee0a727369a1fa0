// Package perturb implements parameterized, language-aware text perturbation
// generators: character noise, code-mixing, and synonym paraphrase. Each
// generator owns an explicitly seeded randomness source and is deterministic
// for a fixed seed and call sequence. Empty or unsupported-language input is
// returned unchanged; graceful degradation, not an error.
package perturb

import (
	"hash/fnv"
	"strings"

	"robustgo/pkg/core"
)

// Result carries a perturbed text plus provenance metadata.
type Result struct {
	OriginalText  string  `json:"original_text"`
	PerturbedText string  `json:"perturbed_text"`
	Language      string  `json:"language"`
	Type          string  `json:"perturbation_type"`
	Level         float64 `json:"level"`
}

// Perturber transforms one text in one language.
type Perturber interface {
	Name() string
	Perturb(text, language string) Result
}

// Record is the provenance of one perturbed example.
type Record struct {
	ID string `json:"id"`
	Result
}

// Apply perturbs every example in the dataset, preserving IDs and labels.
// Pair examples have premise and hypothesis perturbed independently;
// classification examples have their text field perturbed.
func Apply(examples []core.Example, p Perturber) ([]core.Example, []Record) {
	out := make([]core.Example, len(examples))
	records := make([]Record, len(examples))
	for i, ex := range examples {
		perturbed := ex
		if ex.IsPair() {
			pr := p.Perturb(ex.Premise, ex.Language)
			hr := p.Perturb(ex.Hypothesis, ex.Language)
			perturbed.Premise = pr.PerturbedText
			perturbed.Hypothesis = hr.PerturbedText
			records[i] = Record{ID: ex.ID, Result: Result{
				OriginalText:  ex.Input().Flatten(),
				PerturbedText: perturbed.Input().Flatten(),
				Language:      pr.Language,
				Type:          pr.Type,
				Level:         pr.Level,
			}}
		} else {
			r := p.Perturb(ex.Text, ex.Language)
			perturbed.Text = r.PerturbedText
			records[i] = Record{ID: ex.ID, Result: r}
		}
		out[i] = perturbed
	}
	return out, records
}

// DeriveSeed maps a base seed and a cell identifier to an independent seed,
// so that cells evaluated concurrently reproduce the same perturbed text as a
// sequential run.
func DeriveSeed(base int64, cell string) int64 {
	h := fnv.New64a()
	h.Write([]byte(cell))
	return base ^ int64(h.Sum64())
}

// lookupPunct is stripped from tokens before dictionary lookup. Includes the
// Devanagari danda and pipe used as sentence terminators.
const lookupPunct = ".,!?\"'।|"

// normalizeLang lowercases a language tag and folds the full names seen in
// upstream datasets onto their short codes.
func normalizeLang(lang string) string {
	lang = strings.ToLower(lang)
	switch lang {
	case "hindi", "hind":
		return "hi"
	case "marathi":
		return "mr"
	case "bengali", "bangla":
		return "bn"
	case "english":
		return "en"
	}
	return lang
}
