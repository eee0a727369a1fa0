package dataset

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"robustgo/pkg/core"
)

// NormalizeText applies NFKC normalization, strips Unicode replacement
// characters, and collapses runs of whitespace. Non-text junk at the dataset
// boundary should never reach the perturbation generators.
func NormalizeText(text string) string {
	text = norm.NFKC.String(text)
	text = strings.ReplaceAll(text, "�", "")
	return strings.Join(strings.Fields(text), " ")
}

func normalizeExample(ex *core.Example) {
	if ex.Text != "" {
		ex.Text = NormalizeText(ex.Text)
	}
	if ex.Premise != "" {
		ex.Premise = NormalizeText(ex.Premise)
	}
	if ex.Hypothesis != "" {
		ex.Hypothesis = NormalizeText(ex.Hypothesis)
	}
}
