package model

import (
	"strings"

	"robustgo/pkg/core"
)

// maxInputChars truncates pathological inputs before they reach a backend.
const maxInputChars = 2000

// BuildPrompt renders a label-constrained zero-shot classification prompt.
// Pair inputs keep their premise/hypothesis structure; flat inputs are
// presented as a single text.
func BuildPrompt(input core.ModelInput, labels []string) string {
	var b strings.Builder
	b.WriteString("Classify the input into exactly one of these labels: ")
	b.WriteString(strings.Join(labels, ", "))
	b.WriteString(".\nRespond with the label only.\n")
	if input.Kind == core.KindPremiseHypothesis {
		b.WriteString("Premise: ")
		b.WriteString(truncate(input.Premise))
		b.WriteString("\nHypothesis: ")
		b.WriteString(truncate(input.Hypothesis))
	} else {
		b.WriteString("Text: ")
		b.WriteString(truncate(input.Text))
	}
	b.WriteString("\nLabel:")
	return b.String()
}

// ParseLabel maps a completion onto a candidate label. Matching is
// case-insensitive on the first line of the completion, falling back to a
// substring scan; an unmatched completion is kept verbatim as a bare label so
// downstream metrics count it as simply wrong. Completion backends expose no
// calibrated probability, hence the LabelOnly fallback.
func ParseLabel(content string, labels []string) core.RawPrediction {
	answer := firstLine(content)
	folded := strings.ToLower(strings.Trim(answer, " .,:;\"'"))
	for _, label := range labels {
		if folded == strings.ToLower(label) {
			return core.LabelOnly(label)
		}
	}
	for _, label := range labels {
		if strings.Contains(folded, strings.ToLower(label)) {
			return core.LabelOnly(label)
		}
	}
	return core.LabelOnly(answer)
}

func firstLine(content string) string {
	content = strings.TrimSpace(content)
	if i := strings.IndexByte(content, '\n'); i >= 0 {
		content = content[:i]
	}
	return strings.TrimSpace(content)
}

func truncate(text string) string {
	if len(text) <= maxInputChars {
		return text
	}
	return text[:maxInputChars]
}
