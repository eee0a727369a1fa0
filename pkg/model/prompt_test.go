package model_test

import (
	"strings"
	"testing"

	"robustgo/pkg/core"
	"robustgo/pkg/model"

	"github.com/stretchr/testify/require"
)

func TestBuildPromptFlatText(t *testing.T) {
	prompt := model.BuildPrompt(core.FlatText("a good day"), []string{"positive", "negative"})
	require.Contains(t, prompt, "positive, negative")
	require.Contains(t, prompt, "Text: a good day")
	require.True(t, strings.HasSuffix(prompt, "Label:"))
	require.NotContains(t, prompt, "Premise:")
}

func TestBuildPromptPair(t *testing.T) {
	prompt := model.BuildPrompt(core.PremiseHypothesis("a cat sleeps", "an animal rests"), []string{"entailment", "neutral", "contradiction"})
	require.Contains(t, prompt, "Premise: a cat sleeps")
	require.Contains(t, prompt, "Hypothesis: an animal rests")
}

func TestParseLabelExactMatch(t *testing.T) {
	labels := []string{"positive", "negative", "neutral"}

	pred := model.ParseLabel("Positive", labels)
	require.Equal(t, "positive", pred.Label)
	require.InDelta(t, 1.0, pred.Score, 1e-9)

	pred = model.ParseLabel("  negative.\n", labels)
	require.Equal(t, "negative", pred.Label)
}

func TestParseLabelSubstringFallback(t *testing.T) {
	pred := model.ParseLabel("the answer is neutral here", []string{"positive", "negative", "neutral"})
	require.Equal(t, "neutral", pred.Label)
}

func TestParseLabelFirstLineOnly(t *testing.T) {
	pred := model.ParseLabel("positive\nbecause the tone is upbeat", []string{"positive", "negative"})
	require.Equal(t, "positive", pred.Label)
}

func TestParseLabelUnmatchedKeptVerbatim(t *testing.T) {
	pred := model.ParseLabel("cannot decide", []string{"positive", "negative"})
	require.Equal(t, "cannot decide", pred.Label)
}
