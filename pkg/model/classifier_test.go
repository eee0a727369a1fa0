package model_test

import (
	"context"
	"errors"
	"testing"

	"robustgo/pkg/core"
	"robustgo/pkg/model"

	"github.com/stretchr/testify/require"
)

func TestMockIsDeterministic(t *testing.T) {
	mock := model.Mock{Labels: []string{"positive", "negative", "neutral"}}

	first, err := mock.Generate(context.Background(), "a fixed prompt", model.GenerateOptions{})
	require.NoError(t, err)
	second, err := mock.Generate(context.Background(), "a fixed prompt", model.GenerateOptions{})
	require.NoError(t, err)
	require.Equal(t, first.Content, second.Content)
	require.Contains(t, []string{"positive", "negative", "neutral"}, first.Content)
}

func TestMockFixedResponseWins(t *testing.T) {
	mock := model.Mock{Labels: []string{"a", "b"}, ResponseText: "b"}
	resp, err := mock.Generate(context.Background(), "whatever", model.GenerateOptions{})
	require.NoError(t, err)
	require.Equal(t, "b", resp.Content)
}

func TestClassifierPredict(t *testing.T) {
	classifier := &model.Classifier{
		Model:  model.Mock{ResponseText: "Positive"},
		Labels: []string{"positive", "negative"},
	}

	pred, err := classifier.Predict(context.Background(), core.FlatText("a good day"))
	require.NoError(t, err)
	require.Equal(t, "positive", pred.Label)
}

func TestClassifierBatchPreservesOrder(t *testing.T) {
	classifier := &model.Classifier{
		Model:  model.Mock{Labels: []string{"positive", "negative", "neutral"}},
		Labels: []string{"positive", "negative", "neutral"},
	}

	inputs := []core.ModelInput{
		core.FlatText("first"),
		core.FlatText("second"),
		core.FlatText("third"),
	}

	preds, err := classifier.BatchPredict(context.Background(), inputs, 2)
	require.NoError(t, err)
	require.Len(t, preds, 3)

	for i, input := range inputs {
		single, err := classifier.Predict(context.Background(), input)
		require.NoError(t, err)
		require.Equal(t, single.Label, preds[i].Label)
	}
}

type failingModel struct{ calls int }

func (f *failingModel) Name() string { return "failing" }

func (f *failingModel) Generate(context.Context, string, model.GenerateOptions) (model.Response, error) {
	f.calls++
	if f.calls > 1 {
		return model.Response{}, errors.New("backend down")
	}
	return model.Response{Content: "positive"}, nil
}

func TestClassifierBatchAbortsOnFirstError(t *testing.T) {
	classifier := &model.Classifier{
		Model:  &failingModel{},
		Labels: []string{"positive", "negative"},
	}

	inputs := []core.ModelInput{core.FlatText("a"), core.FlatText("b"), core.FlatText("c")}
	preds, err := classifier.BatchPredict(context.Background(), inputs, 0)
	require.Error(t, err)
	require.Nil(t, preds)
}

func TestClassifierRequiresModel(t *testing.T) {
	classifier := &model.Classifier{Labels: []string{"a"}}
	_, err := classifier.Predict(context.Background(), core.FlatText("x"))
	require.Error(t, err)
}
