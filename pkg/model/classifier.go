package model

import (
	"context"
	"errors"

	"robustgo/pkg/core"
)

// Classifier adapts a completion Model into the core.Runner contract: one
// prompt per input, one parsed label back, order preserved. The first backend
// failure aborts the whole batch; a partial prediction list would silently
// misalign against its examples.
type Classifier struct {
	Model   Model
	Labels  []string
	Options GenerateOptions
	Limiter core.RateLimiter
}

func (c *Classifier) Name() string {
	if c.Model == nil {
		return "classifier"
	}
	return c.Model.Name()
}

func (c *Classifier) Predict(ctx context.Context, input core.ModelInput) (core.RawPrediction, error) {
	if c.Model == nil {
		return core.RawPrediction{}, errors.New("classifier: model is required")
	}
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return core.RawPrediction{}, err
		}
	}
	resp, err := c.Model.Generate(ctx, BuildPrompt(input, c.Labels), c.Options)
	if err != nil {
		return core.RawPrediction{}, err
	}
	return ParseLabel(resp.Content, c.Labels), nil
}

// BatchPredict walks the inputs in batchSize chunks. Requests within a chunk
// run sequentially; batchSize is a resource knob, not a parallelism contract.
func (c *Classifier) BatchPredict(ctx context.Context, inputs []core.ModelInput, batchSize int) ([]core.RawPrediction, error) {
	if batchSize <= 0 {
		batchSize = len(inputs)
	}
	preds := make([]core.RawPrediction, 0, len(inputs))
	for start := 0; start < len(inputs); start += batchSize {
		end := start + batchSize
		if end > len(inputs) {
			end = len(inputs)
		}
		for _, input := range inputs[start:end] {
			pred, err := c.Predict(ctx, input)
			if err != nil {
				return nil, err
			}
			preds = append(preds, pred)
		}
	}
	return preds, nil
}
