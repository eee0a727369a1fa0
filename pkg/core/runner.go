package core

import "context"

// Runner is the model-inference boundary. BatchPredict must return one
// prediction per input, in input order; a backend failure fails the whole
// call rather than producing a partial result.
type Runner interface {
	Name() string
	Predict(ctx context.Context, input ModelInput) (RawPrediction, error)
	BatchPredict(ctx context.Context, inputs []ModelInput, batchSize int) ([]RawPrediction, error)
}
