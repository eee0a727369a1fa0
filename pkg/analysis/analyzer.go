package analysis

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"robustgo/pkg/results"
)

// Analyzer batch-processes a results tree: every clean prediction table is
// paired with its perturbed counterparts, consistency reports are written per
// cell, and the qualitative error cases are collected into one document.
type Analyzer struct {
	Store     *results.Store
	Logger    *zap.Logger
	Threshold float64
}

// Run walks the store and returns the collected error cases after writing
// per-cell consistency reports. Pair-level read failures abort the run; a
// partial report would be misleading.
func (a *Analyzer) Run() ([]ErrorCase, error) {
	logger := a.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	threshold := a.Threshold
	if threshold <= 0 {
		threshold = DefaultHighConfThreshold
	}

	cleanPaths, err := a.Store.CleanPredictionFiles()
	if err != nil {
		return nil, err
	}

	var cases []ErrorCase
	for _, cleanPath := range cleanPaths {
		cleanRows, err := a.Store.ReadPredictions(cleanPath)
		if err != nil {
			return nil, err
		}
		counterparts, err := a.Store.PerturbedCounterparts(cleanPath)
		if err != nil {
			return nil, err
		}

		for _, pertPath := range counterparts {
			key, _ := results.ParsePredictionsName(filepath.Base(pertPath))
			pertRows, err := a.Store.ReadPredictions(pertPath)
			if err != nil {
				return nil, err
			}

			stats, pairs := AnalyzePair(cleanRows, pertRows)
			if stats.TotalSamples == 0 {
				logger.Warn("no overlapping ids between clean and perturbed tables",
					zap.String("clean", cleanPath),
					zap.String("perturbed", pertPath))
			}

			if _, err := a.Store.WriteConsistency(filepath.Dir(pertPath), key, Report{Summary: stats, Details: pairs}); err != nil {
				return nil, err
			}
			logger.Info("analyzed cell",
				zap.String("cell", key.Cell()),
				zap.Float64("consistency", stats.ConsistencyScore),
				zap.Float64("flip_rate", stats.FlipRate),
				zap.Int("samples", stats.TotalSamples))

			cases = append(cases, ErrorCases(key, pairs, threshold)...)
		}
	}
	return cases, nil
}

// WriteErrorCases persists the collected error cases as a single JSON
// document.
func WriteErrorCases(path string, cases []ErrorCase) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cases, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
