// Package reporter renders robustness reports for terminals and files.
package reporter

import (
	"robustgo/pkg/analysis"
	"robustgo/pkg/core"
)

// CellReport is one (task, model, perturbation, level) cell of an experiment,
// with per-language robustness summaries and consistency statistics.
type CellReport struct {
	Task         string                            `json:"task"`
	Model        string                            `json:"model"`
	Perturbation string                            `json:"perturbation"`
	Level        float64                           `json:"level"`
	Languages    []string                          `json:"languages"`
	Summaries    map[string]core.RobustnessSummary `json:"summaries"`
	Stats        map[string]analysis.Stats         `json:"stats,omitempty"`
}

// Reporter writes a cell report in one output format.
type Reporter interface {
	Report(report CellReport) error
}

const (
	FormatJSON     = "json"
	FormatTable    = "table"
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
)
