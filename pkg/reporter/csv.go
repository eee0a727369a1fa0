package reporter

import (
	"encoding/csv"
	"io"
	"strconv"
)

type CSVReporter struct {
	Writer io.Writer
}

func (r CSVReporter) Report(report CellReport) error {
	writer := csv.NewWriter(r.Writer)
	header := []string{
		"task", "model", "perturbation", "level", "language",
		"acc_clean", "acc_perturbed", "abs_drop_acc", "rel_drop_acc",
		"f1_clean", "f1_perturbed", "abs_drop_f1", "rel_drop_f1",
		"consistency",
	}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, language := range report.Languages {
		summary, ok := report.Summaries[language]
		if !ok {
			continue
		}
		record := []string{
			report.Task,
			report.Model,
			report.Perturbation,
			strconv.FormatFloat(report.Level, 'g', -1, 64),
			language,
			strconv.FormatFloat(summary.AccClean, 'f', 4, 64),
			strconv.FormatFloat(summary.AccPerturbed, 'f', 4, 64),
			strconv.FormatFloat(summary.AbsDropAcc, 'f', 4, 64),
			strconv.FormatFloat(summary.RelDropAcc, 'f', 4, 64),
			strconv.FormatFloat(summary.F1Clean, 'f', 4, 64),
			strconv.FormatFloat(summary.F1Perturbed, 'f', 4, 64),
			strconv.FormatFloat(summary.AbsDropF1, 'f', 4, 64),
			strconv.FormatFloat(summary.RelDropF1, 'f', 4, 64),
			strconv.FormatFloat(summary.Consistency, 'f', 4, 64),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
