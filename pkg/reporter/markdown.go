package reporter

import (
	"fmt"
	"io"
	"strconv"
)

type MarkdownReporter struct {
	Writer io.Writer
}

func (r MarkdownReporter) Report(report CellReport) error {
	if _, err := fmt.Fprintf(r.Writer, "# Robustness Report\n\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(r.Writer, "- Task: %s\n- Model: %s\n- Perturbation: %s\n- Level: %s\n\n",
		report.Task, report.Model, report.Perturbation,
		strconv.FormatFloat(report.Level, 'g', -1, 64)); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(r.Writer, "## Per-language summary\n\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(r.Writer, "| Language | Acc clean | Acc pert | Abs drop | Rel drop | F1 clean | F1 pert | Consistency |\n|---|---|---|---|---|---|---|---|\n"); err != nil {
		return err
	}
	for _, language := range report.Languages {
		summary, ok := report.Summaries[language]
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(
			r.Writer,
			"| %s | %.4f | %.4f | %.4f | %.4f | %.4f | %.4f | %.4f |\n",
			escapePipe(language),
			summary.AccClean,
			summary.AccPerturbed,
			summary.AbsDropAcc,
			summary.RelDropAcc,
			summary.F1Clean,
			summary.F1Perturbed,
			summary.Consistency,
		); err != nil {
			return err
		}
	}

	if len(report.Stats) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(r.Writer, "\n## Prediction flips\n\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(r.Writer, "| Language | Samples | Consistent | Flipped | Flip rate |\n|---|---|---|---|---|\n"); err != nil {
		return err
	}
	for _, language := range report.Languages {
		stats, ok := report.Stats[language]
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(
			r.Writer,
			"| %s | %d | %d | %d | %.4f |\n",
			escapePipe(language),
			stats.TotalSamples,
			stats.ConsistentCount,
			stats.FlippedCount,
			stats.FlipRate,
		); err != nil {
			return err
		}
	}
	return nil
}

func escapePipe(input string) string {
	if input == "" {
		return ""
	}
	out := make([]rune, 0, len(input))
	for _, r := range input {
		if r == '|' {
			out = append(out, '\\', r)
		} else if r == '\n' || r == '\r' {
			out = append(out, ' ')
		} else {
			out = append(out, r)
		}
	}
	return string(out)
}
