package reporter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

type TableReporter struct {
	Writer io.Writer
}

func (r TableReporter) Report(report CellReport) error {
	fmt.Fprintf(r.Writer, "%s / %s / %s @ %s\n",
		report.Task, report.Model, report.Perturbation,
		strconv.FormatFloat(report.Level, 'g', -1, 64))

	table := tablewriter.NewWriter(r.Writer)
	table.Header([]string{"Language", "Acc clean", "Acc pert", "Drop", "F1 clean", "F1 pert", "Consistency", "Flip rate"})
	for _, language := range report.Languages {
		summary, ok := report.Summaries[language]
		if !ok {
			continue
		}
		flipRate := "-"
		if stats, ok := report.Stats[language]; ok {
			flipRate = fmt.Sprintf("%.4f", stats.FlipRate)
		}
		table.Append([]string{
			language,
			fmt.Sprintf("%.4f", summary.AccClean),
			fmt.Sprintf("%.4f", summary.AccPerturbed),
			fmt.Sprintf("%.4f", summary.AbsDropAcc),
			fmt.Sprintf("%.4f", summary.F1Clean),
			fmt.Sprintf("%.4f", summary.F1Perturbed),
			fmt.Sprintf("%.4f", summary.Consistency),
			flipRate,
		})
	}
	table.Render()
	return nil
}
