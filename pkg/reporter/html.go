package reporter

import (
	"html/template"
	"io"
	"strconv"
)

type HTMLReporter struct {
	Writer io.Writer
	Title  string
}

type htmlRow struct {
	Language string
	Summary  summaryRow
	HasStats bool
	Stats    statsRow
}

type summaryRow struct {
	AccClean     float64
	AccPerturbed float64
	AbsDropAcc   float64
	RelDropAcc   float64
	F1Clean      float64
	F1Perturbed  float64
	Consistency  float64
}

type statsRow struct {
	TotalSamples int
	FlippedCount int
	FlipRate     float64
}

func (r HTMLReporter) Report(report CellReport) error {
	title := r.Title
	if title == "" {
		title = "Robustness Report"
	}

	rows := make([]htmlRow, 0, len(report.Languages))
	for _, language := range report.Languages {
		summary, ok := report.Summaries[language]
		if !ok {
			continue
		}
		row := htmlRow{
			Language: language,
			Summary: summaryRow{
				AccClean:     summary.AccClean,
				AccPerturbed: summary.AccPerturbed,
				AbsDropAcc:   summary.AbsDropAcc,
				RelDropAcc:   summary.RelDropAcc,
				F1Clean:      summary.F1Clean,
				F1Perturbed:  summary.F1Perturbed,
				Consistency:  summary.Consistency,
			},
		}
		if stats, ok := report.Stats[language]; ok {
			row.HasStats = true
			row.Stats = statsRow{
				TotalSamples: stats.TotalSamples,
				FlippedCount: stats.FlippedCount,
				FlipRate:     stats.FlipRate,
			}
		}
		rows = append(rows, row)
	}

	data := struct {
		Title        string
		Task         string
		Model        string
		Perturbation string
		Level        string
		Rows         []htmlRow
	}{
		Title:        title,
		Task:         report.Task,
		Model:        report.Model,
		Perturbation: report.Perturbation,
		Level:        strconv.FormatFloat(report.Level, 'g', -1, 64),
		Rows:         rows,
	}

	tpl := template.Must(template.New("report").Parse(htmlTemplate))
	return tpl.Execute(r.Writer, data)
}

const htmlTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{ .Title }}</title>
  <style>
    body { font-family: Arial, sans-serif; margin: 24px; }
    table { border-collapse: collapse; width: 100%; margin-top: 16px; }
    th, td { border: 1px solid #ddd; padding: 8px; }
    th { background: #f5f5f5; text-align: left; }
    .meta { margin-bottom: 12px; }
  </style>
</head>
<body>
  <h1>{{ .Title }}</h1>
  <div class="meta">
    <div><strong>Task:</strong> {{ .Task }}</div>
    <div><strong>Model:</strong> {{ .Model }}</div>
    <div><strong>Perturbation:</strong> {{ .Perturbation }}</div>
    <div><strong>Level:</strong> {{ .Level }}</div>
  </div>
  <h2>Per-language summary</h2>
  <table>
    <tr><th>Language</th><th>Acc clean</th><th>Acc perturbed</th><th>Abs drop</th><th>Rel drop</th><th>F1 clean</th><th>F1 perturbed</th><th>Consistency</th><th>Flip rate</th></tr>
    {{ range .Rows }}
    <tr>
      <td>{{ .Language }}</td>
      <td>{{ printf "%.4f" .Summary.AccClean }}</td>
      <td>{{ printf "%.4f" .Summary.AccPerturbed }}</td>
      <td>{{ printf "%.4f" .Summary.AbsDropAcc }}</td>
      <td>{{ printf "%.4f" .Summary.RelDropAcc }}</td>
      <td>{{ printf "%.4f" .Summary.F1Clean }}</td>
      <td>{{ printf "%.4f" .Summary.F1Perturbed }}</td>
      <td>{{ printf "%.4f" .Summary.Consistency }}</td>
      <td>{{ if .HasStats }}{{ printf "%.4f" .Stats.FlipRate }}{{ else }}-{{ end }}</td>
    </tr>
    {{ end }}
  </table>
</body>
</html>
`
