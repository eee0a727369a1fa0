package commands

import (
	"errors"
	"fmt"
	"path/filepath"

	"robustgo/pkg/analysis"
	"robustgo/pkg/results"

	"github.com/spf13/cobra"
)

func newAnalyzeCommand() *cobra.Command {
	var (
		resultsDir string
		threshold  float64
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze prediction consistency across a results tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := resolveString(resultsDir, appConfig.OutputDir)
			if dir == "" {
				return errors.New("results directory is required")
			}
			thresholdResolved := threshold
			if !cmd.Flags().Changed("threshold") && appConfig.HighConfThreshold > 0 {
				thresholdResolved = appConfig.HighConfThreshold
			}

			store, err := results.NewStore(dir)
			if err != nil {
				return err
			}
			analyzer := analysis.Analyzer{
				Store:     store,
				Logger:    logger,
				Threshold: thresholdResolved,
			}
			cases, err := analyzer.Run()
			if err != nil {
				return err
			}

			casesPath := outputPath
			if casesPath == "" {
				casesPath = filepath.Join(dir, "error_cases.json")
			}
			if err := analysis.WriteErrorCases(casesPath, cases); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d error cases to %s\n", len(cases), casesPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&resultsDir, "results-dir", "", "results directory to analyze")
	cmd.Flags().Float64Var(&threshold, "threshold", analysis.DefaultHighConfThreshold, "confidence threshold for high-confidence failures")
	cmd.Flags().StringVar(&outputPath, "output", "", "error cases file path (default <results-dir>/error_cases.json)")

	return cmd
}
