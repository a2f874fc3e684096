package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AstraForge/skyhound-cli/internal/analysis"
)

var (
	insDelimiter string
	insNoCorr    bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <metrics.csv>",
	Short: "Profile a metrics table before hunting in it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt := analysis.DefaultOptions()
		switch insDelimiter {
		case "":
		case ",":
			opt.Delimiter = ','
		case ";":
			opt.Delimiter = ';'
		case "\t", "tab":
			opt.Delimiter = '\t'
		default:
			return fmt.Errorf("unsupported --delimiter: %s", insDelimiter)
		}
		opt.Correlations = !insNoCorr

		rep, err := analysis.AnalyzeCSV(args[0], opt)
		if err != nil {
			return err
		}
		fmt.Print(rep.Text())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVar(&insDelimiter, "delimiter", "", "field delimiter: ','|';'|'tab' (default auto-detect)")
	inspectCmd.Flags().BoolVar(&insNoCorr, "no-corr", false, "skip the correlation matrix")
}
