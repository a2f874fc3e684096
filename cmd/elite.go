package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AstraForge/skyhound-cli/internal/filter"
	"github.com/AstraForge/skyhound-cli/internal/report"
	"github.com/AstraForge/skyhound-cli/internal/ring"
	"github.com/AstraForge/skyhound-cli/internal/skymap"
)

var (
	eliteHurstMin    float64
	eliteCorrMin     float64
	eliteFallbackMin float64
	eliteOut         string
)

var eliteCmd = &cobra.Command{
	Use:   "elite <metrics.csv>",
	Short: "Filter a metrics table without the galactic mask",
	Long: `Elite hunts over the whole sky, including the galactic plane. The primary
cut requires both strong correlation and fractal structure; if it leaves
nothing, a relaxed correlation-only cut is applied so the run still surfaces
the strongest rings.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := activeConfig()
		th := filter.Thresholds{
			HurstMin:        c.HurstMin,
			CorrMin:         c.EliteCorrMin,
			FallbackCorrMin: c.FallbackCorrMin,
		}
		f := cmd.Flags()
		if f.Changed("hurst-min") {
			th.HurstMin = eliteHurstMin
		}
		if f.Changed("corr-min") {
			th.CorrMin = eliteCorrMin
		}
		if f.Changed("fallback-corr-min") {
			th.FallbackCorrMin = eliteFallbackMin
		}
		policies, err := filter.Elite(th)
		if err != nil {
			return err
		}

		tbl, err := ring.Load(args[0])
		if err != nil {
			return err
		}
		res := filter.Run(tbl.Records, policies)

		outDir := eliteOut
		if outDir == "" {
			outDir = c.OutputDir
		}
		title := fmt.Sprintf("ELITE HUNT: %d candidates (corr > %.2f)", res.Summary.Survivors, th.CorrMin)
		if res.Summary.FallbackApplied {
			title = fmt.Sprintf("ELITE HUNT: %d candidates (fallback corr > %.2f)",
				res.Summary.Survivors, th.FallbackCorrMin)
		}
		if err := emitRun("elite", args[0], outDir, tbl, res, th, skymap.Options{
			Title:    title,
			LabelTop: c.LabelTop,
		}); err != nil {
			return err
		}

		report.PrintSummary(os.Stdout, res.Summary)
		if res.Summary.FallbackApplied {
			fmt.Fprintf(os.Stderr, "⚠ Primary cut (corr > %.2f) left nothing; relaxed to corr > %.2f.\n",
				th.CorrMin, th.FallbackCorrMin)
		}
		report.PrintTop(os.Stdout, res.Survivors, c.TopN)
		fmt.Printf("\n✓ Artifacts written to %s\n", outDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(eliteCmd)
	eliteCmd.Flags().Float64Var(&eliteHurstMin, "hurst-min", 0.80, "minimum hurst_I for the primary cut")
	eliteCmd.Flags().Float64Var(&eliteCorrMin, "corr-min", 0.25, "minimum corr_IP for the primary cut")
	eliteCmd.Flags().Float64Var(&eliteFallbackMin, "fallback-corr-min", 0.15, "relaxed corr_IP cut when the primary leaves nothing")
	eliteCmd.Flags().StringVar(&eliteOut, "out", "", "output directory (default from config)")
}
