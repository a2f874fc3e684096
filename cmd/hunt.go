package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/AstraForge/skyhound-cli/internal/filter"
	"github.com/AstraForge/skyhound-cli/internal/report"
	"github.com/AstraForge/skyhound-cli/internal/ring"
	"github.com/AstraForge/skyhound-cli/internal/skymap"
	"github.com/AstraForge/skyhound-cli/internal/utils"
)

var (
	huntGalacticCut float64
	huntHurstMin    float64
	huntCorrMin     float64
	huntOut         string
)

var huntCmd = &cobra.Command{
	Use:   "hunt <metrics.csv>",
	Short: "Filter a metrics table with the galactic exclusion mask",
	Long: `Hunt applies the strict cut: rings inside the galactic exclusion band are
dropped as foreground contamination, then the fractal and correlation
thresholds are applied. There is no fallback; an empty result means the
signal was purely in-plane and is reported as such.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := activeConfig()
		th := filter.Thresholds{
			GalacticCut: c.GalacticCut,
			HurstMin:    c.HurstMin,
			CorrMin:     c.CorrMin,
		}
		f := cmd.Flags()
		if f.Changed("galactic-cut") {
			th.GalacticCut = huntGalacticCut
		}
		if f.Changed("hurst-min") {
			th.HurstMin = huntHurstMin
		}
		if f.Changed("corr-min") {
			th.CorrMin = huntCorrMin
		}
		policies, err := filter.Strict(th)
		if err != nil {
			return err
		}

		tbl, err := ring.Load(args[0])
		if err != nil {
			return err
		}
		res := filter.Run(tbl.Records, policies)

		outDir := huntOut
		if outDir == "" {
			outDir = c.OutputDir
		}
		title := fmt.Sprintf("ANOMALY HUNT: %d candidates (|lat| > %.0f°, hurst > %.2f, corr > %.2f)",
			res.Summary.Survivors, th.GalacticCut, th.HurstMin, th.CorrMin)
		if err := emitRun("hunt", args[0], outDir, tbl, res, th, skymap.Options{
			Title:       title,
			GalacticCut: th.GalacticCut,
			LabelTop:    c.LabelTop,
		}); err != nil {
			return err
		}

		report.PrintSummary(os.Stdout, res.Summary)
		if res.Summary.Survivors == 0 {
			fmt.Println("\nNo candidates above threshold: the signal is purely in-plane.")
		}
		report.PrintTop(os.Stdout, res.Survivors, c.TopN)
		fmt.Printf("\n✓ Artifacts written to %s\n", outDir)
		return nil
	},
}

// emitRun writes the three run artifacts: ranked candidates, sky map, and
// manifest. Artifacts are written even when the survivor set is empty, so a
// null result is still inspectable.
func emitRun(command, input, outDir string, tbl *ring.Table, res filter.Result, th filter.Thresholds, mapOpt skymap.Options) error {
	if err := utils.EnsureOutputDir(outDir); err != nil {
		return &report.WriteError{Path: outDir, Err: err}
	}

	candPath := filepath.Join(outDir, "candidates.csv")
	if err := report.WriteCandidates(candPath, res.Survivors, tbl.ExtraCols); err != nil {
		return err
	}

	mapPath := filepath.Join(outDir, "sky_map.png")
	if err := skymap.Render(mapPath, tbl.Records, res.Survivors, mapOpt); err != nil {
		return &report.WriteError{Path: mapPath, Err: err}
	}

	m := report.NewManifest(command, input, th, res.Summary)
	m.Artifacts = []string{candPath, mapPath}
	if debug {
		fmt.Fprintf(os.Stderr, "run %s: policy %s, %d survivors\n", m.RunID, res.Summary.Policy, res.Summary.Survivors)
	}
	return report.WriteManifest(filepath.Join(outDir, "run.json"), m)
}

func init() {
	rootCmd.AddCommand(huntCmd)
	huntCmd.Flags().Float64Var(&huntGalacticCut, "galactic-cut", 20.0, "exclude rings with |lat| <= cut, degrees")
	huntCmd.Flags().Float64Var(&huntHurstMin, "hurst-min", 0.80, "minimum hurst_I to retain")
	huntCmd.Flags().Float64Var(&huntCorrMin, "corr-min", 0.20, "minimum corr_IP to retain")
	huntCmd.Flags().StringVar(&huntOut, "out", "", "output directory (default from config)")
}
