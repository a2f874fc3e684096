package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AstraForge/skyhound-cli/internal/report"
	"github.com/AstraForge/skyhound-cli/internal/skymap"
)

var (
	mapOutPath string
	mapTitle   string
)

var mapCmd = &cobra.Command{
	Use:   "map <candidates.csv>",
	Short: "Re-render the sky map from a ranked candidates file",
	Long: `Map redraws the chart artifact from an existing candidates file without
re-filtering, for tweaking a figure after a long hunt.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		recs, err := report.ReadCandidates(args[0])
		if err != nil {
			return err
		}
		title := mapTitle
		if title == "" {
			title = fmt.Sprintf("CANDIDATE MAP: %d rings", len(recs))
		}
		c := activeConfig()
		opt := skymap.Options{Title: title, LabelTop: c.LabelTop}
		if err := skymap.Render(mapOutPath, recs, recs, opt); err != nil {
			return &report.WriteError{Path: mapOutPath, Err: err}
		}
		fmt.Printf("✓ Sky map written to %s\n", mapOutPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mapCmd)
	mapCmd.Flags().StringVar(&mapOutPath, "out", "sky_map.png", "output image path")
	mapCmd.Flags().StringVar(&mapTitle, "title", "", "chart title (default derived from the file)")
}
