package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/AstraForge/skyhound-cli/internal/config"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "skyhound",
	Short: "Skyhound: hunt anomalous rings in sky-scan metrics tables",
	Long: `Skyhound reads a precomputed table of per-ring scan metrics (fractal Hurst
score, intensity/polarization correlation), filters out in-plane and weak
rings, and emits a ranked candidate list plus an annotated sky map for human
review.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.skyhound/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
}

// activeConfig returns the loaded configuration, or built-in defaults when
// config loading failed or was skipped.
func activeConfig() *cfgpkg.Global {
	if cfg != nil {
		return cfg
	}
	return &cfgpkg.Global{
		GalacticCut:     20.0,
		HurstMin:        0.80,
		CorrMin:         0.20,
		EliteCorrMin:    0.25,
		FallbackCorrMin: 0.15,
		OutputDir:       "output",
		TopN:            5,
		LabelTop:        3,
	}
}
