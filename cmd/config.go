package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/AstraForge/skyhound-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set skyhound configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := activeConfig()
		fmt.Printf("galactic_cut: %.3f\n", c.GalacticCut)
		fmt.Printf("hurst_min: %.3f\n", c.HurstMin)
		fmt.Printf("corr_min: %.3f\n", c.CorrMin)
		fmt.Printf("elite_corr_min: %.3f\n", c.EliteCorrMin)
		fmt.Printf("fallback_corr_min: %.3f\n", c.FallbackCorrMin)
		fmt.Printf("output_dir: %s\n", c.OutputDir)
		fmt.Printf("top_n: %d\n", c.TopN)
		fmt.Printf("label_top: %d\n", c.LabelTop)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "galactic_cut", "hurst_min", "corr_min", "elite_corr_min", "fallback_corr_min":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return fmt.Errorf("invalid float for %s: %v", key, val)
			}
			switch key {
			case "galactic_cut":
				cfg.GalacticCut = f
			case "hurst_min":
				cfg.HurstMin = f
			case "corr_min":
				cfg.CorrMin = f
			case "elite_corr_min":
				cfg.EliteCorrMin = f
			case "fallback_corr_min":
				cfg.FallbackCorrMin = f
			}
		case "output_dir":
			cfg.OutputDir = val
		case "top_n":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for top_n: %v", val)
			}
			cfg.TopN = i
		case "label_top":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for label_top: %v", val)
			}
			cfg.LabelTop = i
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default thresholds",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := cfgpkg.Load(cfgFile)
		if err != nil {
			return err
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Println("Wrote config with defaults")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
}
