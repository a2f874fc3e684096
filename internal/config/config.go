package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure. Thresholds here are defaults; command
// flags override them per run.
type Global struct {
	// Strict-hunt thresholds.
	GalacticCut float64 `mapstructure:"galactic_cut" yaml:"galactic_cut"`
	HurstMin    float64 `mapstructure:"hurst_min" yaml:"hurst_min"`
	CorrMin     float64 `mapstructure:"corr_min" yaml:"corr_min"`

	// Elite-hunt thresholds.
	EliteCorrMin    float64 `mapstructure:"elite_corr_min" yaml:"elite_corr_min"`
	FallbackCorrMin float64 `mapstructure:"fallback_corr_min" yaml:"fallback_corr_min"`

	// Reporting.
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
	TopN      int    `mapstructure:"top_n" yaml:"top_n"`
	LabelTop  int    `mapstructure:"label_top" yaml:"label_top"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.skyhound/config.yaml, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".skyhound")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("SKYHOUND")
	v.AutomaticEnv()

	// Defaults match the thresholds the scan campaign settled on.
	v.SetDefault("galactic_cut", 20.0)
	v.SetDefault("hurst_min", 0.80)
	v.SetDefault("corr_min", 0.20)
	v.SetDefault("elite_corr_min", 0.25)
	v.SetDefault("fallback_corr_min", 0.15)
	v.SetDefault("output_dir", "output")
	v.SetDefault("top_n", 5)
	v.SetDefault("label_top", 3)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".skyhound")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
