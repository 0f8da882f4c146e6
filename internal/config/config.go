package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/rehabrisk-cli/internal/risk"
	"github.com/KaramelBytes/rehabrisk-cli/internal/utils"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Clinical thresholds
	BaselineWorkload     float64 `mapstructure:"baseline_workload" yaml:"baseline_workload"`
	ExertionTolerancePct float64 `mapstructure:"exertion_tolerance_pct" yaml:"exertion_tolerance_pct"`
	StabilityThresholdSD float64 `mapstructure:"stability_threshold_sd" yaml:"stability_threshold_sd"`
	SilenceThreshold     float64 `mapstructure:"silence_threshold" yaml:"silence_threshold"`
	SilenceRatioLimit    float64 `mapstructure:"silence_ratio_limit" yaml:"silence_ratio_limit"`

	// Folder picker command, e.g. "zenity --file-selection --directory"
	PickerCommand string `mapstructure:"picker_command" yaml:"picker_command"`
	OutputFormat  string `mapstructure:"output_format" yaml:"output_format"`

	// serve / watch
	ServeAddr       string `mapstructure:"serve_addr" yaml:"serve_addr"`
	WatchDebounceMs int    `mapstructure:"watch_debounce_ms" yaml:"watch_debounce_ms"`
}

// Thresholds returns the risk configuration carried by g.
func (g *Global) Thresholds() risk.Config {
	return risk.Config{
		BaselineWorkload:     g.BaselineWorkload,
		ExertionTolerancePct: g.ExertionTolerancePct,
		StabilityThresholdSD: g.StabilityThresholdSD,
		SilenceThreshold:     g.SilenceThreshold,
		SilenceRatioLimit:    g.SilenceRatioLimit,
	}
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".rehabrisk"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.rehabrisk/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return err
		}
		if err := utils.EnsureDir(dir); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("REHABRISK")
	v.AutomaticEnv()

	// Defaults
	d := risk.DefaultConfig()
	v.SetDefault("baseline_workload", d.BaselineWorkload)
	v.SetDefault("exertion_tolerance_pct", d.ExertionTolerancePct)
	v.SetDefault("stability_threshold_sd", d.StabilityThresholdSD)
	v.SetDefault("silence_threshold", d.SilenceThreshold)
	v.SetDefault("silence_ratio_limit", d.SilenceRatioLimit)
	v.SetDefault("picker_command", "")
	v.SetDefault("output_format", "text")
	v.SetDefault("serve_addr", ":8080")
	v.SetDefault("watch_debounce_ms", 500)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.WatchDebounceMs <= 0 {
		c.WatchDebounceMs = 500
	}
	return &c, nil
}
