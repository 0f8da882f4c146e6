package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	cfgpkg "github.com/KaramelBytes/rehabrisk-cli/internal/config"
	"github.com/KaramelBytes/rehabrisk-cli/internal/risk"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	// Threshold flags (override config if set)
	flagBaselineWorkload  float64
	flagExertionTolerance float64
	flagStabilitySD       float64
	flagSilenceThreshold  float64
	flagSilenceRatio      float64

	// Loaded configuration
	cfg    *cfgpkg.Global
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
)

// errRiskFound is returned by analyze --fail-exit when the verdict is FAIL.
var errRiskFound = errors.New("risk flagged")

var rootCmd = &cobra.Command{
	Use:           "rehabrisk",
	Short:         "RehabRisk: screen rehabilitation session exports against clinical thresholds",
	Long:          `RehabRisk evaluates a patient's speech, bike and balance CSV exports against fixed clinical thresholds and reports a PASS/FAIL verdict with itemized risk reasons.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errRiskFound) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.rehabrisk/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().Float64Var(&flagBaselineWorkload, "baseline-workload", 0, "baseline bike workload (overrides config)")
	rootCmd.PersistentFlags().Float64Var(&flagExertionTolerance, "exertion-tolerance", 0, "allowed workload excess over baseline in percent (overrides config)")
	rootCmd.PersistentFlags().Float64Var(&flagStabilitySD, "stability-sd", 0, "maximum positional standard deviation (overrides config)")
	rootCmd.PersistentFlags().Float64Var(&flagSilenceThreshold, "silence-threshold", 0, "speech level below which a sample is a pause (overrides config)")
	rootCmd.PersistentFlags().Float64Var(&flagSilenceRatio, "silence-ratio", 0, "maximum fraction of pause samples (overrides config)")
}

func loadConfig() {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in thresholds
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
}

// thresholds returns the effective risk configuration: config file values
// with any explicitly set flags applied on top.
func thresholds() risk.Config {
	t := risk.DefaultConfig()
	if cfg != nil {
		t = cfg.Thresholds()
	}
	f := rootCmd.PersistentFlags()
	if f.Changed("baseline-workload") {
		t.BaselineWorkload = flagBaselineWorkload
	}
	if f.Changed("exertion-tolerance") {
		t.ExertionTolerancePct = flagExertionTolerance
	}
	if f.Changed("stability-sd") {
		t.StabilityThresholdSD = flagStabilitySD
	}
	if f.Changed("silence-threshold") {
		t.SilenceThreshold = flagSilenceThreshold
	}
	if f.Changed("silence-ratio") {
		t.SilenceRatioLimit = flagSilenceRatio
	}
	return t
}
