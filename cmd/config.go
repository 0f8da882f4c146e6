package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/KaramelBytes/rehabrisk-cli/internal/config"
	"github.com/KaramelBytes/rehabrisk-cli/internal/render"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set RehabRisk configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		t := thresholds()
		fmt.Fprintf(out, "baseline_workload: %g\n", t.BaselineWorkload)
		fmt.Fprintf(out, "exertion_tolerance_pct: %g\n", t.ExertionTolerancePct)
		fmt.Fprintf(out, "stability_threshold_sd: %g\n", t.StabilityThresholdSD)
		fmt.Fprintf(out, "silence_threshold: %g\n", t.SilenceThreshold)
		fmt.Fprintf(out, "silence_ratio_limit: %g\n", t.SilenceRatioLimit)
		if cfg == nil {
			return nil
		}
		if cfg.PickerCommand != "" {
			fmt.Fprintf(out, "picker_command: %s\n", cfg.PickerCommand)
		}
		fmt.Fprintf(out, "output_format: %s\n", cfg.OutputFormat)
		fmt.Fprintf(out, "serve_addr: %s\n", cfg.ServeAddr)
		fmt.Fprintf(out, "watch_debounce_ms: %d\n", cfg.WatchDebounceMs)
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
		parseFloat := func(dst *float64) error {
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return fmt.Errorf("invalid float for %s: %v", key, val)
			}
			*dst = f
			return nil
		}
		var err error
		switch key {
		case "baseline_workload":
			err = parseFloat(&cfg.BaselineWorkload)
		case "exertion_tolerance_pct":
			err = parseFloat(&cfg.ExertionTolerancePct)
		case "stability_threshold_sd":
			err = parseFloat(&cfg.StabilityThresholdSD)
		case "silence_threshold":
			err = parseFloat(&cfg.SilenceThreshold)
		case "silence_ratio_limit":
			err = parseFloat(&cfg.SilenceRatioLimit)
		case "picker_command":
			cfg.PickerCommand = val
		case "output_format":
			f, perr := render.ParseFormat(val)
			if perr != nil {
				return perr
			}
			cfg.OutputFormat = string(f)
		case "serve_addr":
			cfg.ServeAddr = val
		case "watch_debounce_ms":
			i, perr := strconv.Atoi(val)
			if perr != nil || i <= 0 {
				return fmt.Errorf("invalid int for watch_debounce_ms: %v", val)
			}
			cfg.WatchDebounceMs = i
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err != nil {
			return err
		}
		if err := cfg.Thresholds().Validate(); err != nil {
			return err
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
