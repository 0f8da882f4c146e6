package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KaramelBytes/rehabrisk-cli/internal/render"
	"github.com/KaramelBytes/rehabrisk-cli/internal/resolve"
	"github.com/KaramelBytes/rehabrisk-cli/internal/watch"
	"github.com/spf13/cobra"
)

var (
	watchPatient  string
	watchFormat   string
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch <folder>",
	Short: "Re-run the analysis whenever new exports land in a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolve.Dir(cmd.Context(), resolve.Static(args[0]))
		if err != nil {
			return err
		}
		format, err := render.ParseFormat(watchFormat)
		if err != nil {
			return err
		}
		debounce := watchDebounce
		if !cmd.Flags().Changed("debounce") && cfg != nil {
			debounce = time.Duration(cfg.WatchDebounceMs) * time.Millisecond
		}
		if err := thresholds().Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		out := cmd.OutOrStdout()
		return watch.Run(ctx, dir, debounce, logger, func() {
			rep, err := analyzeDir(dir, watchPatient)
			if err != nil {
				logger.Error("watch: analysis failed", "err", err)
				return
			}
			if err := render.Write(out, rep, format); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "⚠ Warning: render failed:", err)
			}
		})
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchPatient, "patient", "", "patient ID (default: first digit run in the folder name)")
	watchCmd.Flags().StringVarP(&watchFormat, "format", "f", "text", "output format: text | json | prom")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "quiet period before re-running after a change")
}
