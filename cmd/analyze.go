package cmd

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/KaramelBytes/rehabrisk-cli/internal/patient"
	"github.com/KaramelBytes/rehabrisk-cli/internal/render"
	"github.com/KaramelBytes/rehabrisk-cli/internal/resolve"
	"github.com/KaramelBytes/rehabrisk-cli/internal/risk"
	"github.com/KaramelBytes/rehabrisk-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	anaPatient  string
	anaFormat   string
	anaOutput   string
	anaPick     bool
	anaFailExit bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [folder]",
	Short: "Analyze a patient folder and print the risk verdict",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var r resolve.Resolver
		switch {
		case len(args) == 1 && !anaPick:
			r = resolve.Static(args[0])
		case cfg != nil && cfg.PickerCommand != "":
			fmt.Fprintln(cmd.ErrOrStderr(), "Opening selection window, please wait...")
			r = resolve.NewDialog(cfg.PickerCommand)
		default:
			return errors.New("no folder selected (pass a folder or set picker_command)")
		}
		dir, err := resolve.Dir(cmd.Context(), r)
		if err != nil {
			return err
		}

		format, err := render.ParseFormat(outputFormat(cmd))
		if err != nil {
			return err
		}
		rep, err := analyzeDir(dir, anaPatient)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := render.Write(&buf, rep, format); err != nil {
			return err
		}
		if anaOutput != "" {
			if err := utils.SafeWriteFile(anaOutput, buf.Bytes()); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote report to %s (%s)\n", anaOutput, rep.Verdict())
		} else if _, err := cmd.OutOrStdout().Write(buf.Bytes()); err != nil {
			return err
		}
		if anaFailExit && !rep.Passed() {
			return errRiskFound
		}
		return nil
	},
}

// analyzeDir runs one analysis of dir. An empty id is derived from the
// folder name.
func analyzeDir(dir, id string) (*risk.Report, error) {
	if id == "" {
		id = patient.IDFromFolder(dir)
	}
	agent, err := risk.NewAgent(id, dir, thresholds(), logger)
	if err != nil {
		return nil, err
	}
	return agent.Analyze(), nil
}

// outputFormat prefers the --format flag, then the configured default.
func outputFormat(cmd *cobra.Command) string {
	if cmd.Flags().Changed("format") || cfg == nil {
		return anaFormat
	}
	return cfg.OutputFormat
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&anaPatient, "patient", "", "patient ID (default: first digit run in the folder name)")
	analyzeCmd.Flags().StringVarP(&anaFormat, "format", "f", "text", "output format: text | json | prom")
	analyzeCmd.Flags().StringVarP(&anaOutput, "output", "o", "", "optional path to write the report")
	analyzeCmd.Flags().BoolVar(&anaPick, "pick", false, "choose the folder with the configured picker_command")
	analyzeCmd.Flags().BoolVar(&anaFailExit, "fail-exit", false, "exit with status 2 when the verdict is FAIL")
}
