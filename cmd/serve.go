package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/KaramelBytes/rehabrisk-cli/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t := thresholds()
		if err := t.Validate(); err != nil {
			return err
		}
		addr := serveAddr
		if !cmd.Flags().Changed("addr") && cfg != nil && cfg.ServeAddr != "" {
			addr = cfg.ServeAddr
		}
		if !debug {
			gin.SetMode(gin.ReleaseMode)
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return server.New(t, logger).ListenAndServe(ctx, addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
}
