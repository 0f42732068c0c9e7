package main

import (
	"github.com/jonathan/jobpilot/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the local REST API server",
		Long:  `Start an HTTP server that exposes every screen as JSON endpoints, with /metrics for Prometheus.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := setup(cmd, true)
			if err != nil {
				return err
			}
			defer rt.Close()

			srv := server.New(server.Config{
				Port:          rt.cfg.Server.Port,
				CORSOrigins:   rt.cfg.Server.CORSOrigins,
				PhotoMaxBytes: rt.cfg.Photo.MaxBytes,
				Logger:        rt.logger,
			}, rt.app)

			rt.logger.Info("store opened", zap.String("backend", rt.cfg.Store.Backend))
			return srv.Start(cmd.Context())
		},
	}
	cmd.Flags().Int("port", 8080, "Port to listen on")
	cmd.Flags().Bool("browser", false, "Use a headless browser to fetch job pages (requires Chrome)")
	return cmd
}
