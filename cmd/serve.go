package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/spotsheet/spotsheet/internal/server"
	"github.com/spotsheet/spotsheet/internal/spotify"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the enrichment API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		serverCfg := cfg.Server
		if servePort != 0 {
			serverCfg.Port = servePort
		}

		svc := spotify.New(cfg.Spotify)
		return server.New(serverCfg, svc).Start(ctx)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
