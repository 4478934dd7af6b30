package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spotsheet/spotsheet/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "spotsheet",
	Short: "Spotify track sheet enrichment",
	Long:  "Fills spreadsheets of Spotify track URLs with metadata (artist, track name, genre, album) from the Spotify Web API, scraping the public embed page as a fallback.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
