package main

import (
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spotsheet/spotsheet/internal/enrich"
	"github.com/spotsheet/spotsheet/internal/model"
	"github.com/spotsheet/spotsheet/internal/sheet"
	"github.com/spotsheet/spotsheet/internal/spotify"
	"github.com/spotsheet/spotsheet/internal/table"
)

var (
	enrichOutput string
	enrichFormat string
	enrichServer string
)

var enrichCmd = &cobra.Command{
	Use:   "enrich <input|->",
	Short: "Enrich a track table row by row",
	Long: `Loads a track table from a CSV/XLSX file, or from URLs pasted on stdin
when the input is "-", then enriches it one row at a time. Failed rows keep
their existing values and the run continues.

With --server the rows are sent to a running spotsheet server; otherwise the
Spotify backend runs in-process.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		input := args[0]

		aliases, err := sheet.LoadAliases(cfg.Sheet.AliasFile)
		if err != nil {
			return err
		}

		var tbl *table.Table
		if input == "-" {
			pasted, err := io.ReadAll(os.Stdin)
			if err != nil {
				return eris.Wrap(err, "enrich: read stdin")
			}
			tbl = table.New()
			tbl.LoadText(string(pasted))
		} else {
			tbl, err = table.Import(input, aliases)
			if err != nil {
				return err
			}
		}

		if tbl.Len() == 0 {
			return eris.New("enrich: no rows to enrich")
		}

		var source enrich.Source
		if enrichServer != "" {
			source = enrich.NewRemote(enrichServer)
		} else {
			source = enrich.NewLocal(spotify.New(cfg.Spotify))
		}

		progress := func(index int, row model.Row, stats enrich.Stats) {
			zap.L().Info("row processed",
				zap.Int("row", index+1),
				zap.Int("total", tbl.Len()),
				zap.String("url", row.URL),
				zap.Int("updated", stats.Updated),
				zap.Int("failed", stats.Failed),
			)
		}

		stats, err := enrich.NewRunner(source, progress).Run(ctx, tbl)
		if err != nil {
			return err
		}

		output := enrichOutput
		if output == "" {
			output = defaultEnrichOutput(input, enrichFormat)
		}
		if err := tbl.Export(output); err != nil {
			return err
		}

		zap.L().Info("enrichment finished",
			zap.String("output", output),
			zap.Int("updated", stats.Updated),
			zap.Int("failed", stats.Failed),
			zap.Int("skipped", stats.Skipped),
		)
		return nil
	},
}

// defaultEnrichOutput derives the output path from the input path and the
// requested format. Pasted input always lands in a fixed tracks file.
func defaultEnrichOutput(input, format string) string {
	if input == "-" {
		if format == "" {
			format = "xlsx"
		}
		return "tracks." + format
	}
	ext := filepath.Ext(input)
	if format == "" {
		format = strings.TrimPrefix(ext, ".")
	}
	return strings.TrimSuffix(input, ext) + "_enriched." + format
}

func init() {
	enrichCmd.Flags().StringVar(&enrichOutput, "output", "", "output file (default derived from input)")
	enrichCmd.Flags().StringVar(&enrichFormat, "format", "", "output format: csv or xlsx (default from input)")
	enrichCmd.Flags().StringVar(&enrichServer, "server", "", "base URL of a running spotsheet server")
	rootCmd.AddCommand(enrichCmd)
}
