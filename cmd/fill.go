package main

import (
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spotsheet/spotsheet/internal/sheet"
	"github.com/spotsheet/spotsheet/internal/spotify"
)

var (
	fillSheetName string
	fillURLColumn string
)

var fillCmd = &cobra.Command{
	Use:   "fill <input.xlsx> [output.xlsx]",
	Short: "Fill Track Name and Artist for Spotify URLs in a workbook",
	Long: `Reads the tracks sheet of an XLSX workbook, enriches every Spotify URL
sequentially, and writes the augmented workbook.

The URL column defaults to "Spotify URL" with "URL" as a fallback. The
output defaults to <input>_with_metadata.xlsx.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		input := args[0]
		output := defaultFillOutput(input)
		if len(args) == 2 {
			output = args[1]
		}

		f, err := sheet.OpenWorkbook(input)
		if err != nil {
			return err
		}

		s, err := sheet.LookupSheet(f, fillSheetName, false)
		if err != nil {
			return err
		}

		urlIdx := sheet.FindColumn(s, fillURLColumn)
		if urlIdx < 0 {
			urlIdx = sheet.FindColumn(s, "URL")
		}
		if urlIdx < 0 {
			return eris.Errorf("fill: expected column %q (or fallback \"URL\") in sheet %q", fillURLColumn, fillSheetName)
		}

		urls := make([]string, 0, len(s.Rows))
		for _, row := range s.Rows[1:] {
			cells := sheet.RowStrings(row)
			if urlIdx < len(cells) {
				urls = append(urls, cells[urlIdx])
			} else {
				urls = append(urls, "")
			}
		}

		zap.L().Info("filling workbook",
			zap.String("input", input),
			zap.String("sheet", fillSheetName),
			zap.Int("rows", len(urls)),
		)

		svc := spotify.New(cfg.Spotify)
		rows := svc.FillRows(ctx, urls)

		trackIdx := sheet.EnsureColumn(s, "Track Name")
		artistIdx := sheet.EnsureColumn(s, "Artist")
		for i, row := range s.Rows[1:] {
			sheet.SetRowValue(row, trackIdx, rows[i].TrackName)
			sheet.SetRowValue(row, artistIdx, rows[i].Artist)
		}

		if err := sheet.SaveWorkbook(f, output); err != nil {
			return err
		}

		zap.L().Info("workbook saved", zap.String("output", output))
		return nil
	},
}

// defaultFillOutput derives <input>_with_metadata.xlsx from the input path.
func defaultFillOutput(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "_with_metadata.xlsx"
}

func init() {
	fillCmd.Flags().StringVar(&fillSheetName, "sheet", "Tracks", "workbook sheet to read")
	fillCmd.Flags().StringVar(&fillURLColumn, "url-column", "Spotify URL", "header of the URL column")
	rootCmd.AddCommand(fillCmd)
}
