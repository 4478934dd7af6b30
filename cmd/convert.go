package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spotsheet/spotsheet/internal/sheet"
	"github.com/spotsheet/spotsheet/internal/table"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Convert a track table between CSV and XLSX without enriching",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		aliases, err := sheet.LoadAliases(cfg.Sheet.AliasFile)
		if err != nil {
			return err
		}

		tbl, err := table.Import(args[0], aliases)
		if err != nil {
			return err
		}

		if err := tbl.Export(args[1]); err != nil {
			return err
		}

		zap.L().Info("converted",
			zap.String("input", args[0]),
			zap.String("output", args[1]),
			zap.Int("rows", tbl.Len()),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
