package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Upsert stored profiles into the configured Google Sheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if cfg.Sheets.SpreadsheetID == "" || cfg.Sheets.ServiceAccountJSON == "" {
			return eris.New("sheets sync requires LEADGEN_SHEETS_SPREADSHEET_ID and LEADGEN_SHEETS_SERVICE_ACCOUNT_JSON")
		}

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		n, err := env.Pipeline.Sync(ctx)
		if err != nil {
			return err
		}
		zap.L().Info("sheet sync complete", zap.Int("rows", n))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
