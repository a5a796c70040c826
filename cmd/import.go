package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	importFile     string
	importResearch bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Read a CSV/XLSX company list, optionally kicking off research",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		companies, err := loadCompanyFile(importFile)
		if err != nil {
			return err
		}
		zap.L().Info("company list loaded",
			zap.String("file", importFile),
			zap.Int("companies", len(companies)))

		if importResearch {
			env, err := initPipeline(ctx)
			if err != nil {
				return err
			}
			defer env.Close()
			return env.Pipeline.Research(ctx, companies)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(companies)
	},
}

func init() {
	importCmd.Flags().StringVar(&importFile, "file", "", "path to CSV or XLSX company list (required)")
	importCmd.Flags().BoolVar(&importResearch, "research", false, "run the research stage for the imported companies")
	_ = importCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(importCmd)
}
