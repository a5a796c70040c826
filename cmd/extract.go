package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var extractCmd = &cobra.Command{
	Use:   "extract [company]",
	Short: "Build structured profiles from stored research reports",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		if len(args) == 1 {
			return env.Pipeline.Extract(ctx, args[0])
		}

		n, err := env.Pipeline.ExtractAll(ctx)
		if err != nil {
			return err
		}
		zap.L().Info("extraction complete", zap.Int("profiles", n))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
