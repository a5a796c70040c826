package main

import (
	"github.com/spf13/cobra"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich [companies...]",
	Short: "Estimate revenue and headcount for companies with stored reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		return env.Pipeline.Enrich(ctx, args)
	},
}

func init() {
	rootCmd.AddCommand(enrichCmd)
}
