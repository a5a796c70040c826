package main

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/leadscout/leadgen-cli/internal/leadscore"
)

var (
	scoreStrategy string
	scoreRevenue  string
	scoreSize     string
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score companies from the latest job batch and stored estimates",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := validateChoice(scoreRevenue, leadscore.RevenueChoices()); err != nil {
			return err
		}
		if err := validateChoice(scoreSize, leadscore.EmployeeChoices()); err != nil {
			return err
		}

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		scored, err := env.Pipeline.ScoreAll(ctx, scoreStrategy, leadscore.Preferences{
			RevenueRange:  scoreRevenue,
			EmployeeRange: scoreSize,
		})
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(scored)
	},
}

func validateChoice(value string, choices []string) error {
	for _, c := range choices {
		if value == c {
			return nil
		}
	}
	return eris.Errorf("invalid value %q, expected one of: %s", value, strings.Join(choices, ", "))
}

func init() {
	scoreCmd.Flags().StringVar(&scoreStrategy, "strategy", "per-role", "scoring strategy (per-role|intent)")
	scoreCmd.Flags().StringVar(&scoreRevenue, "revenue", leadscore.Any, "target revenue range")
	scoreCmd.Flags().StringVar(&scoreSize, "size", leadscore.Any, "target employee range")
	rootCmd.AddCommand(scoreCmd)
}
