package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/leadscout/leadgen-cli/internal/leadscore"
)

var (
	researchFile      string
	researchQualified bool
)

var researchCmd = &cobra.Command{
	Use:   "research [companies...]",
	Short: "Run deep web research for companies and store raw reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		var companies []string
		if researchQualified {
			scored, err := env.Pipeline.ScoreAll(ctx, cfg.Scoring.Strategy, leadscore.Preferences{
				RevenueRange:  cfg.Scoring.RevenueRange,
				EmployeeRange: cfg.Scoring.EmployeeRange,
			})
			if err != nil {
				return err
			}
			companies = env.Pipeline.Qualified(scored)
			zap.L().Info("researching qualified companies",
				zap.Int("qualified", len(companies)),
				zap.Int("scored", len(scored)))
		} else {
			companies, err = resolveCompanies(args, researchFile)
			if err != nil {
				return err
			}
		}

		return env.Pipeline.Research(ctx, companies)
	},
}

// resolveCompanies merges positional company names with an optional
// CSV/XLSX company list file.
func resolveCompanies(args []string, file string) ([]string, error) {
	companies := args
	if file != "" {
		fromFile, err := loadCompanyFile(file)
		if err != nil {
			return nil, err
		}
		companies = append(companies, fromFile...)
	}
	if len(companies) == 0 {
		return nil, eris.New("no companies given: pass names as arguments or use --file")
	}
	return companies, nil
}

func init() {
	researchCmd.Flags().StringVar(&researchFile, "file", "", "CSV or XLSX company list")
	researchCmd.Flags().BoolVar(&researchQualified, "qualified", false,
		"research the companies from the latest job batch whose lead score meets the threshold")
	rootCmd.AddCommand(researchCmd)
}
