package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/leadscout/leadgen-cli/internal/pipeline"
)

var (
	jobsQuery    string
	jobsLocation string
	jobsProvider string
	jobsDate     string
	jobsType     string
	jobsLimit    int
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Search job boards for hiring signals and store the batch",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		postings, err := env.Pipeline.Jobs(ctx, pipeline.JobsParams{
			Query:          jobsQuery,
			Location:       jobsLocation,
			Provider:       jobsProvider,
			DatePosted:     jobsDate,
			EmploymentType: jobsType,
			Limit:          jobsLimit,
		})
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(postings)
	},
}

func init() {
	jobsCmd.Flags().StringVar(&jobsQuery, "query", "", "job search query (required)")
	jobsCmd.Flags().StringVar(&jobsLocation, "location", "", "job search location")
	jobsCmd.Flags().StringVar(&jobsProvider, "provider", pipeline.ProviderSerpAPI, "job search provider (serpapi|jsearch)")
	jobsCmd.Flags().StringVar(&jobsDate, "date", "", "date posted filter (today|3days|week|month)")
	jobsCmd.Flags().StringVar(&jobsType, "type", "", "employment type filter (FULLTIME|CONTRACTOR|INTERN)")
	jobsCmd.Flags().IntVar(&jobsLimit, "limit", 20, "maximum postings to fetch")
	_ = jobsCmd.MarkFlagRequired("query")
	rootCmd.AddCommand(jobsCmd)
}
