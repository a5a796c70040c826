package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/leadscout/leadgen-cli/internal/store"
)

var (
	profilesCompany string
	profilesLimit   int
	profilesOffset  int
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List stored company profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return err
		}

		records, err := st.ListProfiles(ctx, store.ProfileFilter{
			Company: profilesCompany,
			Limit:   profilesLimit,
			Offset:  profilesOffset,
		})
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	},
}

func init() {
	profilesCmd.Flags().StringVar(&profilesCompany, "company", "", "filter by company name")
	profilesCmd.Flags().IntVar(&profilesLimit, "limit", 0, "maximum records to return (0 = all)")
	profilesCmd.Flags().IntVar(&profilesOffset, "offset", 0, "records to skip")
	rootCmd.AddCommand(profilesCmd)
}
