package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"ledgerlens-server/src/models"
	"ledgerlens-server/src/stats"
)

type statsOutput struct {
	Summary models.Summary        `json:"summary"`
	Monthly []models.MonthlyTotal `json:"monthly"`
}

func newStatsCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print summary statistics for stored transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			txns, err := a.store.FetchAll(cmd.Context())
			if err != nil {
				return err
			}
			monthly, err := a.store.FetchMonthlyTotals(cmd.Context())
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(statsOutput{
				Summary: stats.Summarize(models.ParsedOf(txns)),
				Monthly: monthly,
			})
		},
	}
}
