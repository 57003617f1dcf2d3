package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"ledgerlens-server/src/ingest"
	"ledgerlens-server/src/report"
)

func newIngestCommand(flags *globalFlags) *cobra.Command {
	var plotsDir string

	cmd := &cobra.Command{
		Use:   "ingest <file>...",
		Short: "Load bank statement spreadsheets into the database",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer a.Close()

			pipeline := ingest.NewPipeline(a.rules.Parser(), a.store, a.log)
			charts := report.NewGenerator(a.log)
			out := cmd.OutOrStdout()

			for _, path := range args {
				result, err := pipeline.IngestFile(cmd.Context(), path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				fmt.Fprintf(out, "%s: %d rows, %d new\n", path, result.Rows, result.Inserted)

				if plotsDir == "" {
					continue
				}
				files, err := charts.Render(plotsDir, result.Transactions)
				if err != nil {
					return fmt.Errorf("rendering charts for %s: %w", path, err)
				}
				for _, f := range files {
					fmt.Fprintf(out, "  chart: %s\n", f)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&plotsDir, "plots-dir", "", "also render charts into this directory")

	return cmd
}
