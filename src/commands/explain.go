package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ledgerlens-server/src/categorize"
	"ledgerlens-server/src/rules"
)

// explain only needs the rules file, so it never opens the database.
func newExplainCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "explain <remark>",
		Short: "Show how a remark is parsed and categorized",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.config()
			if err != nil {
				return err
			}
			set, err := rules.Load(cfg.RulesFile)
			if err != nil {
				return err
			}
			remark := strings.Join(args, " ")
			p := set.Parser()

			method, paymentRule := p.Explain(remark)
			fields := p.Parse(remark)
			category, categoryRule := set.Categorizer().Explain(categorize.Input{
				Recipient:     fields.RecipientMerchant,
				Remark:        fields.CleanedRemark,
				PaymentMethod: method,
			})

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "payment method: %s%s\n", method, ruleSuffix(paymentRule))
			fmt.Fprintf(out, "recipient:      %s\n", fields.RecipientMerchant)
			fmt.Fprintf(out, "cleaned remark: %s\n", fields.CleanedRemark)
			fmt.Fprintf(out, "category:       %s%s\n", category, ruleSuffix(categoryRule))
			return nil
		},
	}
}

func ruleSuffix(name string) string {
	if name == "" {
		return ""
	}
	return " (" + name + ")"
}
