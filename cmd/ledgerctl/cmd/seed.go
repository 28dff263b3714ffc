package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/account"
)

var (
	seedCompany string
	seedChart   string
)

var seedAccountsCmd = &cobra.Command{
	Use:   "seed-accounts",
	Short: "Create a chart of accounts for a company",
	Long: `Create a chart of accounts from a YAML file, or the built-in default chart.
Accounts whose code already exists are skipped.

Example:
  ledgerctl seed-accounts --company acme --chart chart.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		chart := account.DefaultChart()
		if seedChart != "" {
			f, err := os.Open(seedChart)
			if err != nil {
				return err
			}
			defer f.Close()
			if chart, err = account.ParseChart(f); err != nil {
				return err
			}
		}

		a, _, err := openApp(cmd.Context(), nil)
		if err != nil {
			return err
		}
		defer a.Close()

		created, err := a.Accounts.SeedAccounts(cmd.Context(), seedCompany, chart)
		if err != nil {
			return err
		}
		log.Info("chart of accounts seeded",
			zap.String("company", seedCompany),
			zap.Int("created", created),
			zap.Int("defined", len(chart.Accounts)))
		return nil
	},
}

func init() {
	seedAccountsCmd.Flags().StringVar(&seedCompany, "company", "", "company id")
	seedAccountsCmd.Flags().StringVar(&seedChart, "chart", "", "YAML chart of accounts (default: built-in chart)")
	_ = seedAccountsCmd.MarkFlagRequired("company")
}
