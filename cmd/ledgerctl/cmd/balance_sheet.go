package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/report"
)

var (
	bsCompany string
	bsAsOf    string
)

var balanceSheetCmd = &cobra.Command{
	Use:   "balance-sheet",
	Short: "Print the balance sheet of a company",
	Long: `Print the balance sheet from posted journal lines dated on or before --as-of.

Example:
  ledgerctl balance-sheet --company acme --as-of 2024-12-31`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if bsAsOf == "" {
			bsAsOf = time.Now().UTC().Format("2006-01-02")
		}

		a, _, err := openApp(cmd.Context(), nil)
		if err != nil {
			return err
		}
		defer a.Close()

		sheet, err := a.BalanceSheet.Generate(cmd.Context(), bsCompany, bsAsOf)
		if err != nil {
			return err
		}

		printBalanceSheet(sheet)
		if !sheet.Balanced {
			log.Warn("balance sheet does not balance", zap.String("difference", sheet.Totals.Difference.StringFixed(2)))
		}
		return nil
	},
}

func printBalanceSheet(sheet *report.BalanceSheet) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "Balance sheet of %s as of %s\t\t\n", sheet.CompanyID, sheet.AsOfDate)

	section := func(title string, s report.Section) {
		fmt.Fprintf(w, "\n%s\t\t\n", title)
		for _, l := range s.Lines {
			fmt.Fprintf(w, "  %s %s\t%s\t\n", l.Code, l.Name, l.Balance.StringFixed(2))
		}
		fmt.Fprintf(w, "Total %s\t%s\t\n", title, s.Total.StringFixed(2))
	}
	section("Assets", sheet.Assets)
	section("Liabilities", sheet.Liabilities)
	section("Equity", sheet.Equity)

	fmt.Fprintf(w, "\nLiabilities and equity\t%s\t\n", sheet.Totals.LiabilitiesAndEquity.StringFixed(2))
	fmt.Fprintf(w, "Difference\t%s\t\n", sheet.Totals.Difference.StringFixed(2))
	w.Flush()
}

func init() {
	balanceSheetCmd.Flags().StringVar(&bsCompany, "company", "", "company id")
	balanceSheetCmd.Flags().StringVar(&bsAsOf, "as-of", "", "as-of date YYYY-MM-DD (default: today)")
	_ = balanceSheetCmd.MarkFlagRequired("company")
}
